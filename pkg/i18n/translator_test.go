package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/i18n"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

var catalogFS = fstest.MapFS{
	"locales/en.yaml": {Data: []byte(`
en:
  greeting: "Hello, %{name}!"
  validation:
    name:
      required: "Name is required"
      min_length: "Minimum length should be %{min}"
`)},
	"locales/pt-BR.yml": {Data: []byte(`
pt-BR:
  greeting: "Olá, %{name}!"
  validation:
    name:
      required: "Nome é obrigatório"
`)},
	"locales/README.md": {Data: []byte("ignored")},
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(),
		i18n.NewFSAdapter(catalogFS, "locales"),
		i18n.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	assert.Equal(t, []string{"en", "pt-BR"}, tr.SupportedLanguages())

	assert.Equal(t, "Hello, Ana!", tr.T("en", "greeting", "name", "Ana"))
	assert.Equal(t, "Olá, Ana!", tr.T("pt-BR", "greeting", "name", "Ana"))
	assert.Equal(t, "Minimum length should be 4", tr.T("pt-BR", "validation.name.min_length", "min", "4"),
		"missing keys fall back to the default language")
	assert.Equal(t, "unknown.key", tr.T("en", "unknown.key"))
	assert.Equal(t, "validation.name", tr.T("en", "validation.name"), "branches are not messages")

	assert.True(t, tr.Has("pt-BR", "validation.name.required"))
	assert.False(t, tr.Has("pt-BR", "validation.name.min_length"))
	assert.False(t, tr.Has("fr", "greeting"))
}

func TestTranslator_Match(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"empty", nil, "en"},
		{"exact", []string{"pt-BR"}, "pt-BR"},
		{"header with weights", []string{"fr;q=0.5, pt-BR;q=0.9"}, "pt-BR"},
		{"regional english", []string{"en-GB"}, "en"},
		{"unsupported", []string{"ja"}, "en"},
		{"query wins over header", []string{"pt-BR", "en-US"}, "pt-BR"},
		{"garbage", []string{"!!"}, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.prefs...))
		})
	}
}

func TestTranslator_Localize(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	errs := validator.ValidationErrors{
		*validator.Check("name", validator.String(""), []validator.Rule{
			validator.Required("Name is required").WithKey("validation.name.required"),
		}),
		*validator.Check("nick", validator.String("Bo"), []validator.Rule{
			validator.MinLength(4, "Minimum length should be 4").WithKey("validation.name.min_length"),
		}),
		{Field: "phone", Message: "Invalid phone number", TranslationKey: "validation.phone.custom"},
	}

	assert.Equal(t, map[string]string{
		"name":  "Nome é obrigatório",
		"nick":  "Minimum length should be 4",
		"phone": "Invalid phone number",
	}, tr.Localize("pt-BR", errs))
}

func TestNewTranslator_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := i18n.NewTranslator(ctx, nil)
	assert.ErrorIs(t, err, i18n.ErrNilAdapter)

	_, err = i18n.NewTranslator(ctx, i18n.MapAdapter{})
	assert.ErrorIs(t, err, i18n.ErrNoTranslations)

	_, err = i18n.NewTranslator(ctx, i18n.MapAdapter{"pt-BR": {"a": "b"}}, i18n.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, i18n.ErrInvalidLanguage, "default language needs a catalog")

	_, err = i18n.NewTranslator(ctx, i18n.NewFSAdapter(fstest.MapFS{
		"locales/bad.yaml": {Data: []byte("en: [1, 2]")},
	}, "locales"))
	assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)

	_, err = i18n.NewTranslator(ctx, i18n.NewFSAdapter(fstest.MapFS{}, "missing"))
	assert.ErrorIs(t, err, i18n.ErrFailedToReadDirectory)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	var got string
	handler := i18n.Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.GetLocale(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "pt-BR", got)
	assert.Equal(t, "pt-BR", rec.Header().Get("Content-Language"))

	req = httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "en", got)

	assert.Equal(t, "en", i18n.GetLocale(context.Background()))
}
