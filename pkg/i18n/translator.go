package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

// Translator resolves message keys for a set of loaded languages. It is
// immutable after construction and safe for concurrent use.
type Translator struct {
	translations map[string]map[string]any
	defaultLang  string
	languages    []string
	matcher      language.Matcher
	logger       *slog.Logger
	logMissing   bool
}

// Option configures a Translator.
type Option func(*Translator)

func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(t *Translator) {
		if log != nil {
			t.logger = log
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing key.
func WithMissingTranslationsLogging() Option {
	return func(t *Translator) {
		t.logMissing = true
	}
}

// NewTranslator loads translations from adapter. The default language must be
// one of the loaded languages.
func NewTranslator(ctx context.Context, adapter Adapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		return nil, ErrNoTranslations
	}
	if _, ok := translations[t.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: default language %q has no catalog", ErrInvalidLanguage, t.defaultLang)
	}
	t.translations = translations

	// The default language goes first so the matcher falls back to it.
	t.languages = []string{t.defaultLang}
	for lang := range translations {
		if lang != t.defaultLang {
			t.languages = append(t.languages, lang)
		}
	}
	slices.Sort(t.languages[1:])

	tags := make([]language.Tag, 0, len(t.languages))
	for _, lang := range t.languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, lang, err)
		}
		tags = append(tags, tag)
	}
	t.matcher = language.NewMatcher(tags)

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.languages))
	return t, nil
}

// SupportedLanguages returns the loaded languages, default first.
func (t *Translator) SupportedLanguages() []string {
	return slices.Clone(t.languages)
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match picks the supported language closest to the given preferences. Each
// preference may be a tag ("pt-BR") or a full Accept-Language header.
func (t *Translator) Match(preferences ...string) string {
	var tags []language.Tag
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return t.defaultLang
	}

	_, idx, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.defaultLang
	}
	return t.languages[idx]
}

// Has reports whether key exists for lang.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key for lang. args are key/value pairs substituted into %{key}
// placeholders. Missing keys fall back to the default language, then to the
// key itself.
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.lookup(lang, key)
	if !ok && lang != t.defaultLang {
		tmpl, ok = t.lookup(t.defaultLang, key)
	}
	if !ok {
		if t.logMissing {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		tmpl = key
	}
	return substitute(tmpl, params(args))
}

// Localize returns field -> message for errs in lang. Errors whose key has no
// translation keep their original message.
func (t *Translator) Localize(lang string, errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, verr := range errs {
		if _, seen := out[verr.Field]; seen {
			continue
		}
		out[verr.Field] = t.LocalizeError(lang, verr)
	}
	return out
}

// LocalizeError translates a single validation error.
func (t *Translator) LocalizeError(lang string, verr validator.ValidationError) string {
	if verr.TranslationKey == "" {
		return verr.Message
	}
	tmpl, ok := t.lookup(lang, verr.TranslationKey)
	if !ok {
		tmpl, ok = t.lookup(t.defaultLang, verr.TranslationKey)
	}
	if !ok {
		return verr.Message
	}

	values := make(map[string]string, len(verr.TranslationValues))
	for k, v := range verr.TranslationValues {
		values[k] = fmt.Sprint(v)
	}
	return substitute(tmpl, values)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	current, ok := t.translations[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			switch v := val.(type) {
			case string:
				return v, true
			case fmt.Stringer:
				return v.String(), true
			default:
				return "", false
			}
		}
		next, ok := val.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func params(args []string) map[string]string {
	p := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		p[args[i]] = args[i+1]
	}
	return p
}

// substitute replaces %{name} placeholders. Unknown placeholders stay as is.
func substitute(tmpl string, values map[string]string) string {
	if len(values) == 0 {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := values[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
