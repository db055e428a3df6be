package account_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/handler"
	"github.com/dmitrymomot/formflow/modules/account"
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/notifications"
	"github.com/dmitrymomot/formflow/pkg/requestid"
)

type apiFixture struct {
	svc     *account.Service
	toaster *notifications.Toaster
	router  http.Handler
}

func newAPI(t *testing.T, opts ...account.ServiceOption) *apiFixture {
	t.Helper()

	tr, err := account.NewTranslator(context.Background())
	require.NoError(t, err)

	stream := notifications.NewBroadcastDeliverer(16)
	toaster := notifications.NewToaster(
		notifications.WithDeliverer(stream),
		notifications.WithLogger(logger.Discard()),
	)
	svc := account.NewService(testConfig(), append([]account.ServiceOption{
		account.WithLogger(logger.Discard()),
		account.WithTranslator(tr),
		account.WithNotifier(toaster),
	}, opts...)...)
	t.Cleanup(func() {
		svc.Close()
		toaster.Close()
		_ = stream.Close()
	})

	return &apiFixture{
		svc:     svc,
		toaster: toaster,
		router: account.Router(account.RouterOptions{
			Service:    svc,
			Translator: tr,
			Toaster:    toaster,
			Stream:     stream,
			Logger:     logger.Discard(),
		}),
	}
}

func (f *apiFixture) do(t *testing.T, method, target, contentType, body string) (*httptest.ResponseRecorder, handler.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env handler.Envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func dataAs[T any](t *testing.T, env handler.Envelope) T {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type snapshotBody struct {
	ID              string            `json:"id"`
	Form            string            `json:"form"`
	Status          string            `json:"status"`
	Values          map[string]any    `json:"values"`
	Errors          map[string]string `json:"errors"`
	PasswordVisible bool              `json:"passwordVisible"`
	PasswordInput   string            `json:"passwordInput"`
}

func (f *apiFixture) mount(t *testing.T, name string) snapshotBody {
	t.Helper()
	rec, env := f.do(t, http.MethodPost, "/forms/"+name+"/sessions", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	return dataAs[snapshotBody](t, env)
}

func TestRouter_Forms(t *testing.T) {
	t.Parallel()

	f := newAPI(t)

	rec, env := f.do(t, http.MethodGet, "/forms", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	forms := dataAs[[]account.FormInfo](t, env)
	require.Len(t, forms, 3)
	assert.Equal(t, "login", forms[0].Name)

	rec, env = f.do(t, http.MethodGet, "/forms/hook", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := dataAs[account.FormInfo](t, env)
	assert.Len(t, info.Fields, 7)

	rec, env = f.do(t, http.MethodGet, "/forms/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
}

func TestRouter_SubmitFlow(t *testing.T) {
	t.Parallel()

	f := newAPI(t)
	snap := f.mount(t, account.FormLogin)
	assert.Equal(t, "idle", snap.Status)
	base := "/sessions/" + snap.ID

	rec, env := f.do(t, http.MethodPost, base+"/submit", "", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Equal(t, "E-mail is required", env.Error.Details["email"])

	rec, env = f.do(t, http.MethodPatch, base, "application/json", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	snap = dataAs[snapshotBody](t, env)
	assert.Equal(t, "a@b.com", snap.Values["email"])
	assert.NotContains(t, snap.Errors, "email")
	assert.Contains(t, snap.Errors, "password")
	assert.Equal(t, []any{"email"}, env.Meta["updated"])

	values := url.Values{"password": {validPassword}}
	rec, _ = f.do(t, http.MethodPatch, base, "application/x-www-form-urlencoded", values.Encode())
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = f.do(t, http.MethodPost, base+"/submit", "", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	sub := dataAs[map[string]any](t, env)
	assert.Equal(t, "started", sub["outcome"])

	rec, env = f.do(t, http.MethodPost, base+"/submit", "", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ignored", dataAs[map[string]any](t, env)["outcome"])

	require.Eventually(t, func() bool {
		_, env := f.do(t, http.MethodGet, base, "", "")
		return dataAs[snapshotBody](t, env).Status == "succeeded"
	}, time.Second, 5*time.Millisecond)

	_, env = f.do(t, http.MethodGet, base, "", "")
	assert.NotContains(t, dataAs[snapshotBody](t, env).Values, "password")

	var toasts []notifications.Toast
	require.Eventually(t, func() bool {
		rec, env := f.do(t, http.MethodGet, base+"/toasts", "", "")
		if rec.Code != http.StatusOK {
			return false
		}
		toasts = dataAs[[]notifications.Toast](t, env)
		return len(toasts) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Submitted!", toasts[0].Title)

	_, env = f.do(t, http.MethodGet, "/toasts", "", "")
	assert.Len(t, dataAs[[]notifications.Toast](t, env), 1)

	rec, _ = f.do(t, http.MethodDelete, "/toasts/"+toasts[0].ID, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = f.do(t, http.MethodDelete, "/toasts/"+toasts[0].ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Localized(t *testing.T) {
	t.Parallel()

	f := newAPI(t)
	snap := f.mount(t, account.FormSignUp)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+snap.ID+"/submit", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "pt-BR", rec.Header().Get("Content-Language"))
	var env handler.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Nome é obrigatório", env.Error.Details["name"])

	rec2, env2 := f.do(t, http.MethodGet, "/sessions/"+snap.ID+"?lang=en", "", "")
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, "Name is required", dataAs[snapshotBody](t, env2).Errors["name"])
}

func TestRouter_BadRequests(t *testing.T) {
	t.Parallel()

	f := newAPI(t)
	snap := f.mount(t, account.FormLogin)
	base := "/sessions/" + snap.ID

	rec, _ := f.do(t, http.MethodPatch, base, "text/plain", "email=a@b.com")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec, _ = f.do(t, http.MethodPatch, base, "application/json", `{"nickname":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/sessions/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PasswordVisibilityAndUnmount(t *testing.T) {
	t.Parallel()

	f := newAPI(t)
	snap := f.mount(t, account.FormHook)
	base := "/sessions/" + snap.ID

	rec, env := f.do(t, http.MethodPost, base+"/password-visibility", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := dataAs[map[string]any](t, env)
	assert.Equal(t, true, body["visible"])
	assert.Equal(t, "text", body["input"])

	rec, _ = f.do(t, http.MethodDelete, base, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = f.do(t, http.MethodGet, base, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Stream(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := newAPI(t, account.WithLoginAction(func(ctx context.Context, v account.Login) (account.Login, error) {
		select {
		case <-release:
			return v, nil
		case <-ctx.Done():
			return account.Login{}, ctx.Err()
		}
	}))
	srv := httptest.NewServer(f.router)
	t.Cleanup(srv.Close)

	snap := f.mount(t, account.FormLogin)
	_, err := f.svc.Set(snap.ID, url.Values{"email": {"a@b.com"}, "password": {validPassword}})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/"+snap.ID+"/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	waitFor := func(substr string) {
		t.Helper()
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed before %q", substr)
				if strings.Contains(line, substr) {
					return
				}
			case <-ctx.Done():
				t.Fatalf("timed out waiting for %q", substr)
			}
		}
	}

	waitFor(`"form"`)

	sub, err := f.svc.Submit(ctx, snap.ID, "en")
	require.NoError(t, err)
	require.Equal(t, form.OutcomeStarted, sub.Outcome)
	waitFor(`"submitting"`)

	close(release)
	require.NoError(t, sub.Wait(ctx))
	waitFor(`"Submitted!"`)

	_, err = f.svc.TogglePassword(snap.ID)
	require.NoError(t, err)
	waitFor(`"passwordVisible":true`)

	require.NoError(t, f.svc.Unmount(ctx, snap.ID))
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-ctx.Done():
			t.Fatal("stream still open after unmount")
		}
	}
}
