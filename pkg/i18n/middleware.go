package i18n

import "net/http"

// DefaultQueryParam lets clients override the Accept-Language header.
const DefaultQueryParam = "lang"

// Middleware negotiates the request language against t and stores it in the
// request context. The "lang" query parameter wins over Accept-Language.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := t.Match(r.URL.Query().Get(DefaultQueryParam), r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
