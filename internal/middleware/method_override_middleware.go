package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideMiddleware позволяет отправлять DELETE через HTML-формы (_method=DELETE).
// Тело читается только у form-запросов, JSON остается нетронутым.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isForm(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Failed to parse form", http.StatusBadRequest)
				return
			}
			method := r.Form.Get("_method")
			if method == http.MethodPut || method == http.MethodDelete {
				r.Method = method // Изменяем метод запроса
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "application/x-www-form-urlencoded")
}
