package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideField es el hidden field que usan los forms HTML para
// PATCH/PUT/DELETE (los navegadores solo envían GET/POST).
const MethodOverrideField = "_method"

// MethodOverride reescribe r.Method en POSTs de form. Tiene que ir antes del routing.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isFormPost(r) {
			switch m := strings.ToUpper(strings.TrimSpace(r.PostFormValue(MethodOverrideField))); m {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isFormPost(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
