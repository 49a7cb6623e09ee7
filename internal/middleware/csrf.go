package middleware

import (
	"context"
	"net/http"
	"strings"

	"cat-registry/internal/platform/logger"
	"cat-registry/internal/ports/csrf"
)

const (
	csrfTokenKey ctxKey = "csrf_token"

	// CSRFField es el hidden field de los forms; CSRFHeader lo usan los clientes JSON.
	CSRFField  = "authenticity_token"
	CSRFHeader = "X-CSRF-Token"
)

// CSRF verifica el token en todo request que muta (POST/PUT/PATCH/DELETE)
// antes de que corra el handler, y deja un token fresco en el contexto para
// que las vistas lo embeban. Requiere Session antes en la cadena.
func CSRF(tokens csrf.TokenService, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := SessionID(r.Context())
			if !ok {
				http.Error(w, "missing session", http.StatusForbidden)
				return
			}

			if isMutation(r.Method) {
				if err := tokens.Verify(sessionID, submittedToken(r)); err != nil {
					log.Warn("csrf rejected", map[string]any{
						"method": r.Method,
						"path":   r.URL.Path,
					})
					http.Error(w, "invalid authenticity token", http.StatusForbidden)
					return
				}
			}

			token, err := tokens.Issue(sessionID)
			if err != nil {
				log.Error("csrf issue failed", map[string]any{"err": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), csrfTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFToken devuelve el token emitido para este request ("" si no hay middleware).
func CSRFToken(ctx context.Context) string {
	v, _ := ctx.Value(csrfTokenKey).(string)
	return v
}

// CSRFTokenFromRequest adapta CSRFToken al formato que piden los handlers.
func CSRFTokenFromRequest(r *http.Request) string {
	return CSRFToken(r.Context())
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func submittedToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(CSRFHeader)); t != "" {
		return t
	}
	if isFormPost(r) {
		return r.PostFormValue(CSRFField)
	}
	return ""
}
