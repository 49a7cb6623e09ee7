package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ctxKey string

const sessionKey ctxKey = "session_id"

// SessionCookie es la cookie que ata flash y tokens CSRF a un navegador.
const SessionCookie = "cat_session"

// Session:
// - Si viene cookie con un uuid válido => lo usa como session id.
// - Si no => genera uno nuevo y setea la cookie.
// El id queda en el contexto (ver SessionID).
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := readSession(r)
			if !ok {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func readSession(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c == nil {
		return "", false
	}
	value := strings.TrimSpace(c.Value)
	if _, err := uuid.Parse(value); err != nil {
		return "", false
	}
	return value, true
}
