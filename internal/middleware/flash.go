package middleware

import (
	"net/http"
	"sync"

	"cat-registry/internal/platform/flash"
	"cat-registry/internal/platform/logger"
)

// Flash carga lo pendiente de la sesión (y lo borra del store: se lee una
// sola vez), lo expone en el contexto y, apenas el handler empieza a
// responder, persiste lo que se haya dejado con Set para el próximo request.
// Requiere Session antes en la cadena.
func Flash(store flash.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := SessionID(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			pending, err := store.Take(r.Context(), sessionID)
			if err != nil {
				log.Warn("flash take failed", map[string]any{"err": err})
				pending = nil
			}
			f := flash.New(pending)

			cw := &commitWriter{ResponseWriter: w}
			cw.commit = func() {
				if err := store.Save(r.Context(), sessionID, f.Outgoing()); err != nil {
					log.Warn("flash save failed", map[string]any{"err": err})
				}
			}

			next.ServeHTTP(cw, r.WithContext(flash.WithFlash(r.Context(), f)))
			cw.flush()
		})
	}
}

// commitWriter guarda el flash antes de mandar headers, así el redirect
// nunca le gana al Save.
type commitWriter struct {
	http.ResponseWriter
	once   sync.Once
	commit func()
}

func (w *commitWriter) flush() {
	w.once.Do(w.commit)
}

func (w *commitWriter) WriteHeader(status int) {
	w.flush()
	w.ResponseWriter.WriteHeader(status)
}

func (w *commitWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *commitWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
