package cats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cat-registry/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// TokenIssuer entrega el token anti-forgery de la sesión actual
// (lo resuelve el middleware de CSRF).
type TokenIssuer func(r *http.Request) string

// RegisterAPIRoutes expone el mismo CRUD en JSON bajo /api.
func RegisterAPIRoutes(r chi.Router, svc *Service, token TokenIssuer, log logger.Logger) {
	r.Route("/api", func(ar chi.Router) {
		ar.Get("/csrf", csrfTokenHandler(token))

		ar.Route("/cats", func(cr chi.Router) {
			cr.Get("/", listCatsHandler(svc, log))
			cr.Post("/", createCatHandler(svc, log))
			cr.Get("/{catID}", getCatHandler(svc, log))
			cr.Patch("/{catID}", updateCatHandler(svc, log))
			cr.Put("/{catID}", updateCatHandler(svc, log))
			cr.Delete("/{catID}", deleteCatHandler(svc, log))
		})
	})
}

type catResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type catRequest struct {
	Cat struct {
		Name  string `json:"name"`
		Breed string `json:"breed"`
	} `json:"cat"`
}

type violationsResponse struct {
	Errors []string `json:"errors"`
}

type csrfResponse struct {
	Token string `json:"token"`
}

// csrfTokenHandler godoc
// @Summary  Issue an authenticity token for the current session
// @Tags     session
// @Produce  json
// @Success  200 {object} csrfResponse
// @Router   /api/csrf [get]
func csrfTokenHandler(token TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, csrfResponse{Token: token(r)})
	}
}

// listCatsHandler godoc
// @Summary  List cats
// @Tags     cats
// @Produce  json
// @Success  200 {array} catResponse
// @Router   /api/cats [get]
func listCatsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			internalError(w, r, log, err)
			return
		}

		out := make([]catResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCatResponse(c))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// createCatHandler godoc
// @Summary  Create a cat
// @Tags     cats
// @Accept   json
// @Produce  json
// @Param    X-CSRF-Token header string     true "authenticity token"
// @Param    body         body   catRequest true "cat fields"
// @Success  201 {object} catResponse
// @Failure  422 {object} violationsResponse
// @Router   /api/cats [post]
func createCatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := JSONParams(r.Body)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), p)
		if err != nil {
			if v, ok := Violations(err); ok {
				writeJSON(w, http.StatusUnprocessableEntity, violationsResponse{Errors: v})
				return
			}
			internalError(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, toCatResponse(c))
	}
}

// getCatHandler godoc
// @Summary  Show a cat
// @Tags     cats
// @Produce  json
// @Param    catID path int true "cat id"
// @Success  200 {object} catResponse
// @Failure  404 {string} string
// @Router   /api/cats/{catID} [get]
func getCatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(chi.URLParam(r, "catID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := svc.Find(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "cat not found", http.StatusNotFound)
				return
			}
			internalError(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

// updateCatHandler godoc
// @Summary  Update a cat
// @Tags     cats
// @Accept   json
// @Produce  json
// @Param    X-CSRF-Token header string     true "authenticity token"
// @Param    catID        path   int        true "cat id"
// @Param    body         body   catRequest true "cat fields"
// @Success  200 {object} catResponse
// @Failure  404 {string} string
// @Failure  422 {object} violationsResponse
// @Router   /api/cats/{catID} [patch]
// @Router   /api/cats/{catID} [put]
func updateCatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(chi.URLParam(r, "catID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := JSONParams(r.Body)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), id, p)
		if err != nil {
			if v, ok := Violations(err); ok {
				writeJSON(w, http.StatusUnprocessableEntity, violationsResponse{Errors: v})
				return
			}
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "cat not found", http.StatusNotFound)
				return
			}
			internalError(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusOK, toCatResponse(c))
	}
}

// deleteCatHandler godoc
// @Summary  Delete a cat
// @Tags     cats
// @Param    X-CSRF-Token header string true "authenticity token"
// @Param    catID        path   int    true "cat id"
// @Success  204
// @Failure  404 {string} string
// @Router   /api/cats/{catID} [delete]
func deleteCatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(chi.URLParam(r, "catID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "cat not found", http.StatusNotFound)
				return
			}
			internalError(w, r, log, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:        c.ID,
		Name:      c.Name,
		Breed:     c.Breed,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func internalError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	log.Error("cats api failed", map[string]any{
		"method": r.Method,
		"path":   r.URL.Path,
		"err":    err,
	})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
