package cats

import (
	"net/http"

	"cat-registry/internal/platform/flash"
	"cat-registry/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Renderer dibuja una página (la implementa internal/web/views).
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, page Page, status int, data ViewData) error
}

func RegisterRoutes(r chi.Router, ctrl *Controller, views Renderer, log logger.Logger) {
	h := &htmlHandlers{ctrl: ctrl, views: views, log: log}

	r.Route("/cats", func(cr chi.Router) {
		cr.Get("/", h.list)
		cr.Post("/", h.create)
		cr.Get("/new", h.newForm)

		cr.Get("/{catID}", h.show)
		cr.Get("/{catID}/edit", h.editForm)
		cr.Patch("/{catID}", h.update)
		cr.Put("/{catID}", h.update)
		cr.Delete("/{catID}", h.delete)
	})
}

type htmlHandlers struct {
	ctrl  *Controller
	views Renderer
	log   logger.Logger
}

func (h *htmlHandlers) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.ctrl.List(r.Context())
	h.respond(w, r, out, err)
}

func (h *htmlHandlers) show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "catID"))
	if err != nil {
		h.respond(w, r, NotFound(), nil)
		return
	}
	out, err := h.ctrl.Show(r.Context(), id)
	h.respond(w, r, out, err)
}

func (h *htmlHandlers) newForm(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.ctrl.NewForm(r.Context()), nil)
}

func (h *htmlHandlers) create(w http.ResponseWriter, r *http.Request) {
	p, err := FormParams(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	out, err := h.ctrl.Create(r.Context(), flash.FromContext(r.Context()), p)
	h.respond(w, r, out, err)
}

func (h *htmlHandlers) editForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "catID"))
	if err != nil {
		h.respond(w, r, NotFound(), nil)
		return
	}
	out, err := h.ctrl.EditForm(r.Context(), id)
	h.respond(w, r, out, err)
}

func (h *htmlHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "catID"))
	if err != nil {
		h.respond(w, r, NotFound(), nil)
		return
	}
	p, err := FormParams(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	out, err := h.ctrl.Update(r.Context(), flash.FromContext(r.Context()), id, p)
	h.respond(w, r, out, err)
}

func (h *htmlHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "catID"))
	if err != nil {
		h.respond(w, r, NotFound(), nil)
		return
	}
	out, err := h.ctrl.Delete(r.Context(), flash.FromContext(r.Context()), id)
	h.respond(w, r, out, err)
}

// respond termina el request en exactamente un render o un redirect.
func (h *htmlHandlers) respond(w http.ResponseWriter, r *http.Request, out Outcome, err error) {
	if err != nil {
		h.log.Error("cats handler failed", map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"err":    err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if out.IsRedirect() {
		http.Redirect(w, r, out.Location, out.Status)
		return
	}

	if err := h.views.Render(w, r, out.Page, out.Status, out.Data); err != nil {
		h.log.Error("render failed", map[string]any{
			"page": string(out.Page),
			"err":  err,
		})
	}
}
