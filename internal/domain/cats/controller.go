package cats

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cat-registry/internal/platform/flash"
)

const (
	MsgDeleted = "You deleted a cat!"
	MsgSaved   = "Cat saved!"
)

// Page identifica la vista a renderizar.
type Page string

const (
	PageIndex    Page = "index"
	PageShow     Page = "show"
	PageNew      Page = "new"
	PageEdit     Page = "edit"
	PageNotFound Page = "not_found"
)

// ViewData es lo que necesita cualquier página de gatos.
type ViewData struct {
	Cats []Cat
	Cat  Cat
}

// Outcome es el resultado de un handler: o se renderiza una página o se redirige.
type Outcome struct {
	Page   Page
	Status int
	Data   ViewData

	Location string
}

func Render(page Page, status int, data ViewData) Outcome {
	return Outcome{Page: page, Status: status, Data: data}
}

func Redirect(location string) Outcome {
	return Outcome{Status: http.StatusSeeOther, Location: location}
}

func (o Outcome) IsRedirect() bool {
	return o.Location != ""
}

func catPath(id int64) string {
	return fmt.Sprintf("/cats/%d", id)
}

const indexPath = "/cats"

// Controller implementa las acciones CRUD sin saber de HTTP: recibe Params
// ya filtrados y el Flash del request, y devuelve un Outcome.
// Un error solo se devuelve para fallas inesperadas (500).
type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

func (c *Controller) List(ctx context.Context) (Outcome, error) {
	items, err := c.svc.List(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return Render(PageIndex, http.StatusOK, ViewData{Cats: items}), nil
}

func (c *Controller) Show(ctx context.Context, id int64) (Outcome, error) {
	cat, err := c.svc.Find(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	return Render(PageShow, http.StatusOK, ViewData{Cat: cat}), nil
}

func (c *Controller) NewForm(ctx context.Context) Outcome {
	return Render(PageNew, http.StatusOK, ViewData{Cat: Cat{}})
}

func (c *Controller) Create(ctx context.Context, fl *flash.Flash, p Params) (Outcome, error) {
	cat, err := c.svc.Create(ctx, p)
	if err != nil {
		if v, ok := Violations(err); ok {
			// Re-render del form con lo enviado (sin guardar).
			fl.SetNow(flash.SlotErrors, v...)
			return Render(PageNew, http.StatusUnprocessableEntity, ViewData{Cat: p.Apply(Cat{})}), nil
		}
		return Outcome{}, err
	}
	fl.Set(flash.SlotMessage, MsgSaved)
	return Redirect(catPath(cat.ID)), nil
}

func (c *Controller) EditForm(ctx context.Context, id int64) (Outcome, error) {
	cat, err := c.svc.Find(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	return Render(PageEdit, http.StatusOK, ViewData{Cat: cat}), nil
}

func (c *Controller) Update(ctx context.Context, fl *flash.Flash, id int64, p Params) (Outcome, error) {
	cat, err := c.svc.Update(ctx, id, p)
	if err != nil {
		if v, ok := Violations(err); ok {
			fl.SetNow(flash.SlotErrors, v...)
			return Render(PageEdit, http.StatusUnprocessableEntity, ViewData{Cat: p.Apply(Cat{ID: id})}), nil
		}
		return notFoundOr(err)
	}
	fl.Set(flash.SlotMessage, MsgSaved)
	return Redirect(catPath(cat.ID)), nil
}

func (c *Controller) Delete(ctx context.Context, fl *flash.Flash, id int64) (Outcome, error) {
	if err := c.svc.Delete(ctx, id); err != nil {
		return notFoundOr(err)
	}
	fl.Set(flash.SlotMessage, MsgDeleted)
	return Redirect(indexPath), nil
}

// NotFound es el Outcome para ids desconocidos o inválidos.
func NotFound() Outcome {
	return Render(PageNotFound, http.StatusNotFound, ViewData{})
}

func notFoundOr(err error) (Outcome, error) {
	if errors.Is(err, ErrNotFound) {
		return NotFound(), nil
	}
	return Outcome{}, err
}
