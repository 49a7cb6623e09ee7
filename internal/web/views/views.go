// Package views renderiza las páginas HTML de gatos (html/template embebido).
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"cat-registry/internal/domain/cats"
	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/flash"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = map[cats.Page]string{
	cats.PageIndex:    "Cats",
	cats.PageShow:     "Cat",
	cats.PageNew:      "New cat",
	cats.PageEdit:     "Edit cat",
	cats.PageNotFound: "Not found",
}

// pageData es lo que ven los templates.
type pageData struct {
	Title string

	Cats []cats.Cat
	Cat  cats.Cat

	// Form (partial compartido por new/edit)
	FormAction  string
	FormMethod  string
	SubmitLabel string

	CSRFToken string
	Message   string
	Errors    []string
}

// Renderer implementa cats.Renderer.
type Renderer struct {
	byPage map[cats.Page]*template.Template
}

var _ cats.Renderer = (*Renderer)(nil)

// New parsea layout + partial + página, una vez por página.
func New() (*Renderer, error) {
	byPage := make(map[cats.Page]*template.Template, len(pages))
	for page := range pages {
		t, err := template.ParseFS(templatesFS,
			"templates/layout.html",
			"templates/_form.html",
			"templates/"+string(page)+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		byPage[page] = t
	}
	return &Renderer{byPage: byPage}, nil
}

func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, page cats.Page, status int, data cats.ViewData) error {
	t, ok := rd.byPage[page]
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return fmt.Errorf("unknown page %q", page)
	}

	pd := buildPageData(r, page, data)

	// Render a buffer: si el template falla no queda una respuesta a medias.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func buildPageData(r *http.Request, page cats.Page, data cats.ViewData) pageData {
	ctx := r.Context()
	fl := flash.FromContext(ctx)
	errs, _ := fl.Peek(flash.SlotErrors)

	pd := pageData{
		Title:     pages[page],
		Cats:      data.Cats,
		Cat:       data.Cat,
		CSRFToken: middleware.CSRFToken(ctx),
		Message:   fl.First(flash.SlotMessage),
		Errors:    errs,
	}

	switch page {
	case cats.PageNew:
		pd.FormAction = "/cats"
		pd.SubmitLabel = "Create Cat"
	case cats.PageEdit:
		pd.FormAction = fmt.Sprintf("/cats/%d", data.Cat.ID)
		pd.FormMethod = "patch"
		pd.SubmitLabel = "Update Cat"
	}
	return pd
}
