package router

import (
	"fmt"
	"net/http"
	"time"

	"cat-registry/docs"
	"cat-registry/internal/adapters/csrf/hmactoken"
	mem "cat-registry/internal/adapters/storage/memory"
	"cat-registry/internal/domain/cats"
	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/flash"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/ports/csrf"
	"cat-registry/internal/web/views"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => Nop

	// Opcional: si no viene, usa in-memory.
	Repo cats.Repository

	// Opcional: si no viene, HMAC con key aleatoria.
	Tokens csrf.TokenService

	// Opcional: si no viene, in-memory con FlashTTL.
	Flash    flash.Store
	FlashTTL time.Duration

	SecureCookies bool
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewCatRepo()
	}

	tokens := opts.Tokens
	if tokens == nil {
		t, err := hmactoken.New("")
		if err != nil {
			return nil, err
		}
		tokens = t
	}

	flashStore := opts.Flash
	if flashStore == nil {
		flashStore = flash.NewMemoryStore(opts.FlashTTL)
	}

	pages, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)
	// Antes del routing: chi elige la ruta por método.
	r.Use(middleware.MethodOverride)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
	))

	// Fuera del grupo de sesión: un redirect no debe consumir el flash.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/cats", http.StatusFound)
	})

	svc := cats.NewService(repo)
	ctrl := cats.NewController(svc)

	// Todo lo que usa sesión: forms HTML y API JSON.
	r.Group(func(sr chi.Router) {
		sr.Use(middleware.Session(opts.SecureCookies))
		sr.Use(middleware.CSRF(tokens, log))
		sr.Use(middleware.Flash(flashStore, log))

		cats.RegisterRoutes(sr, ctrl, pages, log)
		cats.RegisterAPIRoutes(sr, svc, middleware.CSRFTokenFromRequest, log)
	})

	return r, nil
}
