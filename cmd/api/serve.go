package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cat-registry/internal/adapters/csrf/hmactoken"
	"cat-registry/internal/adapters/storage"
	"cat-registry/internal/config"
	"cat-registry/internal/platform/flash"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/router"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr          string
		driver        string
		secureCookies bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Flags pisan env
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("driver") {
				cfg.Driver = config.Driver(driver)
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg, secureCookies)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides CATS_ADDR)")
	cmd.Flags().StringVar(&driver, "driver", "memory", "storage driver: memory|postgres|sqlite (overrides CATS_DB_DRIVER)")
	cmd.Flags().BoolVar(&secureCookies, "secure-cookies", false, "mark session cookies as Secure (behind TLS)")
	return cmd
}

func serve(parent context.Context, cfg config.Config, secureCookies bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	store, err := storage.Open(ctx, cfg.Driver, cfg.DSN, true)
	if err != nil {
		return err
	}
	defer store.Close()

	tokens, err := hmactoken.New(cfg.CSRFSecret)
	if err != nil {
		return err
	}
	if cfg.CSRFSecret == "" {
		log.Warn("CATS_CSRF_SECRET not set; using a random key (tokens reset on restart)", nil)
	}

	h, err := router.NewRouter(router.Options{
		Logger:        log,
		Repo:          store.Repo,
		Tokens:        tokens,
		Flash:         flash.NewMemoryStore(cfg.FlashTTL),
		SecureCookies: secureCookies,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr, "driver": string(cfg.Driver)})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
