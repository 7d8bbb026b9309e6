package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/credvault/credvault/internal/config"
	"github.com/credvault/credvault/internal/handler"
	"github.com/credvault/credvault/internal/middleware"
)

type routerDeps struct {
	handler    *handler.Handler
	health     *handler.HealthHandler
	metrics    *handler.MetricsHandler
	credential *handler.CredentialHandler
	cfg        *config.Config
	logger     *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: d.cfg.IsDevelopment(),
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)
	r.Get("/", d.handler.Hello)

	r.Route("/api/v1/credentials", func(r chi.Router) {
		r.Post("/", d.credential.Register)
		r.Post("/lookup", d.credential.Lookup)
	})

	// Legacy paths kept for existing clients.
	r.Post("/crud/save_credentials", d.credential.Register)
	r.Post("/crud/get_by_email", d.credential.Lookup)

	r.NotFound(d.handler.NotFound)
	r.MethodNotAllowed(d.handler.MethodNotAllowed)

	return r
}
