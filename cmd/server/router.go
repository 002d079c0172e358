package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/rolodex-api/internal/api"
	apiMiddleware "github.com/phrazzld/rolodex-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.Metrics(app.metrics))

	recordHandler := api.NewRecordHandler(app.recordService, app.config.Server.MaxBodyBytes, app.logger)
	recordHandler.RegisterRoutes(r)

	healthHandler := api.NewHealthHandler(app.pool, app.logger)
	r.Get("/health", healthHandler.Health)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
