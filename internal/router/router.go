// Package router builds the HTTP routing tree: middleware, the users and
// posts resources, and the service endpoints.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/blogapi/blogapi/internal/handler"
	"github.com/blogapi/blogapi/internal/metrics"
	"github.com/blogapi/blogapi/internal/middleware"
)

// Store is the persistence backend the API runs on.
type Store interface {
	handler.UserStore
	handler.PostStore
	handler.HealthChecker
}

// Metrics records events and exposes them for scraping.
type Metrics interface {
	metrics.Recorder
	metrics.Snapshotter
}

// Config carries the dependencies and middleware settings for New.
type Config struct {
	Store       Store
	Metrics     Metrics
	Logger      *slog.Logger
	CORS        middleware.CORSConfig
	Security    middleware.SecurityConfig
	MaxBodySize int64
}

// New returns a router serving every API route behind the middleware chain.
func New(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewInMemory()
	}

	h := handler.New()
	healthHandler := handler.NewHealthHandler(cfg.Store, logger)
	metricsHandler := handler.NewMetricsHandler(cfg.Metrics)
	userHandler := handler.NewUserHandler(cfg.Store, cfg.Metrics, logger)
	postHandler := handler.NewPostHandler(cfg.Store, cfg.Metrics, logger)

	r := chi.NewRouter()

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(cfg.Security))
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodySize))
	}

	r.Get("/", h.Hello)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}/posts", userHandler.Posts)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Post("/", postHandler.Create)
			r.Put("/{id}", postHandler.Update)
			r.Delete("/{id}", postHandler.Delete)
		})
	})

	return r
}
