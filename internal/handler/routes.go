package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/passgen/passgen-frontend/internal/metrics"
	"github.com/passgen/passgen-frontend/internal/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Generator      *GeneratorHandler
	Metrics        *metrics.Metrics
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires all routes and middleware. ctx bounds background work of
// the middleware such as rate limiter cleanup.
func NewRouter(ctx context.Context, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/robots.txt", Static())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, opts.RateLimitRPS, opts.RateLimitBurst))
		r.Get("/", opts.Generator.HandleIndex)
		r.Get("/json", opts.Generator.HandleJSON)
		r.Get("/help", opts.Generator.HandleHelp)
	})

	return r
}
