// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/onyxdragun/yardsalefndr/internal/config"
	"github.com/onyxdragun/yardsalefndr/internal/platform/metrics"
	"github.com/onyxdragun/yardsalefndr/internal/server/handlers"
	"github.com/onyxdragun/yardsalefndr/internal/server/middleware"
)

// Dependencies are the handlers and middleware the router is built from
type Dependencies struct {
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Auth        *middleware.Authenticator
	RateLimiter *middleware.RateLimiter
	CronSecret  string

	Search     *handlers.SearchHandler
	Listings   *handlers.ListingHandler
	Favorites  *handlers.FavoriteHandler
	Categories *handlers.CategoryHandler
	Usage      *handlers.UsageHandler
	Geo        *handlers.GeoHandler
	Health     *handlers.HealthHandler
	Admin      *handlers.AdminHandler
	Feed       *handlers.FeedHandler
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps Dependencies) *Server {
	router := NewRouter(cfg, deps)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// NewRouter wires middleware and routes
func NewRouter(cfg config.ServerConfig, deps Dependencies) *chi.Mux {
	router := chi.NewRouter()

	// Middleware
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))
	router.Use(chimw.Recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	// Routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", deps.Health.Health)

		// API version
		r.Route("/v1", func(r chi.Router) {
			// The live feed is long-lived and skips the request timeout.
			r.Get("/ws", deps.Feed.Serve)

			r.Group(func(r chi.Router) {
				r.Use(chimw.Timeout(60 * time.Second))
				r.Use(deps.RateLimiter.Limit)

				// Garage sales API
				r.Route("/garage-sales", func(r chi.Router) {
					r.With(deps.Auth.Optional).Get("/", deps.Search.Search)
					r.With(deps.Auth.Require).Post("/", deps.Listings.Create)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", deps.Listings.Get)
						r.With(deps.Auth.Require).Put("/", deps.Listings.Update)
						r.With(deps.Auth.Require).Delete("/", deps.Listings.Delete)
						r.With(deps.Auth.Optional).Post("/view", deps.Listings.RecordView)
					})
				})

				r.Get("/categories", deps.Categories.List)
				r.Post("/geocode", deps.Geo.Geocode)

				// Signed-in user API
				r.Group(func(r chi.Router) {
					r.Use(deps.Auth.Require)

					r.Get("/my/garage-sales", deps.Listings.Mine)
					r.Get("/usage", deps.Usage.Get)

					r.Route("/favorites", func(r chi.Router) {
						r.Get("/", deps.Favorites.List)
						r.Post("/", deps.Favorites.Add)
						r.Delete("/{id}", deps.Favorites.Remove)
					})
				})

				// Maintenance API
				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequireSecret(deps.CronSecret))

					r.Post("/sweep", deps.Admin.Sweep)
					r.Get("/garage-sales", deps.Admin.Export)
				})
			})
		})
	})

	return router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
