// Package api wires the HTTP surface of the RecipeBox server: huma
// operations for the JSON API plus router-level routes for image upload
// and serving.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/recipebox/recipebox-server/internal/config"
)

const apiVersion = "1.0.0"

// Server holds the router and the services behind it.
type Server struct {
	config   *config.Config
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer builds the router, the huma API, and all routes.
func NewServer(cfg *config.Config, services *Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig(cfg.Server.Name, apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	RegisterErrorHandler()

	s := &Server{
		config:   cfg,
		services: services,
		router:   router,
		api:      humachi.New(router, humaConfig),
		logger:   logger.With("component", "api"),
	}

	s.registerUserRoutes()
	s.registerRecipeRoutes()
	s.registerTagRoutes()
	s.registerIngredientRoutes()
	s.registerMediaRoutes()
	s.registerHealthRoutes()

	return s
}

// Router returns the configured HTTP handler.
func (s *Server) Router() *chi.Mux {
	return s.router
}
