// Package server provides the HTTP server and routing.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/infrastructure/config"
	"github.com/culina/v2/internal/infrastructure/http/handlers"
	"github.com/culina/v2/internal/infrastructure/http/middleware"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	health *handlers.HealthHandlers,
	assistant *handlers.AssistantHandlers,
	recipes *handlers.RecipeHandlers,
	plans *handlers.PlanHandlers,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}

	s.router = s.setupRouter(health, assistant, recipes, plans)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures all routes and middleware.
func (s *Server) setupRouter(
	health *handlers.HealthHandlers,
	assistant *handlers.AssistantHandlers,
	recipes *handlers.RecipeHandlers,
	plans *handlers.PlanHandlers,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.RealIP)

	r.Get("/health", health.HealthCheck)

	r.Route("/api/v2", func(r chi.Router) {
		r.Route("/assistant", func(r chi.Router) {
			r.Post("/recipes", assistant.GenerateRecipe)
			r.Post("/categorize", assistant.CategorizeIngredient)
			r.Post("/import", assistant.ImportRecipe)
			r.Post("/plan", assistant.GenerateWeeklyPlan)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.ListRecipes)
			r.Post("/", recipes.CreateRecipe)
			r.Get("/{id}", recipes.GetRecipe)
			r.Put("/{id}", recipes.UpdateRecipe)
			r.Delete("/{id}", recipes.DeleteRecipe)
			r.Post("/{id}/rating", recipes.RateRecipe)
		})

		r.Route("/plan", func(r chi.Router) {
			r.Get("/", plans.GetPlan)
			r.Put("/{date}", plans.ReplaceDay)
		})
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured router, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}
