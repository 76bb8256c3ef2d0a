// Package server assembles the HTTP server and its routes.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/config"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/handlers"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/middleware"
	"go.uber.org/zap"
)

// Server wraps the http.Server with its routes and lifecycle.
type Server struct {
	httpServer *http.Server
	config     *config.Config
	logger     *zap.Logger
}

// Handlers groups the handler sets the router mounts.
type Handlers struct {
	Auth    *handlers.AuthAPIHandlers
	Recipe  *handlers.RecipeAPIHandlers
	Profile *handlers.ProfileAPIHandlers
	Chat    *handlers.ChatAPIHandlers
}

// New builds the server with all routes and middleware attached.
func New(cfg *config.Config, mw *middleware.Middleware, h Handlers, logger *zap.Logger) *Server {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, cfg.App.Version)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(mw.RateLimit)
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.Recipe.Feed)
			r.Post("/", h.Recipe.Share)
			r.Get("/featured", h.Recipe.Featured)
			r.Get("/mine", h.Recipe.Mine)
			r.Get("/saved", h.Recipe.Saved)
			r.Get("/{id}", h.Recipe.Get)
			r.Post("/{id}/like", h.Recipe.Like)
			r.Post("/{id}/save", h.Recipe.Save)
			r.Delete("/{id}/save", h.Recipe.Unsave)
		})

		r.Get("/profile", h.Profile.Get)
		r.Put("/profile", h.Profile.Update)

		r.Route("/nutrition", func(r chi.Router) {
			r.Get("/", h.Profile.RecentNutrition)
			r.Post("/", h.Profile.LogNutrition)
			r.Get("/summary", h.Profile.WeeklySummary)
		})

		if cfg.Features.EnableChat {
			r.Route("/chat", func(r chi.Router) {
				r.Post("/", h.Chat.Stream)
				r.Get("/history", h.Chat.History)
				r.Delete("/", h.Chat.Reset)
			})
		}
	})

	httpServer := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return &Server{
		httpServer: httpServer,
		config:     cfg,
		logger:     logger,
	}
}

// Start begins serving. It blocks until the listener fails or closes.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
