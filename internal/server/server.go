// Package server exposes the mini-app HTTP API.
// server.go builds the gin engine, wires CORS and routes, and runs the
// listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/config"
	"github.com/wheelproject/wheel-backend/internal/features/account"
	"github.com/wheelproject/wheel-backend/internal/features/wheel"
)

// Server is the HTTP API for the wheel mini-app.
type Server struct {
	cfg      *config.Config
	accounts *account.Service
	spins    *wheel.Service
	http     *http.Server
}

func New(cfg *config.Config, accounts *account.Service, spins *wheel.Service) *Server {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		accounts: accounts,
		spins:    spins,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.HTTPAllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := engine.Group("/api/wheel")
	api.Use(s.identityMiddleware())
	{
		api.POST("/get", s.handleGet)
		api.POST("/set-wallet", s.handleSetWallet)
		api.POST("/roll", s.handleRoll)
	}

	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: engine,
	}

	return s
}

// Start runs the listener until the context is cancelled.
func (s *Server) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("HTTP server shutdown failed")
		}
	}()

	log.WithField("addr", s.http.Addr).Info("HTTP API listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("HTTP server stopped unexpectedly")
	}
}
