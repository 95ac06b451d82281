// Package server assembles the HTTP surface: routing, CORS, optional rate
// limiting, and graceful shutdown.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/DavidPeleg6/recipe-creator/config"
	"github.com/DavidPeleg6/recipe-creator/internal/api"
	"github.com/DavidPeleg6/recipe-creator/internal/middleware"
	"github.com/DavidPeleg6/recipe-creator/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New creates a server around the tool services. redisClient may be nil, in
// which case the tool endpoints run without rate limiting.
func New(cfg *config.Config, executor service.QueryExecutor, saver service.RecipeSaver, search service.WebSearcher, youtube service.TranscriptFetcher, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	if redisClient != nil {
		limiter := middleware.NewToolRateLimiter(redisClient)
		v1.Use(limiter.RateLimitMiddleware())
	}

	toolsHandler := api.NewToolsHandler(executor, saver, search, youtube)
	toolsHandler.RegisterRoutes(v1)

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Start runs the server until it fails or Shutdown is called
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
