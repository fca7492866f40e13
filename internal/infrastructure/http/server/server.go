package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/infrastructure/http/handlers"
	"storefront/internal/infrastructure/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

func NewServer(orderHandler *handlers.OrderHandler, responseCache repository.ResponseCache, cacheTTL time.Duration, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", zap.Error(err))
	}
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	server := &Server{
		logger: logger,
		router: r,
	}
	server.setupRoutes(orderHandler, responseCache, cacheTTL)
	return server
}

func (s *Server) setupRoutes(orderHandler *handlers.OrderHandler, responseCache repository.ResponseCache, cacheTTL time.Duration) {
	cached := middleware.Cached(responseCache, cacheTTL, s.logger)

	api := s.router.Group("/api")
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", cached, orderHandler.List)
	api.GET("/orders/:id", cached, orderHandler.GetByID)
	api.GET("/delivery-methods", cached, orderHandler.DeliveryMethods)
}

func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second}
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
