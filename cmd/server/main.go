package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/application/orders"
	"storefront/internal/application/validation"
	"storefront/internal/infrastructure/basket"
	"storefront/internal/infrastructure/cache"
	"storefront/internal/infrastructure/config"
	"storefront/internal/infrastructure/db"
	"storefront/internal/infrastructure/http/handlers"
	"storefront/internal/infrastructure/http/server"
	"storefront/internal/infrastructure/messaging/kafka"
	"storefront/internal/infrastructure/persistence/postgres"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", err)
		}
	}()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	sqldb, err := db.NewDB(cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	defer func() {
		if err := sqldb.Close(); err != nil {
			logger.Error("Failed to close DB connection", zap.Error(err))
		}
	}()
	db.RunMigrations(sqldb, logger)

	basketStore := basket.NewStore(cfg.Redis.Addr, logger)
	defer func() {
		if err := basketStore.Close(); err != nil {
			logger.Error("Failed to close basket store", zap.Error(err))
		}
	}()

	responseCache := cache.NewResponseCache(cfg.Redis.Addr, logger)
	defer func() {
		if err := responseCache.Close(); err != nil {
			logger.Error("Failed to close response cache", zap.Error(err))
		}
	}()

	publisher := kafka.NewPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close Kafka publisher", zap.Error(err))
		}
	}()

	orderService := orders.NewService(postgres.Factory(sqldb, logger), basketStore, publisher, logger)
	orderHandler := handlers.NewOrderHandler(orderService, validation.NewValidator(), logger)
	apiServer := server.NewServer(orderHandler, responseCache, cfg.Cache.ResponseTTL, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start(":" + cfg.HTTP.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(ctx); err != nil {
			logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}
}
