package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"storefront/internal/domain/model"
	"storefront/internal/infrastructure/basket"
	"storefront/internal/infrastructure/config"
	"storefront/internal/infrastructure/db"
	"storefront/internal/infrastructure/persistence/postgres"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
)

var (
	productCount = flag.Int("products", 20, "Number of products to seed")
	basketCount  = flag.Int("baskets", 5, "Number of demo baskets to seed")
)

func main() {
	flag.Parse()

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

	ctx := context.Background()

	uow := postgres.NewUnitOfWork(sqldb, logger)
	defer func() {
		if err := uow.Close(); err != nil {
			logger.Error("Failed to close unit of work", zap.Error(err))
		}
	}()

	products := make([]*model.Product, 0, *productCount)
	for range *productCount {
		product := &model.Product{
			Name:       gofakeit.ProductName(),
			PictureURL: gofakeit.URL(),
			Price:      gofakeit.Price(1, 500),
		}
		products = append(products, product)
		uow.Products().Add(product)
	}

	affected, err := uow.Complete(ctx)
	if err != nil {
		logger.Fatal("Failed to seed products", zap.Error(err))
	}
	logger.Info("Seeded products", zap.Int64("rows", affected))

	basketStore := basket.NewStore(cfg.Redis.Addr, logger)
	defer func() {
		if err := basketStore.Close(); err != nil {
			logger.Error("Failed to close basket store", zap.Error(err))
		}
	}()

	for i := range *basketCount {
		items := make([]model.BasketItem, 0, 3)
		for range rand.IntN(3) + 1 {
			product := products[rand.IntN(len(products))]
			items = append(items, model.BasketItem{
				ProductID: product.ID,
				Quantity:  rand.IntN(4) + 1,
			})
		}
		b := &model.Basket{
			ID:    fmt.Sprintf("demo-basket-%d", i+1),
			Items: items,
		}
		if err := basketStore.Set(ctx, b); err != nil {
			logger.Error("Failed to seed basket", zap.Error(err), zap.String("basket_id", b.ID))
			continue
		}
		logger.Info("Seeded basket", zap.String("basket_id", b.ID), zap.Int("items", len(items)))
	}
}
