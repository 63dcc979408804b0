package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/config"
	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/internal/mockstore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	buyerID := cfg.Buyer.ID
	if buyerID == "" {
		buyerID = "demo-buyer"
	}

	store := mockstore.NewStore()
	seed(store, buyerID)

	router := mockstore.NewRouter(store, cfg.Mock.Token, buyerID, logger)

	logger.Info("mock store listening",
		zap.String("port", cfg.Mock.Port),
		zap.String("buyerId", buyerID),
	)
	if err := router.Run(":" + cfg.Mock.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// seed loads a small demo catalog so the CLI has something to browse.
func seed(store *mockstore.Store, buyerID string) {
	store.SeedBuyer(domain.Buyer{
		ID:           buyerID,
		Name:         "Demo Buyer",
		EmailAddress: "demo@huggle.app",
	})
	store.SeedStore(domain.Store{
		ID:      "store-baked-bliss",
		Name:    "Baked Bliss",
		Address: "IT Park",
		City:    "Cebu City",
	})
	store.SeedStore(domain.Store{
		ID:      "store-snack-shack",
		Name:    "Snack Shack",
		Address: "Ayala Center",
		City:    "Cebu City",
	})
	store.SeedProduct(domain.Product{
		ID:              "prod-cookies",
		Name:            "Choco Chip Cookies",
		Description:     "Delicious choco chip cookies",
		OriginalPrice:   120,
		DiscountedPrice: 99,
		StoreID:         "store-baked-bliss",
		IsActive:        true,
		Stock:           20,
	})
	store.SeedProduct(domain.Product{
		ID:              "prod-burger",
		Name:            "Beef Burger",
		Description:     "Juicy homemade beef burger",
		OriginalPrice:   150,
		DiscountedPrice: 129,
		StoreID:         "store-snack-shack",
		IsActive:        true,
		Stock:           12,
	})
	store.SeedProduct(domain.Product{
		ID:              "prod-sandwich",
		Name:            "Veggie Sandwich",
		Description:     "Healthy and fresh",
		OriginalPrice:   99,
		DiscountedPrice: 89,
		StoreID:         "store-snack-shack",
		IsActive:        true,
		Stock:           8,
	})
}
