// Seeds the phones table with a sample catalogue. Run with the same DB_*
// environment variables as the API server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"phone-kart/internal/config"
	"phone-kart/internal/database"
	"phone-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()

	// Only the database settings matter here; no API or Stripe keys needed.
	dbConfig := config.DatabaseConfig{
		Host:            envOr("DB_HOST", "localhost"),
		Port:            envOrInt("DB_PORT", 5432),
		User:            envOr("DB_USER", "postgres"),
		Password:        os.Getenv("DB_PASSWORD"),
		Database:        envOr("DB_NAME", "phonekart"),
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	phones := samplePhones()
	for _, p := range phones {
		_, err := pool.Exec(ctx, `
			INSERT INTO phones (id, name, brand, image, price, discount_percentage, colors, storage, ram_size)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				brand = EXCLUDED.brand,
				image = EXCLUDED.image,
				price = EXCLUDED.price,
				discount_percentage = EXCLUDED.discount_percentage,
				colors = EXCLUDED.colors,
				storage = EXCLUDED.storage,
				ram_size = EXCLUDED.ram_size`,
			p.ID, p.Name, p.Brand, p.Image, p.Price, p.DiscountPercentage, p.Colors, p.Storage, p.RAMSize,
		)
		if err != nil {
			log.Fatalf("Failed to seed phone %s: %v", p.ID, err)
		}
		fmt.Printf("Seeded %s (%s)\n", p.ID, p.Name)
	}

	fmt.Printf("\nSeeded %d phones\n", len(phones))
}

func samplePhones() []model.Phone {
	return []model.Phone{
		{
			ID:                 "galaxy-s24",
			Name:               "Galaxy S24",
			Brand:              "Samsung",
			Image:              "/images/galaxy-s24.jpg",
			Price:              decimal.RequireFromString("999.99"),
			DiscountPercentage: 10,
			Colors:             []string{"onyx black", "marble gray", "cobalt violet"},
			Storage:            []string{"128GB", "256GB", "512GB"},
			RAMSize:            []string{"8GB", "12GB"},
		},
		{
			ID:                 "iphone-15-pro",
			Name:               "iPhone 15 Pro",
			Brand:              "Apple",
			Image:              "/images/iphone-15-pro.jpg",
			Price:              decimal.RequireFromString("1349.00"),
			DiscountPercentage: 0,
			Colors:             []string{"natural titanium", "blue titanium", "black titanium"},
			Storage:            []string{"128GB", "256GB", "512GB", "1TB"},
			RAMSize:            []string{"8GB"},
		},
		{
			ID:                 "pixel-8",
			Name:               "Pixel 8",
			Brand:              "Google",
			Image:              "/images/pixel-8.jpg",
			Price:              decimal.RequireFromString("799.00"),
			DiscountPercentage: 15,
			Colors:             []string{"obsidian", "hazel", "rose"},
			Storage:            []string{"128GB", "256GB"},
			RAMSize:            []string{"8GB"},
		},
		{
			ID:                 "oneplus-12",
			Name:               "OnePlus 12",
			Brand:              "OnePlus",
			Image:              "/images/oneplus-12.jpg",
			Price:              decimal.RequireFromString("929.50"),
			DiscountPercentage: 5,
			Colors:             []string{"silky black", "flowy emerald"},
			Storage:            []string{"256GB", "512GB"},
			RAMSize:            []string{"12GB", "16GB"},
		},
		{
			ID:                 "moto-g-power",
			Name:               "Moto G Power",
			Brand:              "Motorola",
			Image:              "/images/moto-g-power.jpg",
			Price:              decimal.RequireFromString("299.99"),
			DiscountPercentage: 20,
			Colors:             []string{"midnight blue"},
			Storage:            []string{"128GB"},
			RAMSize:            []string{"4GB", "8GB"},
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
