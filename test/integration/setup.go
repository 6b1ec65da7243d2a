package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"phone-kart/internal/database"
	"phone-kart/internal/model"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool with
// the application schema applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	// NUMERIC columns scan into decimal.Decimal, same as the server pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Apply the embedded application schema
	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedPhones inserts test phone data into the database.
func SeedPhones(t *testing.T, pool *pgxpool.Pool) []model.Phone {
	t.Helper()

	ctx := context.Background()

	phones := []model.Phone{
		{
			ID:                 "P001",
			Name:               "Test Phone 1",
			Brand:              "BrandA",
			Price:              decimal.RequireFromString("1000.00"),
			DiscountPercentage: 0,
			Colors:             []string{"black", "silver"},
			Storage:            []string{"128GB", "256GB", "512GB"},
			RAMSize:            []string{"8GB", "12GB"},
		},
		{
			ID:                 "P002",
			Name:               "Test Phone 2",
			Brand:              "BrandB",
			Price:              decimal.RequireFromString("649.99"),
			DiscountPercentage: 20,
			Colors:             []string{"blue"},
			Storage:            []string{"128GB"},
			RAMSize:            []string{"8GB"},
		},
		{
			ID:                 "P003",
			Name:               "Test Phone 3",
			Brand:              "BrandA",
			Price:              decimal.RequireFromString("299.50"),
			DiscountPercentage: 50,
			Colors:             []string{"green", "white"},
			Storage:            []string{"64GB", "128GB"},
			RAMSize:            []string{"4GB"},
		},
	}

	for _, p := range phones {
		_, err := pool.Exec(ctx,
			`INSERT INTO phones (id, name, brand, image, price, discount_percentage, colors, storage, ram_size)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, p.Name, p.Brand, p.Image, p.Price, p.DiscountPercentage, p.Colors, p.Storage, p.RAMSize,
		)
		if err != nil {
			t.Fatalf("failed to seed phone %s: %v", p.ID, err)
		}
	}

	return phones
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "phones"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
