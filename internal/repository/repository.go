package repository

import (
	"context"

	"phone-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PhoneRepository defines the interface for catalogue data access.
type PhoneRepository interface {
	// GetAll retrieves all phones with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Phone, error)

	// GetByID retrieves a single phone by its ID. Returns nil when the
	// phone does not exist.
	GetByID(ctx context.Context, id string) (*model.Phone, error)

	// GetByIDs retrieves multiple phones by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Phone, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByUser retrieves all orders placed by a user, with their items.
	GetByUser(ctx context.Context, userID string) ([]model.Order, map[uuid.UUID][]model.OrderItem, error)
}
