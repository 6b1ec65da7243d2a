package repository

import (
	"context"
	"errors"
	"fmt"

	"phone-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// phoneRepository implements the PhoneRepository interface using PostgreSQL.
type phoneRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPhoneRepository creates a new PostgreSQL-backed phone repository.
func NewPhoneRepository(pool *pgxpool.Pool, logger zerolog.Logger) PhoneRepository {
	return &phoneRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "phone").Logger(),
	}
}

const phoneColumns = `id, name, brand, image, price, discount_percentage, colors, storage, ram_size, created_at`

func scanPhone(row pgx.Row) (model.Phone, error) {
	var p model.Phone
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Image,
		&p.Price,
		&p.DiscountPercentage,
		&p.Colors,
		&p.Storage,
		&p.RAMSize,
		&p.CreatedAt,
	)
	return p, err
}

// GetAll retrieves all phones with pagination support.
func (r *phoneRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Phone, error) {
	query := `
		SELECT ` + phoneColumns + `
		FROM phones
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query phones")
		return nil, fmt.Errorf("failed to query phones: %w", err)
	}
	defer rows.Close()

	var phones []model.Phone
	for rows.Next() {
		p, err := scanPhone(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan phone row")
			return nil, fmt.Errorf("failed to scan phone: %w", err)
		}
		phones = append(phones, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating phone rows")
		return nil, fmt.Errorf("error iterating phones: %w", err)
	}

	return phones, nil
}

// GetByID retrieves a single phone by its ID.
func (r *phoneRepository) GetByID(ctx context.Context, id string) (*model.Phone, error) {
	query := `
		SELECT ` + phoneColumns + `
		FROM phones
		WHERE id = $1
	`

	p, err := scanPhone(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("phone_id", id).Msg("phone not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("phone_id", id).Msg("failed to query phone")
		return nil, fmt.Errorf("failed to query phone: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple phones by their IDs.
func (r *phoneRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Phone, error) {
	if len(ids) == 0 {
		return []model.Phone{}, nil
	}

	query := `
		SELECT ` + phoneColumns + `
		FROM phones
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query phones by IDs")
		return nil, fmt.Errorf("failed to query phones by IDs: %w", err)
	}
	defer rows.Close()

	var phones []model.Phone
	for rows.Next() {
		p, err := scanPhone(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan phone row")
			return nil, fmt.Errorf("failed to scan phone: %w", err)
		}
		phones = append(phones, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating phone rows")
		return nil, fmt.Errorf("error iterating phones: %w", err)
	}

	return phones, nil
}
