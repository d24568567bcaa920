package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

type AddressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, user_id, address, city, pincode, state, type, created_at, updated_at`

func scanAddress(row interface{ Scan(...any) error }) (*models.Address, error) {
	a := &models.Address{}
	if err := row.Scan(&a.ID, &a.UserID, &a.Address, &a.City, &a.Pincode, &a.State, &a.Type, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AddressRepository) Create(ctx context.Context, a *models.Address) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO addresses (id, user_id, address, city, pincode, state, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.UserID, a.Address, a.City, a.Pincode, a.State, a.Type, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create address: %w", mapError(err))
	}
	return nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get address %s: %w", id, mapError(err))
	}
	return a, nil
}

// CountByUser returns how many addresses the user has saved
func (r *AddressRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM addresses WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}
	return n, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*models.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *AddressRepository) Update(ctx context.Context, a *models.Address) error {
	a.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE addresses SET address = $2, city = $3, pincode = $4, state = $5, type = $6, updated_at = $7
		WHERE id = $1`,
		a.ID, a.Address, a.City, a.Pincode, a.State, a.Type, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", mapError(err))
	}
	return requireAffected(result)
}

func (r *AddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", mapError(err))
	}
	return requireAffected(result)
}
