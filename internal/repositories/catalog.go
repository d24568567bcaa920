package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// CategoryRepository handles product categories
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", mapError(err))
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, mapError(err))
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	c.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $2, updated_at = $3 WHERE id = $1`, c.ID, c.Name, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", mapError(err))
	}
	return requireAffected(result)
}

// Delete removes a category; ErrReferenced while products still use it
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", mapError(err))
	}
	return requireAffected(result)
}

// SizeRepository handles product sizes
type SizeRepository struct {
	db *sql.DB
}

func NewSizeRepository(db *sql.DB) *SizeRepository {
	return &SizeRepository{db: db}
}

func (r *SizeRepository) Create(ctx context.Context, s *models.Size) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sizes (id, value, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Value, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create size: %w", mapError(err))
	}
	return nil
}

func (r *SizeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Size, error) {
	s := &models.Size{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, value, created_at, updated_at FROM sizes WHERE id = $1`, id).
		Scan(&s.ID, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get size %s: %w", id, mapError(err))
	}
	return s, nil
}

func (r *SizeRepository) List(ctx context.Context) ([]*models.Size, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, value, created_at, updated_at FROM sizes ORDER BY value`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	defer rows.Close()

	sizes := []*models.Size{}
	for rows.Next() {
		s := &models.Size{}
		if err := rows.Scan(&s.ID, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

func (r *SizeRepository) Update(ctx context.Context, s *models.Size) error {
	s.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE sizes SET value = $2, updated_at = $3 WHERE id = $1`, s.ID, s.Value, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update size: %w", mapError(err))
	}
	return requireAffected(result)
}

// Delete removes a size; ErrReferenced while products still offer it
func (r *SizeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sizes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete size: %w", mapError(err))
	}
	return requireAffected(result)
}

// ReturnReasonRepository handles the selectable return reasons
type ReturnReasonRepository struct {
	db *sql.DB
}

func NewReturnReasonRepository(db *sql.DB) *ReturnReasonRepository {
	return &ReturnReasonRepository{db: db}
}

func (r *ReturnReasonRepository) Create(ctx context.Context, rr *models.ReturnReason) error {
	rr.ID = uuid.New()
	rr.CreatedAt = time.Now()
	rr.UpdatedAt = rr.CreatedAt
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO return_reasons (id, title, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		rr.ID, rr.Title, rr.CreatedAt, rr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create return reason: %w", mapError(err))
	}
	return nil
}

func (r *ReturnReasonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ReturnReason, error) {
	rr := &models.ReturnReason{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, created_at, updated_at FROM return_reasons WHERE id = $1`, id).
		Scan(&rr.ID, &rr.Title, &rr.CreatedAt, &rr.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get return reason %s: %w", id, mapError(err))
	}
	return rr, nil
}

func (r *ReturnReasonRepository) List(ctx context.Context) ([]*models.ReturnReason, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, created_at, updated_at FROM return_reasons ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list return reasons: %w", err)
	}
	defer rows.Close()

	reasons := []*models.ReturnReason{}
	for rows.Next() {
		rr := &models.ReturnReason{}
		if err := rows.Scan(&rr.ID, &rr.Title, &rr.CreatedAt, &rr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan return reason: %w", err)
		}
		reasons = append(reasons, rr)
	}
	return reasons, rows.Err()
}

func (r *ReturnReasonRepository) Update(ctx context.Context, rr *models.ReturnReason) error {
	rr.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE return_reasons SET title = $2, updated_at = $3 WHERE id = $1`, rr.ID, rr.Title, rr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update return reason: %w", mapError(err))
	}
	return requireAffected(result)
}

func (r *ReturnReasonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM return_reasons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete return reason: %w", mapError(err))
	}
	return requireAffected(result)
}
