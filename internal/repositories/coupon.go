package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

type CouponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

const couponColumns = `id, code, type, amount, start_time, expiry_time, valid, max_redemptions,
	total_redemptions, created_at, updated_at`

func scanCoupon(row interface{ Scan(...any) error }) (*models.Coupon, error) {
	c := &models.Coupon{}
	err := row.Scan(&c.ID, &c.Code, &c.Type, &c.Amount, &c.StartTime, &c.ExpiryTime, &c.Valid,
		&c.MaxRedemptions, &c.TotalRedemptions, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CouponRepository) Create(ctx context.Context, c *models.Coupon) error {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coupons (id, code, type, amount, start_time, expiry_time, valid, max_redemptions,
			total_redemptions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.Code, c.Type, c.Amount, c.StartTime, c.ExpiryTime, c.Valid, c.MaxRedemptions,
		c.TotalRedemptions, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", mapError(err))
	}
	return nil
}

func (r *CouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon %s: %w", id, mapError(err))
	}
	return c, nil
}

// GetRedeemable returns the coupon only while it is valid, unexpired and under its cap
func (r *CouponRepository) GetRedeemable(ctx context.Context, id uuid.UUID, now time.Time) (*models.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `
		SELECT `+couponColumns+` FROM coupons
		WHERE id = $1 AND valid AND expiry_time >= $2 AND total_redemptions < max_redemptions`,
		id, now))
	if err != nil {
		return nil, fmt.Errorf("failed to get redeemable coupon %s: %w", id, mapError(err))
	}
	return c, nil
}

// Update writes the admin-editable fields. The table CHECK rejects a cap below the redemptions.
func (r *CouponRepository) Update(ctx context.Context, c *models.Coupon) error {
	c.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE coupons SET expiry_time = $2, valid = $3, max_redemptions = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.ExpiryTime, c.Valid, c.MaxRedemptions, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", mapError(err))
	}
	return requireAffected(result)
}

func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", mapError(err))
	}
	return requireAffected(result)
}

// List returns coupons matching filters. With filters.All every redeemable coupon is
// returned on a single page.
func (r *CouponRepository) List(ctx context.Context, filters models.CouponListFilters, now time.Time) ([]*models.Coupon, int, error) {
	var c conditions
	if filters.All {
		c.add(`valid AND expiry_time >= ? AND total_redemptions < max_redemptions`, now)
	} else {
		if filters.Search != "" {
			c.add(`code LIKE ?`, escapeLike(filters.Search)+"%")
		}
		if filters.Type != nil {
			c.add(`type = ?`, *filters.Type)
		}
		if filters.Status != nil {
			if *filters.Status {
				c.add(`valid AND expiry_time >= ?`, now)
			} else {
				c.add(`(NOT valid OR expiry_time < ?)`, now)
			}
		}
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coupons `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get coupon count: %w", err)
	}

	var order []string
	if filters.RedemptionSort != nil {
		order = append(order, "total_redemptions "+string(*filters.RedemptionSort))
	}
	sort := filters.Sort
	if sort == "" {
		sort = models.SortDesc
	}
	order = append(order, "created_at "+string(sort), "id")

	query := fmt.Sprintf(`SELECT %s FROM coupons %s ORDER BY %s`, couponColumns, c.where(), strings.Join(order, ", "))
	if !filters.All {
		page := models.NewPagination(filters.Page, models.CouponsPerPage)
		query += fmt.Sprintf(` LIMIT %s OFFSET %s`, c.next(page.Take), c.next(page.Offset()))
	}

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []*models.Coupon{}
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating coupons: %w", err)
	}
	return coupons, total, nil
}
