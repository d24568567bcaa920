package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// ReviewRepository handles product reviews and keeps product rating aggregates current
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewSelect = `
	SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.created_at, r.updated_at,
		u.id, u.first_name, u.last_name, u.profile_image
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

func scanReview(row interface{ Scan(...any) error }) (*models.Review, error) {
	r := &models.Review{User: &models.Reviewer{}}
	err := row.Scan(&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
		&r.User.ID, &r.User.FirstName, &r.User.LastName, &r.User.ProfileImage)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// refreshRating recomputes average_rating (one decimal, 0 without reviews) and num_of_reviews
func refreshRating(ctx context.Context, q queryer, productID uuid.UUID) error {
	_, err := q.ExecContext(ctx, `
		UPDATE products SET
			average_rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE product_id = $1), 0),
			num_of_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = $1)
		WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to refresh product rating: %w", err)
	}
	return nil
}

// Create inserts a review. A second review of the same product by the same user
// yields ErrDuplicateEntry; an unknown product yields ErrNotFound.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	now := time.Now()
	review.CreatedAt, review.UpdatedAt = now, now

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reviews (id, user_id, product_id, rating, comment, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			review.ID, review.UserID, review.ProductID, review.Rating, review.Comment, review.CreatedAt, review.UpdatedAt)
		if err != nil {
			err = mapError(err)
			if errors.Is(err, models.ErrReferenced) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return refreshRating(ctx, tx, review.ProductID)
	})
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get review %s: %w", id, mapError(err))
	}
	return review, nil
}

// ListByProduct returns one page of a product's reviews, newest first, and the total count
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page int) ([]*models.Review, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get review count: %w", err)
	}

	p := models.NewPagination(page, models.ReviewsPerPage)
	rows, err := r.db.QueryContext(ctx,
		reviewSelect+` WHERE r.product_id = $1 ORDER BY r.created_at DESC, r.id LIMIT $2 OFFSET $3`,
		productID, p.Take, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	review.UpdatedAt = time.Now()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`,
			review.ID, review.Rating, review.Comment, review.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		if err := requireAffected(result); err != nil {
			return err
		}
		return refreshRating(ctx, tx, review.ProductID)
	})
}

func (r *ReviewRepository) Delete(ctx context.Context, review *models.Review) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, review.ID)
		if err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if err := requireAffected(result); err != nil {
			return err
		}
		return refreshRating(ctx, tx, review.ProductID)
	})
}
