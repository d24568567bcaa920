package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ecommerce-platform/internal/authz"
	"ecommerce-platform/internal/models"
)

// ReviewPage is one page of a product's reviews
type ReviewPage struct {
	Reviews      []*models.Review `json:"reviews"`
	TotalReviews int              `json:"totalReviews"`
	NumOfPages   int              `json:"numOfPages"`
}

// ReviewService handles product reviews. One review per user and product.
type ReviewService struct {
	reviews ReviewRepository
}

func NewReviewService(reviews ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Create adds the actor's review of a product
func (s *ReviewService) Create(ctx context.Context, actor models.Actor, productID uuid.UUID, req *models.ReviewCreateRequest) (*models.Review, error) {
	review := &models.Review{
		UserID:    actor.UserID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	err := s.reviews.Create(ctx, review)
	switch {
	case err == nil:
		return review, nil
	case errors.Is(err, models.ErrDuplicateEntry):
		return nil, models.Conflict("Review already submitted")
	default:
		return nil, notFoundOr(err, "product", productID)
	}
}

// ListByProduct returns a page of a product's reviews, newest first
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, page int) (*ReviewPage, error) {
	reviews, total, err := s.reviews.ListByProduct(ctx, productID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &ReviewPage{
		Reviews:      reviews,
		TotalReviews: total,
		NumOfPages:   models.NewPagination(page, models.ReviewsPerPage).NumOfPages(total),
	}, nil
}

// Update edits a review owned by the actor
func (s *ReviewService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.ReviewUpdateRequest) (*models.Review, error) {
	review, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	req.Apply(review)
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, notFoundOr(err, "review", id)
	}
	return review, nil
}

// Delete removes a review owned by the actor
func (s *ReviewService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	review, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, review); err != nil {
		return notFoundOr(err, "review", id)
	}
	return nil
}

func (s *ReviewService) owned(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "review", id)
	}
	if err := authz.Authorize(actor, review.UserID); err != nil {
		return nil, err
	}
	return review, nil
}
