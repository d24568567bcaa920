package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// CouponPage is one page of the coupon listing
type CouponPage struct {
	Coupons      []*models.Coupon `json:"coupons"`
	TotalCoupons int              `json:"totalCoupons"`
	NumOfPages   int              `json:"numOfPages"`
}

// CouponService handles coupon administration
type CouponService struct {
	coupons CouponRepository
	now     func() time.Time
}

// NewCouponService creates a new coupon service
func NewCouponService(coupons CouponRepository) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

// Create validates and stores a coupon
func (s *CouponService) Create(ctx context.Context, req *models.CouponCreateRequest) (*models.Coupon, error) {
	now := s.now()
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	coupon := req.ToCoupon(now)
	if err := s.coupons.Create(ctx, coupon); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, models.Conflict("Coupon %s already exists", req.Code)
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

// List returns a filtered page of coupons, or every redeemable coupon when filters.All is set
func (s *CouponService) List(ctx context.Context, filters models.CouponListFilters) (*CouponPage, error) {
	coupons, total, err := s.coupons.List(ctx, filters, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	page := &CouponPage{Coupons: coupons, TotalCoupons: total}
	if !filters.All {
		page.NumOfPages = models.NewPagination(filters.Page, models.CouponsPerPage).NumOfPages(total)
	}
	return page, nil
}

// Update edits an unexpired coupon without lowering its cap below the redemptions so far
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req *models.CouponUpdateRequest) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "coupon", id)
	}

	now := s.now()
	if err := coupon.CheckNotExpired(now); err != nil {
		return nil, err
	}
	if req.MaxRedemptions != nil {
		if err := coupon.CheckMaxRedemptions(*req.MaxRedemptions); err != nil {
			return nil, err
		}
	}
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	req.Apply(coupon)
	if err := s.coupons.Update(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return coupon, nil
}

// Delete removes a coupon
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.coupons.Delete(ctx, id); err != nil {
		return notFoundOr(err, "coupon", id)
	}
	return nil
}
