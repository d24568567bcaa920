package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/pricing"
)

// CartQuote is the priced cart of a user
type CartQuote struct {
	models.CartPrice
	Coupon *uuid.UUID `json:"coupon"`

	// Applied is the coupon that took effect, nil when none did
	Applied  *models.Coupon      `json:"-"`
	Products []models.CartProduct `json:"-"`
}

// CartService prices carts. It never writes
type CartService struct {
	products ProductRepository
	coupons  CouponRepository
	now      func() time.Time
}

// NewCartService creates a new cart service
func NewCartService(products ProductRepository, coupons CouponRepository) *CartService {
	return &CartService{products: products, coupons: coupons, now: time.Now}
}

// GetCart returns the products in the user's cart
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartProduct, error) {
	products, err := s.products.CartProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return products, nil
}

// PriceCart sums the discounted prices of the cart and applies couponID when it is redeemable.
// An ineligible or unknown coupon is ignored.
func (s *CartService) PriceCart(ctx context.Context, userID uuid.UUID, couponID *uuid.UUID) (*CartQuote, error) {
	products, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := lo.Map(products, func(p models.CartProduct, _ int) models.LineItem {
		return models.LineItem{
			ID:             p.ID,
			Price:          p.Price,
			Discount:       p.Discount,
			DiscountAmount: p.DiscountAmount,
		}
	})

	var coupon *models.Coupon
	if couponID != nil && len(items) > 0 {
		coupon, err = s.coupons.GetRedeemable(ctx, *couponID, s.now())
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve coupon: %w", err)
		}
	}

	price := pricing.PriceCart(items, coupon)
	quote := &CartQuote{
		CartPrice: price,
		Coupon:    couponID,
		Products:  products,
	}
	if coupon != nil && price.SubTotal.IsPositive() {
		quote.Applied = coupon
	}
	return quote, nil
}
