package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecommerce-platform/internal/models"
)

func cartFixture() []models.CartProduct {
	return []models.CartProduct{
		{
			ID:             uuid.New(),
			Name:           "Runner",
			Price:          decimal.RequireFromString("1000"),
			Discount:       models.DiscountPercentage,
			DiscountAmount: decimal.RequireFromString("10"),
			Inventory:      4,
		},
		{
			ID:             uuid.New(),
			Name:           "Loafer",
			Price:          decimal.RequireFromString("500"),
			Discount:       models.DiscountFixed,
			DiscountAmount: decimal.RequireFromString("50"),
			Inventory:      2,
		},
	}
}

func newTestCartService(products *MockProductRepository, coupons *MockCouponRepository, now time.Time) *CartService {
	s := NewCartService(products, coupons)
	s.now = fixedClock(now)
	return s
}

func TestCartService_PriceCart(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("no coupon", func(t *testing.T) {
		products := new(MockProductRepository)
		coupons := new(MockCouponRepository)
		products.On("CartProducts", mock.Anything, userID).Return(cartFixture(), nil)

		quote, err := newTestCartService(products, coupons, now).PriceCart(t.Context(), userID, nil)

		require.NoError(t, err)
		assert.Equal(t, "1350", quote.SubTotal.String())
		assert.Equal(t, "1350", quote.Total.String())
		assert.True(t, quote.Discount.IsZero())
		assert.Nil(t, quote.Applied)
		assert.Len(t, quote.Products, 2)
		coupons.AssertNotCalled(t, "GetRedeemable", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("redeemable fixed coupon", func(t *testing.T) {
		products := new(MockProductRepository)
		coupons := new(MockCouponRepository)
		coupon := &models.Coupon{ID: uuid.New(), Type: models.DiscountFixed, Amount: decimal.RequireFromString("100")}
		products.On("CartProducts", mock.Anything, userID).Return(cartFixture(), nil)
		coupons.On("GetRedeemable", mock.Anything, coupon.ID, now).Return(coupon, nil)

		quote, err := newTestCartService(products, coupons, now).PriceCart(t.Context(), userID, &coupon.ID)

		require.NoError(t, err)
		assert.Equal(t, "1350", quote.SubTotal.String())
		assert.Equal(t, "1250", quote.Total.String())
		assert.Equal(t, "100", quote.Discount.String())
		assert.Equal(t, coupon, quote.Applied)
		assert.Equal(t, &coupon.ID, quote.Coupon)
	})

	t.Run("unknown coupon is ignored but echoed", func(t *testing.T) {
		products := new(MockProductRepository)
		coupons := new(MockCouponRepository)
		couponID := uuid.New()
		products.On("CartProducts", mock.Anything, userID).Return(cartFixture(), nil)
		coupons.On("GetRedeemable", mock.Anything, couponID, now).Return(nil, models.ErrNotFound)

		quote, err := newTestCartService(products, coupons, now).PriceCart(t.Context(), userID, &couponID)

		require.NoError(t, err)
		assert.Equal(t, "1350", quote.Total.String())
		assert.Nil(t, quote.Applied)
		assert.Equal(t, &couponID, quote.Coupon)
	})

	t.Run("empty cart skips the coupon lookup", func(t *testing.T) {
		products := new(MockProductRepository)
		coupons := new(MockCouponRepository)
		couponID := uuid.New()
		products.On("CartProducts", mock.Anything, userID).Return([]models.CartProduct{}, nil)

		quote, err := newTestCartService(products, coupons, now).PriceCart(t.Context(), userID, &couponID)

		require.NoError(t, err)
		assert.True(t, quote.Total.IsZero())
		assert.Nil(t, quote.Applied)
		coupons.AssertNotCalled(t, "GetRedeemable", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		products := new(MockProductRepository)
		coupons := new(MockCouponRepository)
		products.On("CartProducts", mock.Anything, userID).Return(nil, errors.New("connection reset"))

		_, err := newTestCartService(products, coupons, now).PriceCart(t.Context(), userID, nil)

		require.Error(t, err)
		assert.Zero(t, models.KindOf(err))
	})
}
