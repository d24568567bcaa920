package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecommerce-platform/internal/models"
)

type orderFixture struct {
	orders    *MockOrderRepository
	addresses *MockAddressRepository
	users     *MockUserRepository
	products  *MockProductRepository
	coupons   *MockCouponRepository
	gateway   *MockPaymentGatewayForOrders
	service   *OrderService
	now       time.Time
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    new(MockOrderRepository),
		addresses: new(MockAddressRepository),
		users:     new(MockUserRepository),
		products:  new(MockProductRepository),
		coupons:   new(MockCouponRepository),
		gateway:   new(MockPaymentGatewayForOrders),
		now:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	cart := NewCartService(f.products, f.coupons)
	cart.now = fixedClock(f.now)
	f.service = NewOrderService(f.orders, f.addresses, f.users, cart, f.gateway, "INR", zap.NewNop())
	f.service.now = fixedClock(f.now)
	return f
}

func TestOrderService_Create(t *testing.T) {
	user := &models.User{ID: uuid.New(), FirstName: "Asha", Email: "asha@example.com", ContactNo: "9876543210", Role: models.RoleBasic}
	actor := models.Actor{UserID: user.ID, Role: models.RoleBasic}

	t.Run("creates an unpaid order for the priced cart", func(t *testing.T) {
		f := newOrderFixture()
		address := &models.Address{ID: uuid.New(), UserID: user.ID}
		coupon := &models.Coupon{ID: uuid.New(), Type: models.DiscountPercentage, Amount: decimal.RequireFromString("10")}
		cart := cartFixture()

		f.addresses.On("GetByID", mock.Anything, address.ID).Return(address, nil)
		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.products.On("CartProducts", mock.Anything, user.ID).Return(cart, nil)
		f.coupons.On("GetRedeemable", mock.Anything, coupon.ID, f.now).Return(coupon, nil)
		f.gateway.On("CreateOrder", mock.Anything, int64(121500), "INR", mock.AnythingOfType("string")).
			Return(&models.GatewayOrder{ID: "order_abc", Amount: 121500, Currency: "INR"}, nil)
		f.gateway.On("KeyID").Return("rzp_test_key")
		f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.OrderID == "order_abc" &&
				o.UserID == user.ID &&
				!o.IsPaid &&
				o.Total.Equal(decimal.RequireFromString("1215")) &&
				o.Discount.Equal(decimal.RequireFromString("135")) &&
				o.CouponID != nil && *o.CouponID == coupon.ID &&
				len(o.ProductIDs) == 2 && o.ProductIDs[0] == cart[0].ID
		})).Return(nil)

		result, err := f.service.Create(t.Context(), actor, &models.OrderCreateRequest{
			AddressID: address.ID.String(),
			Coupon:    coupon.ID.String(),
		})

		require.NoError(t, err)
		assert.Equal(t, "order_abc", result.Order.ID)
		assert.Equal(t, "rzp_test_key", result.Key)
		assert.Equal(t, user.Summary(), result.User)
		f.orders.AssertExpectations(t)
	})

	t.Run("address of another user", func(t *testing.T) {
		f := newOrderFixture()
		address := &models.Address{ID: uuid.New(), UserID: uuid.New()}
		f.addresses.On("GetByID", mock.Anything, address.ID).Return(address, nil)

		_, err := f.service.Create(t.Context(), actor, &models.OrderCreateRequest{AddressID: address.ID.String()})

		require.Error(t, err)
		assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
		f.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown address", func(t *testing.T) {
		f := newOrderFixture()
		addressID := uuid.New()
		f.addresses.On("GetByID", mock.Anything, addressID).Return(nil, models.ErrNotFound)

		_, err := f.service.Create(t.Context(), actor, &models.OrderCreateRequest{AddressID: addressID.String()})

		require.Error(t, err)
		assert.Equal(t, models.KindNotFound, models.KindOf(err))
		assert.EqualError(t, err, fmt.Sprintf("No address found with id of %s", addressID))
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newOrderFixture()
		address := &models.Address{ID: uuid.New(), UserID: user.ID}
		f.addresses.On("GetByID", mock.Anything, address.ID).Return(address, nil)
		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.products.On("CartProducts", mock.Anything, user.ID).Return([]models.CartProduct{}, nil)

		_, err := f.service.Create(t.Context(), actor, &models.OrderCreateRequest{AddressID: address.ID.String()})

		require.Error(t, err)
		assert.Equal(t, models.KindBadRequest, models.KindOf(err))
		assert.EqualError(t, err, "Your cart is empty")
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed address id", func(t *testing.T) {
		f := newOrderFixture()

		_, err := f.service.Create(t.Context(), actor, &models.OrderCreateRequest{AddressID: "nope"})

		assert.Equal(t, models.KindBadRequest, models.KindOf(err))
	})
}

func TestOrderService_Verify(t *testing.T) {
	userID := uuid.New()
	actor := models.Actor{UserID: userID, Role: models.RoleBasic}
	req := &models.OrderVerifyRequest{OrderID: "order_abc", PaymentID: "pay_123", Signature: "sig"}

	t.Run("signature mismatch touches nothing", func(t *testing.T) {
		f := newOrderFixture()
		f.gateway.On("VerifySignature", "order_abc", "pay_123", "sig").Return(false)

		err := f.service.Verify(t.Context(), actor, req)

		require.Error(t, err)
		assert.Equal(t, models.KindUnauthenticated, models.KindOf(err))
		assert.EqualError(t, err, "Payment verification failed")
		f.orders.AssertNotCalled(t, "GetByGatewayID", mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "CompletePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("settles the order", func(t *testing.T) {
		f := newOrderFixture()
		order := &models.Order{ID: uuid.New(), OrderID: "order_abc", UserID: userID}
		f.gateway.On("VerifySignature", "order_abc", "pay_123", "sig").Return(true)
		f.orders.On("GetByGatewayID", mock.Anything, "order_abc").Return(order, nil)
		f.orders.On("CompletePayment", mock.Anything, order, "pay_123", f.now).Return(nil)

		err := f.service.Verify(t.Context(), actor, req)

		require.NoError(t, err)
		f.orders.AssertExpectations(t)
	})

	t.Run("already paid", func(t *testing.T) {
		f := newOrderFixture()
		order := &models.Order{ID: uuid.New(), OrderID: "order_abc", UserID: userID, IsPaid: true}
		f.gateway.On("VerifySignature", "order_abc", "pay_123", "sig").Return(true)
		f.orders.On("GetByGatewayID", mock.Anything, "order_abc").Return(order, nil)

		err := f.service.Verify(t.Context(), actor, req)

		assert.Equal(t, models.KindConflict, models.KindOf(err))
		f.orders.AssertNotCalled(t, "CompletePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("order of another user", func(t *testing.T) {
		f := newOrderFixture()
		order := &models.Order{ID: uuid.New(), OrderID: "order_abc", UserID: uuid.New()}
		f.gateway.On("VerifySignature", "order_abc", "pay_123", "sig").Return(true)
		f.orders.On("GetByGatewayID", mock.Anything, "order_abc").Return(order, nil)

		err := f.service.Verify(t.Context(), actor, req)

		assert.Equal(t, models.KindUnauthorized, models.KindOf(err))
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newOrderFixture()
		f.gateway.On("VerifySignature", "order_abc", "pay_123", "sig").Return(true)
		f.orders.On("GetByGatewayID", mock.Anything, "order_abc").Return(nil, models.ErrNotFound)

		err := f.service.Verify(t.Context(), actor, req)

		assert.Equal(t, models.KindNotFound, models.KindOf(err))
	})

	guardErrors := []struct {
		name    string
		repoErr error
		kind    models.ErrorKind
		message string
	}{
		{"redemption limit", fmt.Errorf("tx: %w", models.ErrRedemptionLimit), models.KindBadRequest, "Coupon redemption limit reached"},
		{"out of stock", models.ErrInsufficientInventory, models.KindBadRequest, "Insufficient inventory"},
		{"lost race", models.ErrAlreadyPaid, models.KindConflict, "Order already paid"},
	}
	for _, tt := range guardErrors {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			order := &models.Order{ID: uuid.New(), OrderID: "order_abc", UserID: userID}
			f.gateway.On("VerifySignature", "order_abc", "pay_123", "sig").Return(true)
			f.orders.On("GetByGatewayID", mock.Anything, "order_abc").Return(order, nil)
			f.orders.On("CompletePayment", mock.Anything, order, "pay_123", f.now).Return(tt.repoErr)

			err := f.service.Verify(t.Context(), actor, req)

			assert.Equal(t, tt.kind, models.KindOf(err))
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestOrderService_ListMine(t *testing.T) {
	f := newOrderFixture()
	userID := uuid.New()
	orders := []*models.Order{{ID: uuid.New(), UserID: userID}}
	f.orders.On("List", mock.Anything, mock.MatchedBy(func(filters models.OrderListFilters) bool {
		return filters.UserID != nil && *filters.UserID == userID && filters.Page == 2
	})).Return(orders, 17, nil)

	page, err := f.service.ListMine(t.Context(), models.Actor{UserID: userID}, 2)

	require.NoError(t, err)
	assert.Equal(t, 17, page.TotalOrders)
	assert.Equal(t, 3, page.NumOfPages)
	assert.Len(t, page.Orders, 1)
}
