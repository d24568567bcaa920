package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"ecommerce-platform/internal/authz"
	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/pricing"
)

// OrderPage is one page of an order listing
type OrderPage struct {
	Orders      []*models.Order `json:"orders"`
	TotalOrders int             `json:"totalOrders"`
	NumOfPages  int             `json:"numOfPages"`
}

// OrderService creates orders from carts and settles them when the gateway confirms payment
type OrderService struct {
	orders    OrderRepository
	addresses AddressRepository
	users     UserRepository
	cart      *CartService
	gateway   PaymentGateway
	currency  string
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orders OrderRepository,
	addresses AddressRepository,
	users UserRepository,
	cart *CartService,
	gateway PaymentGateway,
	currency string,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		addresses: addresses,
		users:     users,
		cart:      cart,
		gateway:   gateway,
		currency:  currency,
		logger:    logger,
		now:       time.Now,
	}
}

// Create prices the actor's cart, registers the amount with the gateway and stores the unpaid order
func (s *OrderService) Create(ctx context.Context, actor models.Actor, req *models.OrderCreateRequest) (*models.OrderCreateResult, error) {
	addressID, err := req.AddressUUID()
	if err != nil {
		return nil, err
	}
	couponID, err := req.CouponUUID()
	if err != nil {
		return nil, err
	}

	address, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("No address found with id of %s", addressID)
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	if err := authz.Authorize(actor, address.UserID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "user", actor.UserID)
	}

	quote, err := s.cart.PriceCart(ctx, actor.UserID, couponID)
	if err != nil {
		return nil, err
	}
	if len(quote.Products) == 0 {
		return nil, models.BadRequest("Your cart is empty")
	}
	if !quote.Total.IsPositive() {
		return nil, models.BadRequest("Order total must be greater than zero")
	}

	order := &models.Order{
		ID:        uuid.New(),
		UserID:    actor.UserID,
		AddressID: &addressID,
		SubTotal:  quote.SubTotal,
		Total:     quote.Total,
		Discount:  quote.Discount,
		ProductIDs: lo.Map(quote.Products, func(p models.CartProduct, _ int) uuid.UUID {
			return p.ID
		}),
	}
	if quote.Applied != nil {
		order.CouponID = &quote.Applied.ID
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, pricing.ToSubunits(quote.Total), s.currency, order.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}
	order.OrderID = gatewayOrder.ID

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", order.UserID.String()),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return &models.OrderCreateResult{
		Order: gatewayOrder,
		Key:   s.gateway.KeyID(),
		User:  user.Summary(),
	}, nil
}

// Verify checks the gateway signature and settles the order in one transaction
func (s *OrderService) Verify(ctx context.Context, actor models.Actor, req *models.OrderVerifyRequest) error {
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		s.logger.Warn("payment signature mismatch", zap.String("order_id", req.OrderID), zap.String("payment_id", req.PaymentID))
		return models.Unauthenticated("Payment verification failed")
	}

	order, err := s.orders.GetByGatewayID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NotFound("No order found with id of %s", req.OrderID)
		}
		return fmt.Errorf("failed to get order: %w", err)
	}
	if err := authz.Authorize(actor, order.UserID); err != nil {
		return err
	}
	if !order.CanBeVerified() {
		return models.Conflict("Order already paid")
	}

	err = s.orders.CompletePayment(ctx, order, req.PaymentID, s.now())
	switch {
	case err == nil:
	case errors.Is(err, models.ErrAlreadyPaid):
		return models.Conflict("Order already paid")
	case errors.Is(err, models.ErrRedemptionLimit):
		return models.BadRequest("Coupon redemption limit reached")
	case errors.Is(err, models.ErrInsufficientInventory):
		return models.BadRequest("Insufficient inventory")
	default:
		return fmt.Errorf("failed to complete payment: %w", err)
	}

	s.logger.Info("order paid", zap.String("order_id", order.OrderID), zap.String("payment_id", req.PaymentID))
	return nil
}

// ListMine returns the actor's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, actor models.Actor, page int) (*OrderPage, error) {
	return s.List(ctx, models.OrderListFilters{UserID: &actor.UserID, Page: page})
}

// List returns a filtered page of orders
func (s *OrderService) List(ctx context.Context, filters models.OrderListFilters) (*OrderPage, error) {
	orders, total, err := s.orders.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	pagination := models.NewPagination(filters.Page, models.OrdersPerPage)
	return &OrderPage{
		Orders:      orders,
		TotalOrders: total,
		NumOfPages:  pagination.NumOfPages(total),
	}, nil
}
