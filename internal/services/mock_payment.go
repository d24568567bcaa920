package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecommerce-platform/internal/config"
	"ecommerce-platform/internal/models"
)

// MockPaymentSecret signs mock payments when no Razorpay secret is configured
const MockPaymentSecret = "mock_payment_secret"

// MockPaymentGateway fakes the gateway for local development
type MockPaymentGateway struct {
	secret string
	logger *zap.Logger
}

// NewMockPaymentGateway creates a gateway that accepts payments signed with secret
func NewMockPaymentGateway(secret string, logger *zap.Logger) *MockPaymentGateway {
	if secret == "" {
		secret = MockPaymentSecret
	}
	return &MockPaymentGateway{secret: secret, logger: logger}
}

// NewPaymentGateway returns Razorpay when credentials are configured, the mock otherwise
func NewPaymentGateway(cfg config.RazorpayConfig, logger *zap.Logger) (PaymentGateway, error) {
	if cfg.KeyID != "" && cfg.KeySecret != "" {
		gateway, err := NewRazorpayGateway(cfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("payment gateway: using Razorpay API")
		return gateway, nil
	}

	logger.Warn("payment gateway: using mock (no Razorpay credentials provided)")
	return NewMockPaymentGateway(cfg.KeySecret, logger), nil
}

// CreateOrder returns a created order without calling out
func (g *MockPaymentGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.GatewayOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive, got %d", amount)
	}

	order := &models.GatewayOrder{
		ID:        "order_mock_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14],
		Entity:    "order",
		Amount:    amount,
		AmountDue: amount,
		Currency:  currency,
		Receipt:   receipt,
		Status:    "created",
		CreatedAt: time.Now().Unix(),
	}

	g.logger.Info("mock payment: order created", zap.String("order_id", order.ID), zap.Int64("amount", amount))
	return order, nil
}

// VerifySignature checks the signature against the mock secret
func (g *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return verifyPaymentSignature(g.secret, orderID, paymentID, signature)
}

// KeyID returns a placeholder checkout key
func (g *MockPaymentGateway) KeyID() string {
	return "rzp_test_mock"
}
