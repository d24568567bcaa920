package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/currency"

	"ecommerce-platform/internal/config"
	"ecommerce-platform/internal/models"
)

// RazorpayGateway registers orders through the Razorpay Orders API
type RazorpayGateway struct {
	config config.RazorpayConfig
	client *http.Client
	logger *zap.Logger
}

// NewRazorpayGateway creates a Razorpay client
func NewRazorpayGateway(cfg config.RazorpayConfig, logger *zap.Logger) (*RazorpayGateway, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("razorpay credentials not configured")
	}
	if _, err := currency.ParseISO(cfg.Currency); err != nil {
		return nil, fmt.Errorf("invalid razorpay currency %q: %w", cfg.Currency, err)
	}

	return &RazorpayGateway{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}, nil
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

// RazorpayError is the error body returned by the Razorpay API
type RazorpayError struct {
	StatusCode int `json:"-"`
	Detail     struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (e *RazorpayError) Error() string {
	return fmt.Sprintf("razorpay error (status %d): %s %s", e.StatusCode, e.Detail.Code, e.Detail.Description)
}

// CreateOrder registers amount (in currency subunits) with Razorpay
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, cur, receipt string) (*models.GatewayOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive, got %d", amount)
	}
	unit, err := currency.ParseISO(cur)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", cur, err)
	}

	body, err := json.Marshal(razorpayOrderRequest{Amount: amount, Currency: unit.String(), Receipt: receipt})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	url := strings.TrimSuffix(g.config.BaseURL, "/") + "/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}
	req.SetBasicAuth(g.config.KeyID, g.config.KeySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send order request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleRazorpayError(resp.StatusCode, respBody)
	}

	var order models.GatewayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	g.logger.Info("razorpay order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)
	return &order, nil
}

// VerifySignature checks the checkout callback signature
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return verifyPaymentSignature(g.config.KeySecret, orderID, paymentID, signature)
}

// KeyID returns the public key the checkout widget needs
func (g *RazorpayGateway) KeyID() string {
	return g.config.KeyID
}

func handleRazorpayError(statusCode int, body []byte) error {
	apiErr := &RazorpayError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil {
		return fmt.Errorf("API error (status %d): %s", statusCode, string(body))
	}
	return apiErr
}

// SignPayment returns hex(HMAC-SHA256(secret, orderID|paymentID))
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	expected := SignPayment(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
