package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a priced purchase registered with the payment gateway
type Order struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   string          `json:"orderId" db:"order_id"` // gateway-assigned
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	AddressID *uuid.UUID      `json:"addressId" db:"address_id"`
	SubTotal  decimal.Decimal `json:"subTotal" db:"sub_total"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Discount  decimal.Decimal `json:"discount" db:"discount"`
	CouponID  *uuid.UUID      `json:"couponId" db:"coupon_id"`
	IsPaid    bool            `json:"isPaid" db:"is_paid"`
	PaidAt    *time.Time      `json:"paidAt" db:"paid_at"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`

	ProductIDs []uuid.UUID    `json:"-"`
	Products   []OrderProduct `json:"products,omitempty"`
	Address    *Address       `json:"address,omitempty"`
}

// OrderProduct is a product as listed on an order
type OrderProduct struct {
	ID    uuid.UUID       `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
	Color string          `json:"color" db:"color"`
	Image string          `json:"image" db:"image"`
}

// CanBeVerified returns true if the order is still awaiting payment
func (o *Order) CanBeVerified() bool {
	return !o.IsPaid
}

// HasCoupon returns true if a coupon was applied at checkout
func (o *Order) HasCoupon() bool {
	return o.CouponID != nil
}

// CartPrice is the priced snapshot of a cart
type CartPrice struct {
	SubTotal decimal.Decimal `json:"subTotal"`
	Total    decimal.Decimal `json:"total"`
	Discount decimal.Decimal `json:"discount"`
}

// GatewayOrder is the order descriptor returned by the payment gateway
type GatewayOrder struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"`
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	CreatedAt  int64  `json:"created_at"`
}

// OrderCreateRequest represents a checkout request
type OrderCreateRequest struct {
	AddressID string `json:"addressId" validate:"required,uuid"`
	Coupon    string `json:"coupon" validate:"omitempty,uuid"`
}

// AddressUUID returns the parsed address id
func (req *OrderCreateRequest) AddressUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(req.AddressID)
	if err != nil {
		return uuid.Nil, BadRequest("addressId must be a valid id")
	}
	return id, nil
}

// CouponUUID returns the parsed coupon id, nil when no coupon was supplied
func (req *OrderCreateRequest) CouponUUID() (*uuid.UUID, error) {
	return ParseOptionalID(req.Coupon, "coupon")
}

// OrderCreateResult is what the client needs to start the gateway payment
type OrderCreateResult struct {
	Order *GatewayOrder `json:"order"`
	Key   string        `json:"key"`
	User  UserSummary   `json:"user"`
}

// OrderVerifyRequest carries the gateway's payment callback values
type OrderVerifyRequest struct {
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	OrderID   string `json:"orderId" validate:"required"`
}

// OrderListFilters represents the order search
type OrderListFilters struct {
	UserID    *uuid.UUID
	IsPaid    *bool
	PriceSort *SortDirection
	Sort      SortDirection
	Page      int
}

// Event types written to the outbox
const (
	EventOrderPaid = "order.paid"
)

// OutboxEvent is a domain event waiting to be published
type OutboxEvent struct {
	ID          int64           `db:"id"`
	AggregateID string          `db:"aggregate_id"`
	EventType   string          `db:"event_type"`
	Payload     json.RawMessage `db:"payload"`
	CreatedAt   time.Time       `db:"created_at"`
}

// OrderPaidEvent is the payload of an order.paid event
type OrderPaidEvent struct {
	OrderID    string          `json:"orderId"`
	PaymentID  string          `json:"paymentId"`
	UserID     uuid.UUID       `json:"userId"`
	Total      decimal.Decimal `json:"total"`
	CouponID   *uuid.UUID      `json:"couponId,omitempty"`
	ProductIDs []uuid.UUID     `json:"productIds"`
	PaidAt     time.Time       `json:"paidAt"`
}

// ParseOptionalID parses an optional id field, returning nil for an empty value
func ParseOptionalID(value, field string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, BadRequest("%s must be a valid id", field)
	}
	return &id, nil
}
