package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon represents a discount code with a validity window and a redemption cap
type Coupon struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Code             string          `json:"code" db:"code"`
	Type             DiscountKind    `json:"type" db:"type"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	StartTime        time.Time       `json:"startTime" db:"start_time"`
	ExpiryTime       time.Time       `json:"expiryTime" db:"expiry_time"`
	Valid            bool            `json:"valid" db:"valid"`
	MaxRedemptions   int             `json:"maxRedemptions" db:"max_redemptions"`
	TotalRedemptions int             `json:"totalRedemptions" db:"total_redemptions"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}

// IsExpired returns true once the expiry time has passed
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiryTime.Before(now)
}

// IsRedeemable reports whether the coupon may be applied to a cart right now
func (c *Coupon) IsRedeemable(now time.Time) bool {
	return c.Valid && !c.IsExpired(now) && c.TotalRedemptions < c.MaxRedemptions
}

// CheckNotExpired rejects edits to an expired coupon
func (c *Coupon) CheckNotExpired(now time.Time) error {
	if c.IsExpired(now) {
		return BadRequest("Coupon expired")
	}
	return nil
}

// CheckMaxRedemptions rejects lowering the cap below what has already been redeemed
func (c *Coupon) CheckMaxRedemptions(maxRedemptions int) error {
	if maxRedemptions < c.TotalRedemptions {
		return BadRequest("Total redemptions already passed %d redemptions", maxRedemptions)
	}
	return nil
}

// CouponCreateRequest represents the data needed to create a coupon
type CouponCreateRequest struct {
	Type           DiscountKind    `json:"type" validate:"omitempty,oneof=PERCENTAGE FIXED"`
	Amount         decimal.Decimal `json:"amount"`
	Code           string          `json:"code" validate:"required,min=3,max=10"`
	StartTime      *time.Time      `json:"startTime"`
	ExpiryTime     time.Time       `json:"expiryTime" validate:"required"`
	Valid          *bool           `json:"valid"`
	MaxRedemptions int             `json:"maxRedemptions" validate:"required,min=1"`
}

// Validate checks the rules the struct tags cannot express
func (req *CouponCreateRequest) Validate(now time.Time) error {
	if !req.Amount.IsPositive() {
		return BadRequest("amount must be greater than 0")
	}
	if req.Type != DiscountFixed && req.Amount.GreaterThan(decimal.NewFromInt(100)) {
		return BadRequest("amount must not exceed 100 for a percentage coupon")
	}
	if req.StartTime != nil && !req.StartTime.After(now) {
		return BadRequest("Start time already passed")
	}
	if !req.ExpiryTime.After(now) {
		return BadRequest("Expiry time already passed")
	}
	return nil
}

// ToCoupon builds the coupon row, applying defaults
func (req *CouponCreateRequest) ToCoupon(now time.Time) *Coupon {
	c := &Coupon{
		ID:             uuid.New(),
		Code:           req.Code,
		Type:           req.Type,
		Amount:         req.Amount,
		StartTime:      now,
		ExpiryTime:     req.ExpiryTime,
		Valid:          true,
		MaxRedemptions: req.MaxRedemptions,
	}
	if c.Type == "" {
		c.Type = DiscountPercentage
	}
	if req.StartTime != nil {
		c.StartTime = *req.StartTime
	}
	if req.Valid != nil {
		c.Valid = *req.Valid
	}
	return c
}

// CouponUpdateRequest represents an admin coupon edit
type CouponUpdateRequest struct {
	ExpiryTime     *time.Time `json:"expiryTime"`
	Valid          *bool      `json:"valid"`
	MaxRedemptions *int       `json:"maxRedemptions" validate:"omitempty,min=1"`
}

// Validate checks the rules the struct tags cannot express
func (req *CouponUpdateRequest) Validate(now time.Time) error {
	if req.ExpiryTime != nil && !req.ExpiryTime.After(now) {
		return BadRequest("Expiry time already passed")
	}
	return nil
}

// Apply copies the present fields onto the coupon
func (req *CouponUpdateRequest) Apply(c *Coupon) {
	if req.ExpiryTime != nil {
		c.ExpiryTime = *req.ExpiryTime
	}
	if req.Valid != nil {
		c.Valid = *req.Valid
	}
	if req.MaxRedemptions != nil {
		c.MaxRedemptions = *req.MaxRedemptions
	}
}

// CouponListFilters represents the coupon search
type CouponListFilters struct {
	Search         string
	Type           *DiscountKind
	Status         *bool // true: valid and unexpired, false: invalid or expired
	RedemptionSort *SortDirection
	Sort           SortDirection
	Page           int
	All            bool // every redeemable coupon, unpaginated
}
