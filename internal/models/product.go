package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountKind is how a product discount or coupon amount is interpreted
type DiscountKind string

const (
	DiscountNone       DiscountKind = "NONE"
	DiscountPercentage DiscountKind = "PERCENTAGE"
	DiscountFixed      DiscountKind = "FIXED"
)

// MinProductPrice is the lowest list price accepted for a product
var MinProductPrice = decimal.NewFromInt(100)

// LineItem is the slice of a product that pricing consumes
type LineItem struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Discount       DiscountKind    `json:"discount" db:"discount"`
	DiscountAmount decimal.Decimal `json:"discountAmount" db:"discount_amount"`
}

// Product represents a catalog product
type Product struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Discount       DiscountKind    `json:"discount" db:"discount"`
	DiscountAmount decimal.Decimal `json:"discountAmount" db:"discount_amount"`
	CategoryID     uuid.UUID       `json:"categoryId" db:"category_id"`
	Featured       bool            `json:"featured" db:"featured"`
	Color          string          `json:"color" db:"color"`
	Description    string          `json:"description" db:"description"`
	Inventory      int             `json:"inventory" db:"inventory"`
	Image          string          `json:"image" db:"image"`
	ImageID        string          `json:"-" db:"image_id"`
	AverageRating  decimal.Decimal `json:"averageRating" db:"average_rating"`
	NumOfReviews   int             `json:"numOfReviews" db:"num_of_reviews"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`

	Category      *Category `json:"category,omitempty"`
	Sizes         []Size    `json:"sizes"`
	IsWishListed  bool      `json:"isWishListed"`
	IsAddedToCart bool      `json:"isAddedToCart"`
}

// LineItem returns the pricing view of the product
func (p *Product) LineItem() LineItem {
	return LineItem{
		ID:             p.ID,
		Price:          p.Price,
		Discount:       p.Discount,
		DiscountAmount: p.DiscountAmount,
	}
}

// InStock returns true if at least one unit is available
func (p *Product) InStock() bool {
	return p.Inventory > 0
}

// CartProduct is a product as shown in the cart
type CartProduct struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Price          decimal.Decimal `json:"price" db:"price"`
	Discount       DiscountKind    `json:"discount" db:"discount"`
	DiscountAmount decimal.Decimal `json:"discountAmount" db:"discount_amount"`
	Color          string          `json:"color" db:"color"`
	Inventory      int             `json:"inventory" db:"inventory"`
	Image          string          `json:"image" db:"image"`
}

// ProductInput carries the product fields of a create or update form
type ProductInput struct {
	Name           *string          `validate:"omitempty,min=3,max=50"`
	Price          *decimal.Decimal `validate:"-"`
	Discount       *DiscountKind    `validate:"omitempty,oneof=NONE PERCENTAGE FIXED"`
	DiscountAmount *decimal.Decimal `validate:"-"`
	SizeIDs        []uuid.UUID      `validate:"-"`
	CategoryID     *uuid.UUID       `validate:"-"`
	Featured       *bool            `validate:"-"`
	Color          *string          `validate:"omitempty,min=1"`
	Description    *string          `validate:"omitempty,max=500"`
	Inventory      *int             `validate:"omitempty,min=0"`
}

// ValidateCreate checks that every field required for a new product is present
func (in *ProductInput) ValidateCreate() error {
	switch {
	case in.Name == nil:
		return BadRequest("name is required")
	case in.Price == nil:
		return BadRequest("price is required")
	case in.SizeIDs == nil:
		return BadRequest("sizes is required")
	case in.CategoryID == nil:
		return BadRequest("categoryId is required")
	case in.Color == nil:
		return BadRequest("color is required")
	case in.Description == nil:
		return BadRequest("description is required")
	}
	return in.validateAmounts()
}

// ValidateUpdate checks the optional fields of an update
func (in *ProductInput) ValidateUpdate() error {
	return in.validateAmounts()
}

func (in *ProductInput) validateAmounts() error {
	if in.Price != nil && in.Price.LessThan(MinProductPrice) {
		return BadRequest("price must be greater than or equal to %s", MinProductPrice)
	}
	if in.DiscountAmount != nil && in.DiscountAmount.IsNegative() {
		return BadRequest("discountAmount must not be negative")
	}
	if in.Discount != nil && *in.Discount == DiscountPercentage &&
		in.DiscountAmount != nil && in.DiscountAmount.GreaterThan(decimal.NewFromInt(100)) {
		return BadRequest("discountAmount must not exceed 100 for a percentage discount")
	}
	return nil
}

// Apply copies the present fields onto the product
func (in *ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if in.DiscountAmount != nil {
		p.DiscountAmount = *in.DiscountAmount
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Color != nil {
		p.Color = *in.Color
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Inventory != nil {
		p.Inventory = *in.Inventory
	}
}

// ProductSort is one of the supported product orderings
type ProductSort string

const (
	ProductSortHighestRated ProductSort = "highest-rated"
	ProductSortLatest       ProductSort = "latest"
	ProductSortOldest       ProductSort = "oldest"
	ProductSortNameAsc      ProductSort = "a-z"
	ProductSortNameDesc     ProductSort = "z-a"
)

// ProductListFilters represents the product search
type ProductListFilters struct {
	Search     string
	CategoryID *uuid.UUID
	SizeID     *uuid.UUID
	Featured   bool
	PriceSort  *SortDirection
	Sort       ProductSort
	Page       int
	ViewerID   *uuid.UUID
}
