package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// CategoryRequest represents a category create or update
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=3,max=20"`
}

// Size is a product size option
type Size struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Value     int       `json:"value" db:"value"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// SizeRequest represents a size create or update
type SizeRequest struct {
	Value *int `json:"value" validate:"required"`
}

// ReturnReason is a selectable reason for returning an order
type ReturnReason struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// ReturnReasonRequest represents a return reason create or update
type ReturnReasonRequest struct {
	Title string `json:"title" validate:"required,min=5,max=50"`
}
