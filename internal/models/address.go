package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxAddressesPerUser caps how many addresses one account may keep
const MaxAddressesPerUser = 3

// AddressType labels an address
type AddressType string

const (
	AddressHome   AddressType = "HOME"
	AddressOffice AddressType = "OFFICE"
)

// Address represents a delivery address owned by a user
type Address struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"-" db:"user_id"`
	Address   string      `json:"address" db:"address"`
	City      string      `json:"city" db:"city"`
	Pincode   int         `json:"pincode" db:"pincode"`
	State     string      `json:"state" db:"state"`
	Type      AddressType `json:"type" db:"type"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// AddressCreateRequest represents the data needed to create an address
type AddressCreateRequest struct {
	Address string      `json:"address" validate:"required,min=10,max=200"`
	City    string      `json:"city" validate:"required,min=3,max=20"`
	Pincode int         `json:"pincode" validate:"required"`
	State   string      `json:"state" validate:"required,min=3,max=20"`
	Type    AddressType `json:"type" validate:"omitempty,oneof=HOME OFFICE"`
}

// AddressUpdateRequest represents a partial address update
type AddressUpdateRequest struct {
	Address *string      `json:"address" validate:"omitempty,min=10,max=200"`
	City    *string      `json:"city" validate:"omitempty,min=3,max=20"`
	Pincode *int         `json:"pincode"`
	State   *string      `json:"state" validate:"omitempty,min=3,max=20"`
	Type    *AddressType `json:"type" validate:"omitempty,oneof=HOME OFFICE"`
}

// Apply copies the present fields onto the address
func (req *AddressUpdateRequest) Apply(a *Address) {
	if req.Address != nil {
		a.Address = *req.Address
	}
	if req.City != nil {
		a.City = *req.City
	}
	if req.Pincode != nil {
		a.Pincode = *req.Pincode
	}
	if req.State != nil {
		a.State = *req.State
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
}
