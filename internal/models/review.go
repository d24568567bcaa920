package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a product
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	ProductID uuid.UUID `json:"-" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User *Reviewer `json:"user,omitempty"`
}

// Reviewer is the public profile shown next to a review
type Reviewer struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	ProfileImage *string   `json:"profileImage"`
}

// ReviewCreateRequest represents a new review
type ReviewCreateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=100"`
}

// ReviewUpdateRequest represents a review edit
type ReviewUpdateRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=100"`
}

// Apply copies the present fields onto the review
func (req *ReviewUpdateRequest) Apply(r *Review) {
	if req.Rating != nil {
		r.Rating = *req.Rating
	}
	if req.Comment != nil {
		r.Comment = *req.Comment
	}
}
