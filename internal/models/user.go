package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleBasic UserRole = "BASIC"
	RoleAdmin UserRole = "ADMIN"
)

// AccountStatus represents whether an account may sign in
type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusLocked AccountStatus = "LOCKED"
)

// Gender is the optional gender on a profile
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// User represents a user in the system
type User struct {
	ID                      uuid.UUID     `json:"id" db:"id"`
	FirstName               string        `json:"firstName" db:"first_name"`
	LastName                string        `json:"lastName" db:"last_name"`
	ContactNo               string        `json:"contactNo" db:"contact_no"`
	Email                   string        `json:"email" db:"email"`
	PasswordHash            string        `json:"-" db:"password_hash"`
	Role                    UserRole      `json:"role" db:"role"`
	Status                  AccountStatus `json:"status" db:"status"`
	Gender                  *Gender       `json:"gender" db:"gender"`
	DOB                     *time.Time    `json:"dob" db:"dob"`
	IsVerified              bool          `json:"isVerified" db:"is_verified"`
	VerifiedAt              *time.Time    `json:"-" db:"verified_at"`
	VerificationToken       *string       `json:"-" db:"verification_token"`
	PasswordToken           *string       `json:"-" db:"password_token"`
	PasswordTokenExpiration *time.Time    `json:"-" db:"password_token_expiration"`
	Authorized              bool          `json:"authorized" db:"authorized"`
	ProfileImage            *string       `json:"profileImage" db:"profile_image"`
	ProfileImageID          *string       `json:"profileImageId" db:"profile_image_id"`
	CreatedAt               time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt               time.Time     `json:"updatedAt" db:"updated_at"`
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if the account has not been locked
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasPendingPasswordToken reports whether a reset token exists and has not expired yet
func (u *User) HasPendingPasswordToken(now time.Time) bool {
	if u.PasswordToken == nil || u.PasswordTokenExpiration == nil {
		return false
	}
	return now.Before(*u.PasswordTokenExpiration)
}

// UserSummary is the buyer snapshot returned alongside a new order
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	ContactNo string    `json:"contactNo"`
	Email     string    `json:"email"`
}

// Summary projects the user into a UserSummary
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ContactNo: u.ContactNo,
		Email:     u.Email,
	}
}

// Actor is the authenticated principal performing a request
type Actor struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   UserRole
}

// IsAdmin returns true if the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=20"`
	LastName  string `json:"lastName" validate:"omitempty,max=20"`
	ContactNo string `json:"contactNo" validate:"required,min=10,max=12,numeric"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strongpassword"`
}

// VerifyEmailRequest represents an email verification request
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// ForgotPasswordRequest represents a forgot password request
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents a password reset completion request
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateRequest represents the profile fields a user may change
type UserUpdateRequest struct {
	FirstName string     `json:"firstName" validate:"required,min=3,max=20"`
	LastName  string     `json:"lastName" validate:"omitempty,max=20"`
	ContactNo string     `json:"contactNo" validate:"required,min=10,max=12,numeric"`
	Gender    *Gender    `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	DOB       *time.Time `json:"dob"`
}

// UserStatusUpdateRequest represents an admin status change
type UserStatusUpdateRequest struct {
	Status     *AccountStatus `json:"status" validate:"omitempty,oneof=ACTIVE LOCKED"`
	Authorized *bool          `json:"authorized"`
}

// UserListFilters represents the admin user search
type UserListFilters struct {
	Search string
	Role   *UserRole
	Page   int
}
