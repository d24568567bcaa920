package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"first and last", User{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", User{FirstName: "Jane"}, "Jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("User.FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUser_RoleAndStatusChecks(t *testing.T) {
	admin := User{Role: RoleAdmin, Status: StatusActive}
	shopper := User{Role: RoleBasic, Status: StatusLocked}

	if !admin.IsAdmin() || shopper.IsAdmin() {
		t.Errorf("IsAdmin() mismatch: admin=%v shopper=%v", admin.IsAdmin(), shopper.IsAdmin())
	}
	if !admin.IsActive() || shopper.IsActive() {
		t.Errorf("IsActive() mismatch: admin=%v shopper=%v", admin.IsActive(), shopper.IsActive())
	}
	if !(Actor{Role: RoleAdmin}).IsAdmin() || (Actor{Role: RoleBasic}).IsAdmin() {
		t.Error("Actor.IsAdmin() should follow the role")
	}
}

func TestUser_HasPendingPasswordToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token := "hashed"
	later := now.Add(10 * time.Minute)
	earlier := now.Add(-time.Second)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"no token", User{}, false},
		{"token without expiry", User{PasswordToken: &token}, false},
		{"unexpired", User{PasswordToken: &token, PasswordTokenExpiration: &later}, true},
		{"expired", User{PasswordToken: &token, PasswordTokenExpiration: &earlier}, false},
		{"expires now", User{PasswordToken: &token, PasswordTokenExpiration: &now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.HasPendingPasswordToken(now); got != tt.want {
				t.Errorf("HasPendingPasswordToken() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_Summary(t *testing.T) {
	u := User{
		ID:           uuid.New(),
		FirstName:    "Jane",
		LastName:     "Doe",
		ContactNo:    "9876543210",
		Email:        "jane@example.com",
		PasswordHash: "secret",
	}

	got := u.Summary()
	want := UserSummary{ID: u.ID, FirstName: "Jane", LastName: "Doe", ContactNo: "9876543210", Email: "jane@example.com"}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}
