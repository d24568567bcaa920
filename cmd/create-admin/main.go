package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/config"
	"ecommerce-platform/internal/database"
	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/repositories"
	"ecommerce-platform/internal/utils"
)

// create-admin provisions a verified, authorized admin account, or resets
// the password of an existing one.
func main() {
	var (
		email     = flag.String("email", "admin@example.com", "Admin email")
		password  = flag.String("password", "", "Admin password (must be strong)")
		firstName = flag.String("first-name", "Admin", "Admin first name")
		contactNo = flag.String("contact", "9999999999", "Admin contact number")
	)
	flag.Parse()

	if !utils.IsStrongPassword(*password) {
		log.Fatal("Please provide a strong -password (8+ chars with upper, lower, digit and symbol)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	userRepo := repositories.NewUserRepository(db.DB)

	passwordHash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	existing, err := userRepo.GetByEmail(ctx, strings.ToLower(*email))
	switch {
	case err == nil:
		existing.PasswordHash = passwordHash
		existing.Role = models.RoleAdmin
		existing.Authorized = true
		if err := userRepo.Update(ctx, existing); err != nil {
			log.Fatal("Failed to update admin:", err)
		}
		fmt.Printf("Admin %s updated (id %s)\n", existing.Email, existing.ID)
		return
	case !errors.Is(err, models.ErrNotFound):
		log.Fatal("Failed to look up admin:", err)
	}

	now := time.Now()
	admin := &models.User{
		ID:           uuid.New(),
		FirstName:    *firstName,
		ContactNo:    *contactNo,
		Email:        strings.ToLower(*email),
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
		IsVerified:   true,
		VerifiedAt:   &now,
		Authorized:   true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	fmt.Printf("Admin created: %s (id %s)\n", admin.Email, admin.ID)
}
