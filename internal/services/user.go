package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecommerce-platform/internal/models"
)

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []*models.User `json:"users"`
	TotalUsers int            `json:"totalUsers"`
	NumOfPages int            `json:"numOfPages"`
}

// UserService handles profile management and user administration
type UserService struct {
	users  UserRepository
	images ImageStore
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users UserRepository, images ImageStore, logger *zap.Logger) *UserService {
	return &UserService{users: users, images: images, logger: logger}
}

func (s *UserService) get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("No user found with id of %s", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ShowMe returns the actor's own profile
func (s *UserService) ShowMe(ctx context.Context, actor models.Actor) (*models.User, error) {
	return s.get(ctx, actor.UserID)
}

// UploadProfileImage replaces the actor's profile image
func (s *UserService) UploadProfileImage(ctx context.Context, actor models.Actor, file ImageFile) (*UploadedImage, error) {
	user, err := s.get(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.images.Upload(ctx, ProfileImagesFolder, file)
	if err != nil {
		return nil, err
	}

	previous := user.ProfileImageID
	user.ProfileImage = &uploaded.URL
	user.ProfileImageID = &uploaded.PublicID

	if err := s.users.Update(ctx, user); err != nil {
		s.destroy(ctx, uploaded.PublicID)
		return nil, fmt.Errorf("failed to update profile image: %w", err)
	}

	if previous != nil {
		s.destroy(ctx, *previous)
	}
	return uploaded, nil
}

// RemoveProfileImage clears the actor's profile image when profileImageID is the current one
func (s *UserService) RemoveProfileImage(ctx context.Context, actor models.Actor, profileImageID string) error {
	if profileImageID == "" {
		return models.BadRequest("Please provide profile image id")
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.ProfileImageID == nil || *user.ProfileImageID != profileImageID {
		return models.NotFound("No file found with id of %s", profileImageID)
	}

	user.ProfileImage = nil
	user.ProfileImageID = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to remove profile image: %w", err)
	}

	s.destroy(ctx, profileImageID)
	return nil
}

// Update changes the actor's profile fields
func (s *UserService) Update(ctx context.Context, actor models.Actor, req *models.UserUpdateRequest) (*models.User, error) {
	user, err := s.get(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.ContactNo = req.ContactNo
	user.Gender = req.Gender
	user.DOB = req.DOB

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteMe removes the actor's own account
func (s *UserService) DeleteMe(ctx context.Context, actor models.Actor) error {
	return s.Remove(ctx, actor.UserID)
}

// List returns a page of users for admins
func (s *UserService) List(ctx context.Context, filters models.UserListFilters) (*UserPage, error) {
	users, total, err := s.users.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	pagination := models.NewPagination(filters.Page, models.UsersPerPage)
	return &UserPage{
		Users:      users,
		TotalUsers: total,
		NumOfPages: pagination.NumOfPages(total),
	}, nil
}

// UpdateStatus locks or unlocks an account. Authorization only applies to admins
func (s *UserService) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UserStatusUpdateRequest) error {
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Authorized != nil && user.IsAdmin() {
		user.Authorized = *req.Authorized
	}

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	return nil
}

// Remove deletes an account and its profile image
func (s *UserService) Remove(ctx context.Context, id uuid.UUID) error {
	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NotFound("No user found with id of %s", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if user.ProfileImageID != nil {
		s.destroy(ctx, *user.ProfileImageID)
	}
	return nil
}

func (s *UserService) destroy(ctx context.Context, publicID string) {
	if err := s.images.Destroy(ctx, publicID); err != nil {
		s.logger.Warn("failed to destroy image", zap.String("public_id", publicID), zap.Error(err))
	}
}
