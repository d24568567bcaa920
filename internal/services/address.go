package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ecommerce-platform/internal/authz"
	"ecommerce-platform/internal/models"
)

// AddressService manages the delivery addresses of a user
type AddressService struct {
	addresses AddressRepository
}

// NewAddressService creates a new address service
func NewAddressService(addresses AddressRepository) *AddressService {
	return &AddressService{addresses: addresses}
}

// Create adds an address for the actor, at most MaxAddressesPerUser
func (s *AddressService) Create(ctx context.Context, actor models.Actor, req *models.AddressCreateRequest) (*models.Address, error) {
	count, err := s.addresses.CountByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count addresses: %w", err)
	}
	if count >= models.MaxAddressesPerUser {
		return nil, models.BadRequest("Maximum %d addresses can be added", models.MaxAddressesPerUser)
	}

	address := &models.Address{
		ID:      uuid.New(),
		UserID:  actor.UserID,
		Address: req.Address,
		City:    req.City,
		Pincode: req.Pincode,
		State:   req.State,
		Type:    req.Type,
	}
	if address.Type == "" {
		address.Type = models.AddressHome
	}

	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

// List returns the actor's addresses
func (s *AddressService) List(ctx context.Context, actor models.Actor) ([]*models.Address, error) {
	addresses, err := s.addresses.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Get loads an address the actor may act on
func (s *AddressService) Get(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Address, error) {
	address, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("No address found with id of %s", id)
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	if err := authz.Authorize(actor, address.UserID); err != nil {
		return nil, err
	}
	return address, nil
}

// Update applies a partial update to an address
func (s *AddressService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.AddressUpdateRequest) (*models.Address, error) {
	address, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	req.Apply(address)
	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.addresses.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NotFound("No address found with id of %s", id)
		}
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}
