package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecommerce-platform/internal/models"
)

func TestAddressService_Create(t *testing.T) {
	actor := models.Actor{UserID: uuid.New(), Role: models.RoleBasic}
	req := &models.AddressCreateRequest{Address: "12 Residency Road", City: "Bengaluru", Pincode: 560025, State: "Karnataka"}

	t.Run("defaults to HOME", func(t *testing.T) {
		addresses := new(MockAddressRepository)
		addresses.On("CountByUser", mock.Anything, actor.UserID).Return(2, nil)
		addresses.On("Create", mock.Anything, mock.AnythingOfType("*models.Address")).Return(nil)

		address, err := NewAddressService(addresses).Create(t.Context(), actor, req)

		require.NoError(t, err)
		assert.Equal(t, models.AddressHome, address.Type)
		assert.Equal(t, actor.UserID, address.UserID)
	})

	t.Run("limit reached", func(t *testing.T) {
		addresses := new(MockAddressRepository)
		addresses.On("CountByUser", mock.Anything, actor.UserID).Return(3, nil)

		_, err := NewAddressService(addresses).Create(t.Context(), actor, req)

		assert.EqualError(t, err, "Maximum 3 addresses can be added")
		addresses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAddressService_Get(t *testing.T) {
	owner := uuid.New()
	address := &models.Address{ID: uuid.New(), UserID: owner}

	tests := []struct {
		name  string
		actor models.Actor
		kind  models.ErrorKind
	}{
		{"owner", models.Actor{UserID: owner, Role: models.RoleBasic}, 0},
		{"admin", models.Actor{UserID: uuid.New(), Role: models.RoleAdmin}, 0},
		{"someone else", models.Actor{UserID: uuid.New(), Role: models.RoleBasic}, models.KindUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addresses := new(MockAddressRepository)
			addresses.On("GetByID", mock.Anything, address.ID).Return(address, nil)

			_, err := NewAddressService(addresses).Get(t.Context(), tt.actor, address.ID)

			assert.Equal(t, tt.kind, models.KindOf(err))
		})
	}
}

func TestAddressService_Delete_NotFound(t *testing.T) {
	addresses := new(MockAddressRepository)
	id := uuid.New()
	addresses.On("GetByID", mock.Anything, id).Return(nil, models.ErrNotFound)

	err := NewAddressService(addresses).Delete(t.Context(), models.Actor{UserID: uuid.New()}, id)

	assert.EqualError(t, err, "No address found with id of "+id.String())
	addresses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
