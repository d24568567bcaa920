package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
)

// AddressService manages the signed-in user's addresses
type AddressService interface {
	Create(ctx context.Context, actor models.Actor, req *models.AddressCreateRequest) (*models.Address, error)
	List(ctx context.Context, actor models.Actor) ([]*models.Address, error)
	Get(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Address, error)
	Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.AddressUpdateRequest) (*models.Address, error)
	Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

// AddressHandler handles the /address routes
type AddressHandler struct {
	addresses AddressService
	logger    *zap.Logger
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addresses AddressService, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{addresses: addresses, logger: logger}
}

// Create handles POST /address
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AddressCreateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if _, err := h.addresses.Create(r.Context(), currentActor(r), &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, empty)
}

// List handles GET /address
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.List(r.Context(), currentActor(r))
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"addresses": addresses})
}

// Get handles GET /address/{id}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	address, err := h.addresses.Get(r.Context(), currentActor(r), id)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"address": address})
}

// Update handles PATCH /address/{id}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	var req models.AddressUpdateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if _, err := h.addresses.Update(r.Context(), currentActor(r), id, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}

// Delete handles DELETE /address/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.addresses.Delete(r.Context(), currentActor(r), id); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}
