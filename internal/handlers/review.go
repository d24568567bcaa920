package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
)

// ReviewService manages product reviews
type ReviewService interface {
	Create(ctx context.Context, actor models.Actor, productID uuid.UUID, req *models.ReviewCreateRequest) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, page int) (*services.ReviewPage, error)
	Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.ReviewUpdateRequest) (*models.Review, error)
	Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error
}

// ReviewHandler handles the /reviews routes. GET and POST take a product id, PATCH and DELETE a review id.
type ReviewHandler struct {
	reviews ReviewService
	logger  *zap.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// ListByProduct handles GET /reviews/{id}?page=
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	page, err := h.reviews.ListByProduct(r.Context(), productID, queryPage(r))
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, page)
}

// Create handles POST /reviews/{id}
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	var req models.ReviewCreateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if _, err := h.reviews.Create(r.Context(), currentActor(r), productID, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, empty)
}

// Update handles PATCH /reviews/{id}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	var req models.ReviewUpdateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if _, err := h.reviews.Update(r.Context(), currentActor(r), id, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}

// Delete handles DELETE /reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.reviews.Delete(r.Context(), currentActor(r), id); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}
