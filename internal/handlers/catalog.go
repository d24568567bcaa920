package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
)

// CatalogService manages categories, sizes and return reasons
type CatalogService interface {
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateSize(ctx context.Context, req *models.SizeRequest) (*models.Size, error)
	ListSizes(ctx context.Context) ([]*models.Size, error)
	UpdateSize(ctx context.Context, id uuid.UUID, req *models.SizeRequest) error
	DeleteSize(ctx context.Context, id uuid.UUID) error

	CreateReturnReason(ctx context.Context, req *models.ReturnReasonRequest) (*models.ReturnReason, error)
	ListReturnReasons(ctx context.Context) ([]*models.ReturnReason, error)
	UpdateReturnReason(ctx context.Context, id uuid.UUID, req *models.ReturnReasonRequest) error
	DeleteReturnReason(ctx context.Context, id uuid.UUID) error
}

// CatalogHandler handles the /category, /size and /return-reason routes
type CatalogHandler struct {
	catalog CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// create decodes a T and passes it to save, answering 201 {}
func create[T any](h *CatalogHandler, save func(context.Context, *T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := decode(w, r, &req); err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		if err := save(r.Context(), &req); err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		middleware.WriteJSON(w, http.StatusCreated, empty)
	}
}

// update decodes a T for the {id} row and passes it to save, answering 200 {}
func update[T any](h *CatalogHandler, save func(context.Context, uuid.UUID, *T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		var req T
		if err := decode(w, r, &req); err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		if err := save(r.Context(), id, &req); err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, empty)
	}
}

func (h *CatalogHandler) remove(del func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		if err := del(r.Context(), id); err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, empty)
	}
}

func list[T any](h *CatalogHandler, key string, fetch func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := fetch(r.Context())
		if err != nil {
			middleware.WriteError(w, r, h.logger, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]any{key: items})
	}
}

// CreateCategory handles POST /category
func (h *CatalogHandler) CreateCategory() http.HandlerFunc {
	return create(h, func(ctx context.Context, req *models.CategoryRequest) error {
		_, err := h.catalog.CreateCategory(ctx, req)
		return err
	})
}

// ListCategories handles GET /category
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return list(h, "categories", h.catalog.ListCategories)
}

// UpdateCategory handles PATCH /category/{id}
func (h *CatalogHandler) UpdateCategory() http.HandlerFunc {
	return update(h, h.catalog.UpdateCategory)
}

// DeleteCategory handles DELETE /category/{id}
func (h *CatalogHandler) DeleteCategory() http.HandlerFunc {
	return h.remove(h.catalog.DeleteCategory)
}

// CreateSize handles POST /size
func (h *CatalogHandler) CreateSize() http.HandlerFunc {
	return create(h, func(ctx context.Context, req *models.SizeRequest) error {
		_, err := h.catalog.CreateSize(ctx, req)
		return err
	})
}

// ListSizes handles GET /size
func (h *CatalogHandler) ListSizes() http.HandlerFunc {
	return list(h, "sizes", h.catalog.ListSizes)
}

// UpdateSize handles PATCH /size/{id}
func (h *CatalogHandler) UpdateSize() http.HandlerFunc {
	return update(h, h.catalog.UpdateSize)
}

// DeleteSize handles DELETE /size/{id}
func (h *CatalogHandler) DeleteSize() http.HandlerFunc {
	return h.remove(h.catalog.DeleteSize)
}

// CreateReturnReason handles POST /return-reason
func (h *CatalogHandler) CreateReturnReason() http.HandlerFunc {
	return create(h, func(ctx context.Context, req *models.ReturnReasonRequest) error {
		_, err := h.catalog.CreateReturnReason(ctx, req)
		return err
	})
}

// ListReturnReasons handles GET /return-reason
func (h *CatalogHandler) ListReturnReasons() http.HandlerFunc {
	return list(h, "returnReasons", h.catalog.ListReturnReasons)
}

// UpdateReturnReason handles PATCH /return-reason/{id}
func (h *CatalogHandler) UpdateReturnReason() http.HandlerFunc {
	return update(h, h.catalog.UpdateReturnReason)
}

// DeleteReturnReason handles DELETE /return-reason/{id}
func (h *CatalogHandler) DeleteReturnReason() http.HandlerFunc {
	return h.remove(h.catalog.DeleteReturnReason)
}
