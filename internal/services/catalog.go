package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// CatalogService manages categories, sizes and return reasons
type CatalogService struct {
	categories    CategoryRepository
	sizes         SizeRepository
	returnReasons ReturnReasonRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(categories CategoryRepository, sizes SizeRepository, returnReasons ReturnReasonRepository) *CatalogService {
	return &CatalogService{
		categories:    categories,
		sizes:         sizes,
		returnReasons: returnReasons,
	}
}

// CreateCategory adds a category
func (s *CatalogService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: req.Name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, models.Conflict("Category %s already exists", req.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// ListCategories returns every category
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "category", id)
	}

	category.Name = req.Name
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return models.Conflict("Category %s already exists", req.Name)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category that no product uses
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.categories.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrReferenced):
		return models.Conflict("Can't delete. Category has products")
	default:
		return notFoundOr(err, "category", id)
	}
}

// CreateSize adds a size
func (s *CatalogService) CreateSize(ctx context.Context, req *models.SizeRequest) (*models.Size, error) {
	size := &models.Size{Value: *req.Value}
	if err := s.sizes.Create(ctx, size); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, models.Conflict("Size %d already exists", size.Value)
		}
		return nil, fmt.Errorf("failed to create size: %w", err)
	}
	return size, nil
}

// ListSizes returns every size
func (s *CatalogService) ListSizes(ctx context.Context) ([]*models.Size, error) {
	sizes, err := s.sizes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	return sizes, nil
}

// UpdateSize changes a size value
func (s *CatalogService) UpdateSize(ctx context.Context, id uuid.UUID, req *models.SizeRequest) error {
	size, err := s.sizes.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "size", id)
	}

	size.Value = *req.Value
	if err := s.sizes.Update(ctx, size); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return models.Conflict("Size %d already exists", size.Value)
		}
		return fmt.Errorf("failed to update size: %w", err)
	}
	return nil
}

// DeleteSize removes a size that no product offers
func (s *CatalogService) DeleteSize(ctx context.Context, id uuid.UUID) error {
	err := s.sizes.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrReferenced):
		return models.Conflict("Can't delete. Size include in products")
	default:
		return notFoundOr(err, "size", id)
	}
}

// CreateReturnReason adds a return reason
func (s *CatalogService) CreateReturnReason(ctx context.Context, req *models.ReturnReasonRequest) (*models.ReturnReason, error) {
	reason := &models.ReturnReason{Title: req.Title}
	if err := s.returnReasons.Create(ctx, reason); err != nil {
		return nil, fmt.Errorf("failed to create return reason: %w", err)
	}
	return reason, nil
}

// ListReturnReasons returns every return reason
func (s *CatalogService) ListReturnReasons(ctx context.Context) ([]*models.ReturnReason, error) {
	reasons, err := s.returnReasons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list return reasons: %w", err)
	}
	return reasons, nil
}

// UpdateReturnReason changes a return reason title
func (s *CatalogService) UpdateReturnReason(ctx context.Context, id uuid.UUID, req *models.ReturnReasonRequest) error {
	reason, err := s.returnReasons.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "return reason", id)
	}

	reason.Title = req.Title
	if err := s.returnReasons.Update(ctx, reason); err != nil {
		return fmt.Errorf("failed to update return reason: %w", err)
	}
	return nil
}

// DeleteReturnReason removes a return reason
func (s *CatalogService) DeleteReturnReason(ctx context.Context, id uuid.UUID) error {
	if err := s.returnReasons.Delete(ctx, id); err != nil {
		return notFoundOr(err, "return reason", id)
	}
	return nil
}

// notFoundOr turns a repository ErrNotFound into the user-facing NotFound for entity
func notFoundOr(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NotFound("No %s found with id of %s", entity, id)
	}
	return fmt.Errorf("failed to access %s %s: %w", entity, id, err)
}
