package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ecommerce-platform/internal/models"
)

// ProductPage is one page of the product listing
type ProductPage struct {
	Products      []*models.Product `json:"products"`
	TotalProducts int               `json:"totalProducts"`
	NumOfPages    int               `json:"numOfPages"`
}

// ProductService manages the catalog products and the per-user cart and wishlist links
type ProductService struct {
	products ProductRepository
	images   ImageStore
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(products ProductRepository, images ImageStore, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, images: images, logger: logger}
}

// Create uploads the image and stores a new product
func (s *ProductService) Create(ctx context.Context, in *models.ProductInput, image *ImageFile) (*models.Product, error) {
	if image == nil {
		return nil, models.BadRequest("Please provide product image")
	}
	if err := in.ValidateCreate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:             uuid.New(),
		Discount:       models.DiscountNone,
		DiscountAmount: decimal.Zero,
		Sizes:          []models.Size{},
	}
	in.Apply(product)
	if err := checkProductDiscount(product); err != nil {
		return nil, err
	}

	uploaded, err := s.images.Upload(ctx, ProductImagesFolder, *image)
	if err != nil {
		return nil, err
	}
	product.Image = uploaded.URL
	product.ImageID = uploaded.PublicID

	if err := s.products.Create(ctx, product, in.SizeIDs); err != nil {
		s.destroy(ctx, uploaded.PublicID)
		return nil, productWriteError(err, product.Name)
	}
	return product, nil
}

// Get returns a product with the viewer's cart and wishlist flags
func (s *ProductService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return product, nil
}

// Update applies a partial update, replacing the image and sizes when provided
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, in *models.ProductInput, image *ImageFile) (*models.Product, error) {
	if err := in.ValidateUpdate(); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	in.Apply(product)
	if err := checkProductDiscount(product); err != nil {
		return nil, err
	}

	var uploaded *UploadedImage
	previousImageID := product.ImageID
	if image != nil {
		uploaded, err = s.images.Upload(ctx, ProductImagesFolder, *image)
		if err != nil {
			return nil, err
		}
		product.Image = uploaded.URL
		product.ImageID = uploaded.PublicID
	}

	var sizeIDs []uuid.UUID
	if len(in.SizeIDs) > 0 {
		sizeIDs = in.SizeIDs
	}

	if err := s.products.Update(ctx, product, sizeIDs); err != nil {
		if uploaded != nil {
			s.destroy(ctx, uploaded.PublicID)
		}
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("No product found with id of %s", id)
		}
		return nil, productWriteError(err, product.Name)
	}

	if uploaded != nil && previousImageID != "" {
		s.destroy(ctx, previousImageID)
	}
	return product, nil
}

// Delete removes a product that is not part of any order
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.Get(ctx, id, nil)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrReferenced) {
			return models.Conflict("Can't delete. Product has orders")
		}
		return notFoundOr(err, "product", id)
	}

	if product.ImageID != "" {
		s.destroy(ctx, product.ImageID)
	}
	return nil
}

// List returns a filtered page of products
func (s *ProductService) List(ctx context.Context, filters models.ProductListFilters) (*ProductPage, error) {
	products, total, err := s.products.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	pagination := models.NewPagination(filters.Page, models.ProductsPerPage)
	return &ProductPage{
		Products:      products,
		TotalProducts: total,
		NumOfPages:    pagination.NumOfPages(total),
	}, nil
}

// AddToWishlist links a product to the actor's wishlist
func (s *ProductService) AddToWishlist(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return s.link(productID, s.products.AddToWishlist(ctx, actor.UserID, productID))
}

// RemoveFromWishlist unlinks a product from the actor's wishlist
func (s *ProductService) RemoveFromWishlist(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return s.link(productID, s.products.RemoveFromWishlist(ctx, actor.UserID, productID))
}

// AddToCart links a product to the actor's cart
func (s *ProductService) AddToCart(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return s.link(productID, s.products.AddToCart(ctx, actor.UserID, productID))
}

// RemoveFromCart unlinks a product from the actor's cart
func (s *ProductService) RemoveFromCart(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return s.link(productID, s.products.RemoveFromCart(ctx, actor.UserID, productID))
}

// Wishlist returns the actor's wishlisted products
func (s *ProductService) Wishlist(ctx context.Context, actor models.Actor) ([]*models.Product, error) {
	products, err := s.products.Wishlist(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return products, nil
}

func (s *ProductService) link(productID uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	return notFoundOr(err, "product", productID)
}

func (s *ProductService) destroy(ctx context.Context, publicID string) {
	if err := s.images.Destroy(ctx, publicID); err != nil {
		s.logger.Warn("failed to destroy product image", zap.String("public_id", publicID), zap.Error(err))
	}
}

// checkProductDiscount validates the discount against the merged product
func checkProductDiscount(p *models.Product) error {
	if p.Discount == models.DiscountPercentage && p.DiscountAmount.GreaterThan(decimal.NewFromInt(100)) {
		return models.BadRequest("discountAmount must not exceed 100 for a percentage discount")
	}
	return nil
}

func productWriteError(err error, name string) error {
	switch {
	case errors.Is(err, models.ErrDuplicateEntry):
		return models.Conflict("Product %s already exists", name)
	case errors.Is(err, models.ErrReferenced):
		return models.BadRequest("Please provide valid category and sizes")
	default:
		return fmt.Errorf("failed to save product: %w", err)
	}
}
