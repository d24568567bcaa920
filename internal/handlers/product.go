package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
)

// ProductService manages products and the per-user cart and wishlist
type ProductService interface {
	Create(ctx context.Context, in *models.ProductInput, image *services.ImageFile) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, in *models.ProductInput, image *services.ImageFile) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters models.ProductListFilters) (*services.ProductPage, error)
	AddToWishlist(ctx context.Context, actor models.Actor, productID uuid.UUID) error
	RemoveFromWishlist(ctx context.Context, actor models.Actor, productID uuid.UUID) error
	AddToCart(ctx context.Context, actor models.Actor, productID uuid.UUID) error
	RemoveFromCart(ctx context.Context, actor models.Actor, productID uuid.UUID) error
	Wishlist(ctx context.Context, actor models.Actor) ([]*models.Product, error)
}

// ProductHandler handles the /products routes
type ProductHandler struct {
	products ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// List handles GET /products?search=&featured=&sort=&categoryId=&sizeId=&priceSort=&page=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := models.ProductListFilters{
		Search:    query.Get("search"),
		Featured:  query.Get("featured") == "1",
		PriceSort: rankDirection(query.Get("priceSort")),
		Sort:      models.ProductSort(query.Get("sort")),
		Page:      queryPage(r),
		ViewerID:  viewerID(r),
	}

	var err error
	if filters.CategoryID, err = models.ParseOptionalID(query.Get("categoryId"), "categoryId"); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	if filters.SizeID, err = models.ParseOptionalID(query.Get("sizeId"), "sizeId"); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	page, err := h.products.List(r.Context(), filters)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	product, err := h.products.Get(r.Context(), id, viewerID(r))
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"product": product})
}

// Create handles the multipart POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, image, closer, err := h.readForm(w, r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	if closer != nil {
		defer closer()
	}

	product, err := h.products.Create(r.Context(), in, image)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	middleware.WriteJSON(w, http.StatusCreated, empty)
}

// Update handles the multipart PATCH /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	in, image, closer, err := h.readForm(w, r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	if closer != nil {
		defer closer()
	}

	if _, err := h.products.Update(r.Context(), id, in, image); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, func(ctx context.Context, id uuid.UUID) error {
		return h.products.Delete(ctx, id)
	})
}

// Wishlist handles GET /products/wishlist
func (h *ProductHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Wishlist(r.Context(), currentActor(r))
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

// AddToWishlist handles POST /products/wishlist/{id}
func (h *ProductHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	h.forActor(w, r, h.products.AddToWishlist)
}

// RemoveFromWishlist handles DELETE /products/wishlist/{id}
func (h *ProductHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	h.forActor(w, r, h.products.RemoveFromWishlist)
}

// AddToCart handles POST /products/cart/{id}
func (h *ProductHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.forActor(w, r, h.products.AddToCart)
}

// RemoveFromCart handles DELETE /products/cart/{id}
func (h *ProductHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.forActor(w, r, h.products.RemoveFromCart)
}

func (h *ProductHandler) forActor(w http.ResponseWriter, r *http.Request, link func(context.Context, models.Actor, uuid.UUID) error) {
	h.byID(w, r, func(ctx context.Context, id uuid.UUID) error {
		return link(ctx, currentActor(r), id)
	})
}

func (h *ProductHandler) byID(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) error) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}

// readForm parses the product multipart form. Empty values count as absent.
func (h *ProductHandler) readForm(w http.ResponseWriter, r *http.Request) (*models.ProductInput, *services.ImageFile, func(), error) {
	if err := parseMultipart(w, r); err != nil {
		return nil, nil, nil, err
	}

	in, err := productInput(r.MultipartForm.Value)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, nil, nil, err
	}

	image, file, err := formImage(r)
	if err != nil {
		return nil, nil, nil, err
	}
	if file == nil {
		return in, nil, nil, nil
	}
	return in, image, func() { _ = file.Close() }, nil
}

func productInput(values map[string][]string) (*models.ProductInput, error) {
	field := func(name string) (string, bool) {
		v := strings.TrimSpace(lo.FirstOrEmpty(values[name]))
		return v, v != ""
	}

	in := &models.ProductInput{}

	if v, ok := field("name"); ok {
		in.Name = &v
	}
	if v, ok := field("color"); ok {
		in.Color = &v
	}
	if v, ok := field("description"); ok {
		in.Description = &v
	}
	if v, ok := field("discount"); ok {
		kind := models.DiscountKind(strings.ToUpper(v))
		in.Discount = &kind
	}
	if v, ok := field("price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, models.BadRequest("price must be a number")
		}
		in.Price = &price
	}
	if v, ok := field("discountAmount"); ok {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return nil, models.BadRequest("discountAmount must be a number")
		}
		in.DiscountAmount = &amount
	}
	if v, ok := field("inventory"); ok {
		inventory, err := strconv.Atoi(v)
		if err != nil {
			return nil, models.BadRequest("inventory must be an integer")
		}
		in.Inventory = &inventory
	}
	if v, ok := field("featured"); ok {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return nil, models.BadRequest("featured must be a boolean")
		}
		in.Featured = &featured
	}
	if v, ok := field("categoryId"); ok {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, models.BadRequest("categoryId must be a valid id")
		}
		in.CategoryID = &id
	}
	if v, ok := field("sizes"); ok {
		var sizes []uuid.UUID
		if err := json.Unmarshal([]byte(v), &sizes); err != nil {
			return nil, models.BadRequest("sizes must be a JSON array of ids")
		}
		in.SizeIDs = sizes
	}

	return in, nil
}
