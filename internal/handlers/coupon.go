package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
)

// CouponService administers coupons
type CouponService interface {
	Create(ctx context.Context, req *models.CouponCreateRequest) (*models.Coupon, error)
	List(ctx context.Context, filters models.CouponListFilters) (*services.CouponPage, error)
	Update(ctx context.Context, id uuid.UUID, req *models.CouponUpdateRequest) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CouponHandler handles the /coupons routes
type CouponHandler struct {
	coupons CouponService
	logger  *zap.Logger
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(coupons CouponService, logger *zap.Logger) *CouponHandler {
	return &CouponHandler{coupons: coupons, logger: logger}
}

type allCouponsResponse struct {
	Coupons []*models.Coupon `json:"coupons"`
}

// List handles GET /coupons?type=&search=&status=&sort=&redemptionSort=&all=&page=.
// With all=1 every redeemable coupon is returned without paging.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := models.CouponListFilters{
		Search:         query.Get("search"),
		Status:         statusFlag(query.Get("status")),
		RedemptionSort: rankDirection(query.Get("redemptionSort")),
		Sort:           querySort(r),
		Page:           queryPage(r),
		All:            query.Get("all") == "1",
	}
	if t := strings.ToUpper(query.Get("type")); t != "" {
		kind := models.DiscountKind(t)
		filters.Type = &kind
	}

	page, err := h.coupons.List(r.Context(), filters)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if filters.All {
		middleware.WriteJSON(w, http.StatusOK, allCouponsResponse{Coupons: page.Coupons})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, page)
}

// Create handles POST /coupons
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CouponCreateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	coupon, err := h.coupons.Create(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("coupon created", zap.String("coupon_id", coupon.ID.String()), zap.String("code", coupon.Code))
	middleware.WriteJSON(w, http.StatusCreated, empty)
}

// Update handles PATCH /coupons/{id}
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	var req models.CouponUpdateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if _, err := h.coupons.Update(r.Context(), id, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}

// Delete handles DELETE /coupons/{id}
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.coupons.Delete(r.Context(), id); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}
