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

// OrderService runs checkout and payment verification
type OrderService interface {
	Create(ctx context.Context, actor models.Actor, req *models.OrderCreateRequest) (*models.OrderCreateResult, error)
	Verify(ctx context.Context, actor models.Actor, req *models.OrderVerifyRequest) error
	ListMine(ctx context.Context, actor models.Actor, page int) (*services.OrderPage, error)
	List(ctx context.Context, filters models.OrderListFilters) (*services.OrderPage, error)
}

// CartPricer reads and prices the signed-in user's cart
type CartPricer interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartProduct, error)
	PriceCart(ctx context.Context, userID uuid.UUID, couponID *uuid.UUID) (*services.CartQuote, error)
}

// OrderHandler handles the /orders routes
type OrderHandler struct {
	orders OrderService
	cart   CartPricer
	logger *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderService, cart CartPricer, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart, logger: logger}
}

type cartResponse struct {
	Cart []models.CartProduct `json:"cart"`
}

// Cart handles GET /orders/cart
func (h *OrderHandler) Cart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.GetCart(r.Context(), currentActor(r).UserID)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, cartResponse{Cart: cart})
}

// CartPrice handles GET /orders/cart/price?coupon=
func (h *OrderHandler) CartPrice(w http.ResponseWriter, r *http.Request) {
	couponID, err := models.ParseOptionalID(r.URL.Query().Get("coupon"), "coupon")
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	quote, err := h.cart.PriceCart(r.Context(), currentActor(r).UserID, couponID)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, quote)
}

// Create handles POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.OrderCreateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	result, err := h.orders.Create(r.Context(), currentActor(r), &req)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

// Verify handles POST /orders/verify
func (h *OrderHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.OrderVerifyRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.orders.Verify(r.Context(), currentActor(r), &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, empty)
}

// ListMine handles GET /orders?page=
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, err := h.orders.ListMine(r.Context(), currentActor(r), queryPage(r))
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, page)
}

// ListAll handles GET /orders/all?sort=&priceSort=&status=&page=
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := h.orders.List(r.Context(), models.OrderListFilters{
		IsPaid:    statusFlag(query.Get("status")),
		PriceSort: rankDirection(query.Get("priceSort")),
		Sort:      querySort(r),
		Page:      queryPage(r),
	})
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, page)
}
