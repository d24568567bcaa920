package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// UserRepository defines user persistence used by the services
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters models.UserListFilters) ([]*models.User, int, error)
}

// AddressRepository defines address persistence
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SizeRepository defines size persistence
type SizeRepository interface {
	Create(ctx context.Context, size *models.Size) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Size, error)
	List(ctx context.Context) ([]*models.Size, error)
	Update(ctx context.Context, size *models.Size) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReturnReasonRepository defines return reason persistence
type ReturnReasonRepository interface {
	Create(ctx context.Context, reason *models.ReturnReason) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ReturnReason, error)
	List(ctx context.Context) ([]*models.ReturnReason, error)
	Update(ctx context.Context, reason *models.ReturnReason) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines product, cart and wishlist persistence
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product, sizeIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product, sizeIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters models.ProductListFilters) ([]*models.Product, int, error)

	AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error
	RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error
	AddToCart(ctx context.Context, userID, productID uuid.UUID) error
	RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error
	CartProducts(ctx context.Context, userID uuid.UUID) ([]models.CartProduct, error)
	Wishlist(ctx context.Context, userID uuid.UUID) ([]*models.Product, error)
}

// CouponRepository defines coupon persistence
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	GetRedeemable(ctx context.Context, id uuid.UUID, now time.Time) (*models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters models.CouponListFilters, now time.Time) ([]*models.Coupon, int, error)
}

// OrderRepository defines order persistence
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByGatewayID(ctx context.Context, orderID string) (*models.Order, error)
	CompletePayment(ctx context.Context, order *models.Order, paymentID string, paidAt time.Time) error
	List(ctx context.Context, filters models.OrderListFilters) ([]*models.Order, int, error)
}

// ReviewRepository defines review persistence
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, page int) ([]*models.Review, int, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, review *models.Review) error
}

// OutboxRepository defines access to pending domain events
type OutboxRepository interface {
	GetUnprocessed(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	MarkProcessed(ctx context.Context, ids []int64, at time.Time) error
}

// PaymentGateway registers orders with the payment provider and checks its callbacks
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// EmailService sends transactional emails
type EmailService interface {
	SendVerificationEmail(ctx context.Context, name, email, link string) error
	SendPasswordResetEmail(ctx context.Context, name, email, link string) error
}

// StorageService defines file storage operations
type StorageService interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

// ImageStore uploads validated images and destroys them by public id
type ImageStore interface {
	Upload(ctx context.Context, folder string, file ImageFile) (*UploadedImage, error)
	Destroy(ctx context.Context, publicID string) error
}
