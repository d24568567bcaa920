package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ecommerce-platform/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filters models.UserListFilters) ([]*models.User, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

// MockAddressRepository is a mock implementation of AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, address *models.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Address), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, address *models.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product, sizeIDs []uuid.UUID) error {
	return m.Called(ctx, product, sizeIDs).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product, sizeIDs []uuid.UUID) error {
	return m.Called(ctx, product, sizeIDs).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, filters models.ProductListFilters) ([]*models.Product, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockProductRepository) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockProductRepository) AddToCart(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockProductRepository) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockProductRepository) CartProducts(ctx context.Context, userID uuid.UUID) ([]models.CartProduct, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartProduct), args.Error(1)
}

func (m *MockProductRepository) Wishlist(ctx context.Context, userID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

// MockCouponRepository is a mock implementation of CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetRedeemable(ctx context.Context, id uuid.UUID, now time.Time) (*models.Coupon, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCouponRepository) List(ctx context.Context, filters models.CouponListFilters, now time.Time) ([]*models.Coupon, int, error) {
	args := m.Called(ctx, filters, now)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Coupon), args.Int(1), args.Error(2)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) GetByGatewayID(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) CompletePayment(ctx context.Context, order *models.Order, paymentID string, paidAt time.Time) error {
	return m.Called(ctx, order, paymentID, paidAt).Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filters models.OrderListFilters) ([]*models.Order, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Order), args.Int(1), args.Error(2)
}

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page int) ([]*models.Review, int, error) {
	args := m.Called(ctx, productID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

// MockOutboxRepository is a mock implementation of OutboxRepository
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, ids []int64, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

// MockPaymentGatewayForOrders is a mock implementation of PaymentGateway
type MockPaymentGatewayForOrders struct {
	mock.Mock
}

func (m *MockPaymentGatewayForOrders) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.GatewayOrder, error) {
	args := m.Called(ctx, amount, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GatewayOrder), args.Error(1)
}

func (m *MockPaymentGatewayForOrders) VerifySignature(orderID, paymentID, signature string) bool {
	return m.Called(orderID, paymentID, signature).Bool(0)
}

func (m *MockPaymentGatewayForOrders) KeyID() string {
	return m.Called().String(0)
}

// MockEmailServiceForAuth is a mock implementation of EmailService
type MockEmailServiceForAuth struct {
	mock.Mock
}

func (m *MockEmailServiceForAuth) SendVerificationEmail(ctx context.Context, name, email, link string) error {
	return m.Called(ctx, name, email, link).Error(0)
}

func (m *MockEmailServiceForAuth) SendPasswordResetEmail(ctx context.Context, name, email, link string) error {
	return m.Called(ctx, name, email, link).Error(0)
}

// MockImageStore is a mock implementation of ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, folder string, file ImageFile) (*UploadedImage, error) {
	args := m.Called(ctx, folder, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadedImage), args.Error(1)
}

func (m *MockImageStore) Destroy(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

// MockStorageService is a mock implementation of StorageService
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	args := m.Called(ctx, key, reader, contentType, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorageService) GetURL(key string) string {
	return m.Called(key).String(0)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
