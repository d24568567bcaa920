package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
)

// value returns argument i as T, or the zero T when it was nil
func value[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest, origin string) (*models.User, error) {
	args := m.Called(ctx, req, origin)
	return value[*models.User](args, 0), args.Error(1)
}

func (m *MockAuthService) RegisterAdmin(ctx context.Context, req *models.RegisterRequest, origin string) (*models.User, error) {
	args := m.Called(ctx, req, origin)
	return value[*models.User](args, 0), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, token string) error {
	return m.Called(ctx, email, token).Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email, origin string) error {
	return m.Called(ctx, email, origin).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return value[*services.LoginResult](args, 0), args.Error(1)
}

func (m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return value[*services.LoginResult](args, 0), args.Error(1)
}

// MockSessions is a mock implementation of Sessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Start(w http.ResponseWriter, r *http.Request, token string) error {
	return m.Called(token).Error(0)
}

func (m *MockSessions) End(w http.ResponseWriter, r *http.Request) error {
	return m.Called().Error(0)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ShowMe(ctx context.Context, actor models.Actor) (*models.User, error) {
	args := m.Called(ctx, actor)
	return value[*models.User](args, 0), args.Error(1)
}

func (m *MockUserService) UploadProfileImage(ctx context.Context, actor models.Actor, file services.ImageFile) (*services.UploadedImage, error) {
	args := m.Called(ctx, actor, file)
	return value[*services.UploadedImage](args, 0), args.Error(1)
}

func (m *MockUserService) RemoveProfileImage(ctx context.Context, actor models.Actor, profileImageID string) error {
	return m.Called(ctx, actor, profileImageID).Error(0)
}

func (m *MockUserService) Update(ctx context.Context, actor models.Actor, req *models.UserUpdateRequest) (*models.User, error) {
	args := m.Called(ctx, actor, req)
	return value[*models.User](args, 0), args.Error(1)
}

func (m *MockUserService) DeleteMe(ctx context.Context, actor models.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockUserService) List(ctx context.Context, filters models.UserListFilters) (*services.UserPage, error) {
	args := m.Called(ctx, filters)
	return value[*services.UserPage](args, 0), args.Error(1)
}

func (m *MockUserService) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UserStatusUpdateRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockUserService) Remove(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockAddressService is a mock implementation of AddressService
type MockAddressService struct {
	mock.Mock
}

func (m *MockAddressService) Create(ctx context.Context, actor models.Actor, req *models.AddressCreateRequest) (*models.Address, error) {
	args := m.Called(ctx, actor, req)
	return value[*models.Address](args, 0), args.Error(1)
}

func (m *MockAddressService) List(ctx context.Context, actor models.Actor) ([]*models.Address, error) {
	args := m.Called(ctx, actor)
	return value[[]*models.Address](args, 0), args.Error(1)
}

func (m *MockAddressService) Get(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, actor, id)
	return value[*models.Address](args, 0), args.Error(1)
}

func (m *MockAddressService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.AddressUpdateRequest) (*models.Address, error) {
	args := m.Called(ctx, actor, id, req)
	return value[*models.Address](args, 0), args.Error(1)
}

func (m *MockAddressService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	return value[*models.Category](args, 0), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	return value[[]*models.Category](args, 0), args.Error(1)
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogService) CreateSize(ctx context.Context, req *models.SizeRequest) (*models.Size, error) {
	args := m.Called(ctx, req)
	return value[*models.Size](args, 0), args.Error(1)
}

func (m *MockCatalogService) ListSizes(ctx context.Context) ([]*models.Size, error) {
	args := m.Called(ctx)
	return value[[]*models.Size](args, 0), args.Error(1)
}

func (m *MockCatalogService) UpdateSize(ctx context.Context, id uuid.UUID, req *models.SizeRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockCatalogService) DeleteSize(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogService) CreateReturnReason(ctx context.Context, req *models.ReturnReasonRequest) (*models.ReturnReason, error) {
	args := m.Called(ctx, req)
	return value[*models.ReturnReason](args, 0), args.Error(1)
}

func (m *MockCatalogService) ListReturnReasons(ctx context.Context) ([]*models.ReturnReason, error) {
	args := m.Called(ctx)
	return value[[]*models.ReturnReason](args, 0), args.Error(1)
}

func (m *MockCatalogService) UpdateReturnReason(ctx context.Context, id uuid.UUID, req *models.ReturnReasonRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockCatalogService) DeleteReturnReason(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockProductService is a mock implementation of ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, in *models.ProductInput, image *services.ImageFile) (*models.Product, error) {
	args := m.Called(ctx, in, image)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id, viewerID)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, in *models.ProductInput, image *services.ImageFile) (*models.Product, error) {
	args := m.Called(ctx, id, in, image)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) List(ctx context.Context, filters models.ProductListFilters) (*services.ProductPage, error) {
	args := m.Called(ctx, filters)
	return value[*services.ProductPage](args, 0), args.Error(1)
}

func (m *MockProductService) AddToWishlist(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return m.Called(ctx, actor, productID).Error(0)
}

func (m *MockProductService) RemoveFromWishlist(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return m.Called(ctx, actor, productID).Error(0)
}

func (m *MockProductService) AddToCart(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return m.Called(ctx, actor, productID).Error(0)
}

func (m *MockProductService) RemoveFromCart(ctx context.Context, actor models.Actor, productID uuid.UUID) error {
	return m.Called(ctx, actor, productID).Error(0)
}

func (m *MockProductService) Wishlist(ctx context.Context, actor models.Actor) ([]*models.Product, error) {
	args := m.Called(ctx, actor)
	return value[[]*models.Product](args, 0), args.Error(1)
}

// MockReviewService is a mock implementation of ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, actor models.Actor, productID uuid.UUID, req *models.ReviewCreateRequest) (*models.Review, error) {
	args := m.Called(ctx, actor, productID, req)
	return value[*models.Review](args, 0), args.Error(1)
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, page int) (*services.ReviewPage, error) {
	args := m.Called(ctx, productID, page)
	return value[*services.ReviewPage](args, 0), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, req *models.ReviewUpdateRequest) (*models.Review, error) {
	args := m.Called(ctx, actor, id, req)
	return value[*models.Review](args, 0), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

// MockCouponService is a mock implementation of CouponService
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Create(ctx context.Context, req *models.CouponCreateRequest) (*models.Coupon, error) {
	args := m.Called(ctx, req)
	return value[*models.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponService) List(ctx context.Context, filters models.CouponListFilters) (*services.CouponPage, error) {
	args := m.Called(ctx, filters)
	return value[*services.CouponPage](args, 0), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, id uuid.UUID, req *models.CouponUpdateRequest) (*models.Coupon, error) {
	args := m.Called(ctx, id, req)
	return value[*models.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, actor models.Actor, req *models.OrderCreateRequest) (*models.OrderCreateResult, error) {
	args := m.Called(ctx, actor, req)
	return value[*models.OrderCreateResult](args, 0), args.Error(1)
}

func (m *MockOrderService) Verify(ctx context.Context, actor models.Actor, req *models.OrderVerifyRequest) error {
	return m.Called(ctx, actor, req).Error(0)
}

func (m *MockOrderService) ListMine(ctx context.Context, actor models.Actor, page int) (*services.OrderPage, error) {
	args := m.Called(ctx, actor, page)
	return value[*services.OrderPage](args, 0), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filters models.OrderListFilters) (*services.OrderPage, error) {
	args := m.Called(ctx, filters)
	return value[*services.OrderPage](args, 0), args.Error(1)
}

// MockCartPricer is a mock implementation of CartPricer
type MockCartPricer struct {
	mock.Mock
}

func (m *MockCartPricer) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartProduct, error) {
	args := m.Called(ctx, userID)
	return value[[]models.CartProduct](args, 0), args.Error(1)
}

func (m *MockCartPricer) PriceCart(ctx context.Context, userID uuid.UUID, couponID *uuid.UUID) (*services.CartQuote, error) {
	args := m.Called(ctx, userID, couponID)
	return value[*services.CartQuote](args, 0), args.Error(1)
}

// stubPinger reports err on every ping
type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}
