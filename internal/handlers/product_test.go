package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
)

// productForm builds a multipart product form, with an image part when image is non-empty
func productForm(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if len(image) > 0 {
		part, err := w.CreateFormFile("image", "shirt.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (a *testAPI) doMultipart(t *testing.T, method, target string, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(a.cookie(t, token))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestProducts_ListFilters(t *testing.T) {
	api := newTestAPI(t)
	categoryID := uuid.New()
	api.products.On("List", mock.Anything, models.ProductListFilters{
		Search:     "shi",
		CategoryID: &categoryID,
		Featured:   true,
		PriceSort:  lo.ToPtr(models.SortAsc),
		Sort:       models.ProductSortNameAsc,
		Page:       2,
	}).Return(&services.ProductPage{Products: []*models.Product{}, TotalProducts: 9, NumOfPages: 2}, nil)

	rec := api.do(t, http.MethodGet,
		"/api/v1/products?search=shi&categoryId="+categoryID.String()+"&featured=1&priceSort=lowest&sort=a-z&page=2", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[],"totalProducts":9,"numOfPages":2}`, rec.Body.String())
}

func TestProducts_GetFlagsViewer(t *testing.T) {
	api := newTestAPI(t)
	productID := uuid.New()
	api.products.On("Get", mock.Anything, productID, &basicUser.UserID).
		Return(&models.Product{ID: productID, Name: "Shirt", IsAddedToCart: true}, nil)
	api.products.On("Get", mock.Anything, productID, (*uuid.UUID)(nil)).
		Return(&models.Product{ID: productID, Name: "Shirt"}, nil)

	rec := api.do(t, http.MethodGet, "/api/v1/products/"+productID.String(), "", "basic")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/products/"+productID.String(), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProducts_GetUnknown(t *testing.T) {
	api := newTestAPI(t)
	productID := uuid.New()
	api.products.On("Get", mock.Anything, productID, (*uuid.UUID)(nil)).
		Return(nil, models.NotFound("No product found with id of %s", productID))

	rec := api.do(t, http.MethodGet, "/api/v1/products/"+productID.String(), "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_Create(t *testing.T) {
	api := newTestAPI(t)
	categoryID := uuid.New()
	sizeID := uuid.New()

	api.products.On("Create", mock.Anything,
		mock.MatchedBy(func(in *models.ProductInput) bool {
			return *in.Name == "Linen Shirt" &&
				in.Price.Equal(decimal.NewFromInt(1299)) &&
				*in.Discount == models.DiscountPercentage &&
				*in.CategoryID == categoryID &&
				len(in.SizeIDs) == 1 && in.SizeIDs[0] == sizeID &&
				*in.Featured && *in.Inventory == 5
		}),
		mock.MatchedBy(func(img *services.ImageFile) bool {
			return img != nil && img.Filename == "shirt.png" && img.Size == 4
		}),
	).Return(&models.Product{ID: uuid.New(), Name: "Linen Shirt"}, nil)

	body, contentType := productForm(t, map[string]string{
		"name":           "Linen Shirt",
		"price":          "1299",
		"discount":       "PERCENTAGE",
		"discountAmount": "10",
		"sizes":          `["` + sizeID.String() + `"]`,
		"categoryId":     categoryID.String(),
		"featured":       "true",
		"color":          "white",
		"description":    "Breathable linen",
		"inventory":      "5",
	}, []byte("\x89PNG"))

	rec := api.doMultipart(t, http.MethodPost, "/api/v1/products", body, contentType, "admin")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestProducts_UpdateWithoutImage(t *testing.T) {
	api := newTestAPI(t)
	productID := uuid.New()
	api.products.On("Update", mock.Anything, productID,
		mock.MatchedBy(func(in *models.ProductInput) bool {
			return in.Name == nil && in.Inventory != nil && *in.Inventory == 0
		}),
		(*services.ImageFile)(nil),
	).Return(&models.Product{ID: productID}, nil)

	body, contentType := productForm(t, map[string]string{"inventory": "0", "name": ""}, nil)

	rec := api.doMultipart(t, http.MethodPatch, "/api/v1/products/"+productID.String(), body, contentType, "admin")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductInput(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string][]string
		wantMsg string
	}{
		{"bad price", map[string][]string{"price": {"cheap"}}, "price must be a number"},
		{"bad inventory", map[string][]string{"inventory": {"1.5"}}, "inventory must be an integer"},
		{"bad featured", map[string][]string{"featured": {"maybe"}}, "featured must be a boolean"},
		{"bad category", map[string][]string{"categoryId": {"shirts"}}, "categoryId must be a valid id"},
		{"bad sizes", map[string][]string{"sizes": {"S,M"}}, "sizes must be a JSON array of ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := productInput(tt.values)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, models.KindBadRequest, models.KindOf(err))
		})
	}
}

func TestProductInput_EmptyValuesAreAbsent(t *testing.T) {
	in, err := productInput(map[string][]string{
		"name":     {"  "},
		"discount": {"fixed"},
		"sizes":    {"[]"},
	})

	require.NoError(t, err)
	assert.Nil(t, in.Name)
	assert.Equal(t, models.DiscountFixed, *in.Discount)
	assert.NotNil(t, in.SizeIDs)
	assert.Empty(t, in.SizeIDs)
}

func TestProducts_CartAndWishlistLinks(t *testing.T) {
	api := newTestAPI(t)
	productID := uuid.New()
	api.products.On("AddToCart", mock.Anything, basicUser, productID).Return(nil)
	api.products.On("RemoveFromWishlist", mock.Anything, basicUser, productID).
		Return(models.NotFound("No product found with id of %s", productID))
	api.products.On("Wishlist", mock.Anything, basicUser).Return([]*models.Product{}, nil)

	rec := api.do(t, http.MethodPost, "/api/v1/products/cart/"+productID.String(), "", "basic")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/v1/products/wishlist/"+productID.String(), "", "basic")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/products/wishlist", "", "basic")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[]}`, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/v1/products/cart/not-an-id", "", "basic")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg":"Invalid id not-an-id"}`, rec.Body.String())
}
