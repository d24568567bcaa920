package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
)

func TestUsers_ShowMe(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("ShowMe", mock.Anything, basicUser).
		Return(&models.User{ID: basicUser.UserID, FirstName: "Jane", Email: basicUser.Email}, nil)

	rec := api.do(t, http.MethodGet, "/api/v1/users/show-me", "", "basic")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane@example.com"`)
}

func TestUsers_UploadProfileImage(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("UploadProfileImage", mock.Anything, basicUser, mock.MatchedBy(func(f services.ImageFile) bool {
		return f.Filename == "shirt.png" && f.Size == 4 && f.Content != nil
	})).Return(&services.UploadedImage{URL: "https://cdn.test/profile/abc.png", PublicID: "profile/abc.png"}, nil)

	body, contentType := productForm(t, nil, []byte("face"))
	rec := api.doMultipart(t, http.MethodPost, "/api/v1/users/profile-image", body, contentType, "basic")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"profileImage":{"src":"https://cdn.test/profile/abc.png","publicId":"profile/abc.png"}}`, rec.Body.String())
}

func TestUsers_UploadProfileImageMissingFile(t *testing.T) {
	api := newTestAPI(t)

	body, contentType := productForm(t, map[string]string{"caption": "me"}, nil)
	rec := api.doMultipart(t, http.MethodPost, "/api/v1/users/profile-image", body, contentType, "basic")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg":"Please provide profile image"}`, rec.Body.String())
}

func TestUsers_RemoveProfileImage(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("RemoveProfileImage", mock.Anything, basicUser, "profile/abc.png").Return(nil)

	rec := api.do(t, http.MethodDelete, "/api/v1/users/profile-image?profileImageId=profile/abc.png", "", "basic")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"Profile image removed successfully"}`, rec.Body.String())
}

func TestUsers_UpdateMe(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("Update", mock.Anything, basicUser, mock.MatchedBy(func(req *models.UserUpdateRequest) bool {
		return req.FirstName == "Janet" && req.Gender != nil && *req.Gender == models.GenderFemale
	})).Return(&models.User{}, nil)

	rec := api.do(t, http.MethodPatch, "/api/v1/users",
		`{"firstName":"Janet","contactNo":"9876543210","gender":"FEMALE"}`, "basic")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"Profile updated successfully"}`, rec.Body.String())
}

func TestUsers_UpdateMeRejectsUnknownGender(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPatch, "/api/v1/users",
		`{"firstName":"Janet","contactNo":"9876543210","gender":"OTHER"}`, "basic")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg":"gender must be one of [MALE FEMALE]"}`, rec.Body.String())
}

func TestUsers_DeleteMeEndsSession(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("DeleteMe", mock.Anything, basicUser).Return(nil)

	rec := api.do(t, http.MethodDelete, "/api/v1/users", "", "basic")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"Account deleted successfully"}`, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestUsers_ListFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.UserListFilters
	}{
		{"admin filter", "?role=admin&search=ada&page=2", models.UserListFilters{Search: "ada", Role: lo.ToPtr(models.RoleAdmin), Page: 2}},
		{"customer filter", "?role=customer", models.UserListFilters{Role: lo.ToPtr(models.RoleBasic), Page: 1}},
		{"unknown role ignored", "?role=ROOT", models.UserListFilters{Page: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.users.On("List", mock.Anything, tt.want).
				Return(&services.UserPage{Users: []*models.User{}, TotalUsers: 0, NumOfPages: 0}, nil)

			rec := api.do(t, http.MethodGet, "/api/v1/users"+tt.query, "", "admin")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"users":[],"totalUsers":0,"numOfPages":0}`, rec.Body.String())
		})
	}
}

func TestUsers_AdminStatusAndRemoval(t *testing.T) {
	api := newTestAPI(t)
	target := uuid.New()
	api.users.On("UpdateStatus", mock.Anything, target, mock.MatchedBy(func(req *models.UserStatusUpdateRequest) bool {
		return req.Status != nil && *req.Status == models.StatusLocked && req.Authorized == nil
	})).Return(nil)
	api.users.On("Remove", mock.Anything, target).Return(nil)

	rec := api.do(t, http.MethodPatch, "/api/v1/users/"+target.String(), `{"status":"LOCKED"}`, "admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"User status updated successfully"}`, rec.Body.String())

	rec = api.do(t, http.MethodDelete, "/api/v1/users/"+target.String(), "", "admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"msg":"User account deleted successfully"}`, rec.Body.String())
}
