package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"ecommerce-platform/internal/middleware"
	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/services"
)

// UserService is the profile and user administration used by UserHandler
type UserService interface {
	ShowMe(ctx context.Context, actor models.Actor) (*models.User, error)
	UploadProfileImage(ctx context.Context, actor models.Actor, file services.ImageFile) (*services.UploadedImage, error)
	RemoveProfileImage(ctx context.Context, actor models.Actor, profileImageID string) error
	Update(ctx context.Context, actor models.Actor, req *models.UserUpdateRequest) (*models.User, error)
	DeleteMe(ctx context.Context, actor models.Actor) error
	List(ctx context.Context, filters models.UserListFilters) (*services.UserPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UserStatusUpdateRequest) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// UserHandler handles the /users routes
type UserHandler struct {
	users    UserService
	sessions Sessions
	logger   *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserService, sessions Sessions, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, sessions: sessions, logger: logger}
}

type userResponse struct {
	User *models.User `json:"user"`
}

type profileImageResponse struct {
	ProfileImage *services.UploadedImage `json:"profileImage"`
}

// ShowMe handles GET /users/show-me
func (h *UserHandler) ShowMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.ShowMe(r.Context(), currentActor(r))
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, userResponse{User: user})
}

// UploadProfileImage handles POST /users/profile-image
func (h *UserHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	image, closer, err := formImage(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	if image == nil {
		middleware.WriteError(w, r, h.logger, models.BadRequest("Please provide profile image"))
		return
	}
	defer closer.Close()

	uploaded, err := h.users.UploadProfileImage(r.Context(), currentActor(r), *image)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, profileImageResponse{ProfileImage: uploaded})
}

// RemoveProfileImage handles DELETE /users/profile-image?profileImageId=
func (h *UserHandler) RemoveProfileImage(w http.ResponseWriter, r *http.Request) {
	profileImageID := r.URL.Query().Get("profileImageId")
	if err := h.users.RemoveProfileImage(r.Context(), currentActor(r), profileImageID); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, message{Msg: "Profile image removed successfully"})
}

// UpdateMe handles PATCH /users
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.UserUpdateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if _, err := h.users.Update(r.Context(), currentActor(r), &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, message{Msg: "Profile updated successfully"})
}

// DeleteMe handles DELETE /users and ends the session
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteMe(r.Context(), currentActor(r)); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	if err := h.sessions.End(w, r); err != nil {
		h.logger.Warn("failed to clear session after account deletion", zap.Error(err))
	}
	middleware.WriteJSON(w, http.StatusOK, message{Msg: "Account deleted successfully"})
}

// List handles GET /users?role=customer|admin&search=&page=
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := models.UserListFilters{
		Search: query.Get("search"),
		Page:   queryPage(r),
	}
	switch strings.ToLower(query.Get("role")) {
	case "customer", "basic":
		filters.Role = lo.ToPtr(models.RoleBasic)
	case "admin":
		filters.Role = lo.ToPtr(models.RoleAdmin)
	}

	page, err := h.users.List(r.Context(), filters)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, page)
}

// UpdateStatus handles PATCH /users/{id}
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	var req models.UserStatusUpdateRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.users.UpdateStatus(r.Context(), id, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, message{Msg: "User status updated successfully"})
}

// Remove handles DELETE /users/{id}
func (h *UserHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.users.Remove(r.Context(), id); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, message{Msg: "User account deleted successfully"})
}
