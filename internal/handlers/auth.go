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

// AuthService is the account lifecycle used by AuthHandler
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest, origin string) (*models.User, error)
	RegisterAdmin(ctx context.Context, req *models.RegisterRequest, origin string) (*models.User, error)
	VerifyEmail(ctx context.Context, email, token string) error
	ForgotPassword(ctx context.Context, email, origin string) error
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// Sessions stores and clears the session cookie
type Sessions interface {
	Start(w http.ResponseWriter, r *http.Request, token string) error
	End(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler handles registration, verification, password reset and login
type AuthHandler struct {
	auth     AuthService
	sessions Sessions
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, sessions Sessions, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, logger: logger}
}

type loginResponse struct {
	UserID uuid.UUID `json:"userId"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.auth.Register)
}

// RegisterAdmin handles POST /auth/admin/register
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.auth.RegisterAdmin)
}

func (h *AuthHandler) register(
	w http.ResponseWriter,
	r *http.Request,
	create func(context.Context, *models.RegisterRequest, string) (*models.User, error),
) {
	var req models.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	user, err := create(r.Context(), &req, r.Header.Get("Origin"))
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, message{Msg: "Email verification link sent to " + user.Email})
}

// Verify handles POST /auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyEmailRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.auth.VerifyEmail(r.Context(), req.Email, req.Token); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, message{Msg: "Email verified successfully"})
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email, r.Header.Get("Origin")); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, message{Msg: "Password reset link sent to " + req.Email})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, message{Msg: "Password changed successfully"})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.Login)
}

// AdminLogin handles POST /auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.AdminLogin)
}

func (h *AuthHandler) login(
	w http.ResponseWriter,
	r *http.Request,
	authenticate func(context.Context, string, string) (*services.LoginResult, error),
) {
	var req models.LoginRequest
	if err := decode(w, r, &req); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	result, err := authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.sessions.Start(w, r, result.Token); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user logged in", zap.String("user_id", result.User.ID.String()), zap.String("role", string(result.User.Role)))
	middleware.WriteJSON(w, http.StatusOK, loginResponse{UserID: result.User.ID})
}

// Logout handles DELETE /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(w, r); err != nil {
		middleware.WriteError(w, r, h.logger, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, message{Msg: "Logged out successfully"})
}
