package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ecommerce-platform/internal/models"
	"ecommerce-platform/internal/utils"
)

// PasswordTokenTTL is how long a password reset link stays valid
const PasswordTokenTTL = 10 * time.Minute

// AuthService handles registration, verification, password reset and login
type AuthService struct {
	users  UserRepository
	email  EmailService
	tokens *TokenService
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(users UserRepository, email EmailService, tokens *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		email:  email,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// LoginResult is a signed-in user with its session token
type LoginResult struct {
	User  *models.User
	Token string
}

// Register creates a BASIC account and sends the verification link
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest, origin string) (*models.User, error) {
	return s.register(ctx, req, origin, models.RoleBasic)
}

// RegisterAdmin creates an ADMIN account that needs to be authorized before it can log in
func (s *AuthService) RegisterAdmin(ctx context.Context, req *models.RegisterRequest, origin string) (*models.User, error) {
	return s.register(ctx, req, origin, models.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, req *models.RegisterRequest, origin string, role models.UserRole) (*models.User, error) {
	if !utils.IsStrongPassword(req.Password) {
		return nil, models.BadRequest("Please provide strong password")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, hashedToken, err := utils.NewHashedToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	user := &models.User{
		ID:                uuid.New(),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		ContactNo:         req.ContactNo,
		Email:             strings.ToLower(req.Email),
		PasswordHash:      passwordHash,
		Role:              role,
		Status:            models.StatusActive,
		VerificationToken: &hashedToken,
		Authorized:        role != models.RoleAdmin,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, models.Conflict("Email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	link := actionLink(origin, "/auth/verify", rawToken, user.Email)
	if err := s.email.SendVerificationEmail(ctx, user.FirstName, user.Email, link); err != nil {
		s.logger.Warn("failed to send verification email", zap.String("email", user.Email), zap.Error(err))
	}

	return user, nil
}

// VerifyEmail marks the account verified when token matches
func (s *AuthService) VerifyEmail(ctx context.Context, email, token string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Unauthenticated("Verification failed")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsVerified {
		return models.BadRequest("Already verified")
	}
	if user.VerificationToken == nil || !tokensEqual(*user.VerificationToken, utils.HashToken(token)) {
		return models.Unauthenticated("Verification failed")
	}

	now := s.now()
	user.IsVerified = true
	user.VerifiedAt = &now
	user.VerificationToken = nil

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	return nil
}

// ForgotPassword stores a reset token valid for PasswordTokenTTL and emails the link
func (s *AuthService) ForgotPassword(ctx context.Context, email, origin string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NotFound("%s does not exist, please register", email)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	now := s.now()
	if user.HasPendingPasswordToken(now) {
		return models.Conflict("Password reset link already sent")
	}

	rawToken, hashedToken, err := utils.NewHashedToken()
	if err != nil {
		return fmt.Errorf("failed to generate password token: %w", err)
	}

	expiresAt := now.Add(PasswordTokenTTL)
	user.PasswordToken = &hashedToken
	user.PasswordTokenExpiration = &expiresAt

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store password token: %w", err)
	}

	link := actionLink(origin, "/auth/reset-password", rawToken, user.Email)
	if err := s.email.SendPasswordResetEmail(ctx, user.FirstName, user.Email, link); err != nil {
		s.logger.Warn("failed to send password reset email", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ResetPassword replaces the password when the reset token is valid
func (s *AuthService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Unauthenticated("Verification failed")
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.PasswordToken == nil || user.PasswordTokenExpiration == nil {
		return models.Unauthenticated("Please generate forgot password token")
	}
	if !s.now().Before(*user.PasswordTokenExpiration) {
		return models.Unauthenticated("Password reset link has expired")
	}
	if !tokensEqual(*user.PasswordToken, utils.HashToken(req.Token)) {
		return models.Unauthenticated("Verification failed")
	}
	if !utils.IsStrongPassword(req.Password) {
		return models.BadRequest("Please provide strong password")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.PasswordToken = nil
	user.PasswordTokenExpiration = nil

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Login signs in a BASIC user
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleBasic {
		return nil, models.Unauthenticated("Not a user, not authorized")
	}
	return s.startSession(user)
}

// AdminLogin signs in an authorized ADMIN
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, models.Unauthenticated("Not an admin, not authorized")
	}
	if !user.Authorized {
		return nil, models.Unauthorized("Please contact supervisor for login access")
	}
	return s.startSession(user)
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("%s does not exist, please register", email)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := utils.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}
	if !match {
		return nil, models.Unauthenticated("Please provide valid credentials")
	}
	return user, nil
}

func (s *AuthService) startSession(user *models.User) (*LoginResult, error) {
	if !user.IsActive() {
		return nil, models.Unauthenticated("Account has been locked by admin")
	}
	if !user.IsVerified {
		return nil, models.Unauthenticated("Please verify your email")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

func actionLink(origin, path, token, email string) string {
	query := url.Values{}
	query.Set("token", token)
	query.Set("email", email)
	return strings.TrimSuffix(origin, "/") + path + "?" + query.Encode()
}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
