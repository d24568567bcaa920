package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ecommerce-platform/internal/models"
)

// TokenClaims is the session payload carried in the signed cookie
type TokenClaims struct {
	UserID uuid.UUID       `json:"userId"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and parses HS256 session tokens
type TokenService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewTokenService creates a token service
func NewTokenService(secret string, expiration time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Expiration returns how long issued tokens stay valid
func (s *TokenService) Expiration() time.Duration {
	return s.expiration
}

// Issue signs a token for user
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := TokenClaims{
		UserID: user.ID,
		Name:   user.FullName(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the actor it was issued for
func (s *TokenService) Parse(token string) (models.Actor, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Actor{}, models.Unauthenticated("Session expired, please login again")
		}
		return models.Actor{}, models.Unauthenticated("Authentication invalid")
	}
	if claims.UserID == uuid.Nil {
		return models.Actor{}, models.Unauthenticated("Authentication invalid")
	}

	return models.Actor{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
