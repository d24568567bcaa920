package services

import (
	"context"

	"go.uber.org/zap"

	"ecommerce-platform/internal/config"
)

// MockEmailService logs emails instead of sending them
type MockEmailService struct {
	logger *zap.Logger
}

// NewMockEmailService creates a logging email service
func NewMockEmailService(logger *zap.Logger) *MockEmailService {
	return &MockEmailService{logger: logger}
}

// NewEmailService returns Resend when an API key is configured, the logging mock otherwise
func NewEmailService(cfg config.ResendConfig, logger *zap.Logger) EmailService {
	if cfg.APIKey != "" {
		logger.Info("email service: using Resend API")
		return NewResendEmailService(cfg, logger)
	}

	logger.Warn("email service: using mock (no Resend API key provided)")
	return NewMockEmailService(logger)
}

// SendVerificationEmail logs the verification link
func (s *MockEmailService) SendVerificationEmail(ctx context.Context, name, email, link string) error {
	s.logger.Info("mock email: verification", zap.String("to", email), zap.String("name", name), zap.String("link", link))
	return nil
}

// SendPasswordResetEmail logs the reset link
func (s *MockEmailService) SendPasswordResetEmail(ctx context.Context, name, email, link string) error {
	s.logger.Info("mock email: password reset", zap.String("to", email), zap.String("name", name), zap.String("link", link))
	return nil
}
