package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ecommerce-platform/internal/config"
)

const resendAPIURL = "https://api.resend.com/emails"

// ResendEmailService sends email through the Resend API
type ResendEmailService struct {
	config  config.ResendConfig
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(cfg config.ResendConfig, logger *zap.Logger) *ResendEmailService {
	return &ResendEmailService{
		config:  cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: resendAPIURL,
		logger:  logger,
	}
}

// ResendEmailRequest represents the request structure for Resend API
type ResendEmailRequest struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html,omitempty"`
	Text    string      `json:"text,omitempty"`
	Tags    []ResendTag `json:"tags,omitempty"`
}

// ResendTag represents a tag for email categorization
type ResendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}

type resendErrorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

func (s *ResendEmailService) from() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

// SendVerificationEmail sends the account confirmation link
func (s *ResendEmailService) SendVerificationEmail(ctx context.Context, name, email, link string) error {
	return s.sendTemplate(ctx, "verification", email, linkEmailData{Name: name, Link: link})
}

// SendPasswordResetEmail sends the password reset link
func (s *ResendEmailService) SendPasswordResetEmail(ctx context.Context, name, email, link string) error {
	return s.sendTemplate(ctx, "password_reset", email, linkEmailData{Name: name, Link: link})
}

func (s *ResendEmailService) sendTemplate(ctx context.Context, name, to string, data linkEmailData) error {
	content, err := renderEmail(name, data)
	if err != nil {
		return err
	}

	return s.sendEmail(ctx, ResendEmailRequest{
		From:    s.from(),
		To:      []string{to},
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
		Tags:    []ResendTag{{Name: "category", Value: name}},
	})
}

func (s *ResendEmailService) sendEmail(ctx context.Context, request ResendEmailRequest) error {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResp resendErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err != nil {
			return fmt.Errorf("failed to send email, status: %d", resp.StatusCode)
		}
		return fmt.Errorf("failed to send email: %s", errorResp.Message)
	}

	var response resendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	s.logger.Debug("email sent", zap.String("id", response.ID), zap.Strings("to", request.To))
	return nil
}
