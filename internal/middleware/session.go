package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"ecommerce-platform/internal/config"
	"ecommerce-platform/internal/models"
)

const (
	sessionName     = "token"
	sessionTokenKey = "jwt"
)

// TokenParser turns a session token into the actor it was issued for
type TokenParser interface {
	Parse(token string) (models.Actor, error)
}

// SessionManager keeps the signed session token in a gorilla/sessions cookie
type SessionManager struct {
	store  *sessions.CookieStore
	tokens TokenParser
	logger *zap.Logger
}

// NewSessionManager creates a cookie-backed session manager. Cookies live as long as the token.
func NewSessionManager(cfg config.SessionConfig, tokens TokenParser, logger *zap.Logger) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenExpiration.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	// the storefront and admin apps call the API cross-site in production
	if cfg.CookieSecure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	return &SessionManager{store: store, tokens: tokens, logger: logger}
}

// Start stores token in the session cookie
func (m *SessionManager) Start(w http.ResponseWriter, r *http.Request, token string) error {
	// a stale or tampered cookie yields a fresh session and an error we can ignore
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionTokenKey] = token
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// End expires the session cookie
func (m *SessionManager) End(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// token returns the session token carried by r, if any
func (m *SessionManager) token(r *http.Request) (string, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		m.logger.Debug("ignoring invalid session cookie", zap.Error(err))
		return "", false
	}
	token, ok := session.Values[sessionTokenKey].(string)
	return token, ok && token != ""
}
