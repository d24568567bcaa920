package middleware

import (
	"context"
	"net/http"

	"github.com/samber/lo"

	"ecommerce-platform/internal/authz"
	"ecommerce-platform/internal/models"
)

type contextKey string

const actorContextKey contextKey = "actor"

// WithActor returns a copy of ctx carrying actor
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the authenticated actor, if any
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(models.Actor)
	return actor, ok
}

// Authenticate rejects requests without a valid session
func (m *SessionManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := m.token(r)
		if !ok {
			reject(w, models.Unauthenticated("Authentication invalid"))
			return
		}

		actor, err := m.tokens.Parse(token)
		if err != nil {
			WriteError(w, r, m.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// OptionalAuth attaches the actor when a valid session is present and never rejects
func (m *SessionManager) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := m.token(r); ok {
			if actor, err := m.tokens.Parse(token); err == nil {
				r = r.WithContext(WithActor(r.Context(), actor))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows only actors holding one of roles. It must run after Authenticate.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				reject(w, models.Unauthenticated("Authentication invalid"))
				return
			}
			if err := authz.RequireRole(actor, roles...); err != nil {
				reject(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ReadOnlyDemo blocks writes by the shared demo accounts
func ReadOnlyDemo(emails []string) func(http.Handler) http.Handler {
	demo := lo.SliceToMap(emails, func(email string) (string, struct{}) {
		return email, struct{}{}
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if actor, ok := ActorFromContext(r.Context()); ok {
				if _, isDemo := demo[actor.Email]; isDemo {
					reject(w, models.BadRequest("Test user. Read only!"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// reject writes a business error; it never logs
func reject(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(models.KindOf(err)), ErrorResponse{Msg: err.Error()})
}
