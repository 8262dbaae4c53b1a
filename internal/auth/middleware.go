package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eats-service/internal/domain"
)

type contextKey struct{}

var userContextKey contextKey

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok && user != nil
}

// UserResolver loads a user by id for identity resolution.
type UserResolver interface {
	ResolveUser(ctx context.Context, id int64) (*domain.User, bool)
}

// IdentityMiddleware resolves the token header to a user and threads it into
// the request context. It never rejects a request: every failure degrades to
// an anonymous request, and authorization happens at the resolver boundary.
type IdentityMiddleware struct {
	tokens *TokenManager
	users  UserResolver
	header string
}

// NewIdentityMiddleware constructs middleware reading the given header.
func NewIdentityMiddleware(tokens *TokenManager, users UserResolver, header string) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens, users: users, header: header}
}

// Handle attaches the resolved user to the request context, best effort.
func (m *IdentityMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := c.Get(m.header)
	if tokenStr == "" {
		return c.Next()
	}

	claims, err := m.tokens.Parse(tokenStr)
	if err != nil {
		return c.Next()
	}

	user, ok := m.users.ResolveUser(c.UserContext(), claims.UserID)
	if !ok {
		return c.Next()
	}

	c.SetUserContext(WithUser(c.UserContext(), user))
	return c.Next()
}
