package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eats-service/internal/domain"
)

type fakeUserResolver struct {
	user *domain.User
}

func (f *fakeUserResolver) ResolveUser(ctx context.Context, id int64) (*domain.User, bool) {
	if f.user == nil || f.user.ID != id {
		return nil, false
	}
	return f.user, true
}

func newMiddlewareApp(t *testing.T, mw *IdentityMiddleware) (*fiber.App, *[]*domain.User) {
	t.Helper()

	var seen []*domain.User
	app := fiber.New()
	app.Post("/graphql", mw.Handle, func(c *fiber.Ctx) error {
		user, _ := UserFromContext(c.UserContext())
		seen = append(seen, user)
		return c.SendString("ok")
	})
	return app, &seen
}

func TestIdentityMiddleware_AttachesUser(t *testing.T) {
	tm := NewTokenManager("secret")
	resolver := &fakeUserResolver{user: &domain.User{ID: 7, Email: "a@x.com", Role: domain.RoleOwner}}
	app, seen := newMiddlewareApp(t, NewIdentityMiddleware(tm, resolver, "x-jwt"))

	token, err := tm.Sign(7)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	req := httptest.NewRequest("POST", "/graphql", nil)
	req.Header.Set("x-jwt", token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status: got %d want 200", resp.StatusCode)
	}
	if len(*seen) != 1 || (*seen)[0] == nil || (*seen)[0].ID != 7 {
		t.Fatalf("expected user 7 attached, got %+v", *seen)
	}
}

func TestIdentityMiddleware_MissingHeaderIsAnonymous(t *testing.T) {
	tm := NewTokenManager("secret")
	app, seen := newMiddlewareApp(t, NewIdentityMiddleware(tm, &fakeUserResolver{}, "x-jwt"))

	resp, err := app.Test(httptest.NewRequest("POST", "/graphql", nil))
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("anonymous request must not be rejected, status %d", resp.StatusCode)
	}
	if len(*seen) != 1 || (*seen)[0] != nil {
		t.Fatalf("expected no user attached, got %+v", *seen)
	}
}

func TestIdentityMiddleware_BadTokenIsAnonymous(t *testing.T) {
	tm := NewTokenManager("secret")
	resolver := &fakeUserResolver{user: &domain.User{ID: 7}}
	app, seen := newMiddlewareApp(t, NewIdentityMiddleware(tm, resolver, "x-jwt"))

	req := httptest.NewRequest("POST", "/graphql", nil)
	req.Header.Set("x-jwt", "garbage")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("bad token must not be rejected, status %d", resp.StatusCode)
	}
	if len(*seen) != 1 || (*seen)[0] != nil {
		t.Fatalf("expected no user attached, got %+v", *seen)
	}
}

func TestIdentityMiddleware_UnknownUserIsAnonymous(t *testing.T) {
	tm := NewTokenManager("secret")
	app, seen := newMiddlewareApp(t, NewIdentityMiddleware(tm, &fakeUserResolver{}, "x-jwt"))

	token, err := tm.Sign(99)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	req := httptest.NewRequest("POST", "/graphql", nil)
	req.Header.Set("x-jwt", token)

	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if len(*seen) != 1 || (*seen)[0] != nil {
		t.Fatalf("expected no user attached, got %+v", *seen)
	}
}
