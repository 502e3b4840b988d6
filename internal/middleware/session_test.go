package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aadyanvi/wealth-admin/internal/session"
)

func sessionApp(t *testing.T, store session.Store) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/guarded", RequireSession("admin_session", store), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"adminId": c.Locals(AdminIDKey)})
	})
	return app
}

func TestRequireSessionRejectsMissingCookie(t *testing.T) {
	app := sessionApp(t, session.NewMemoryStore(time.Hour))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireSessionRejectsUnknownToken(t *testing.T) {
	app := sessionApp(t, session.NewMemoryStore(time.Hour))

	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set("Cookie", "admin_session=not-a-live-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireSessionAcceptsValidToken(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	app := sessionApp(t, store)

	sess, err := store.Create(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set("Cookie", "admin_session="+sess.Token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
