package address

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAddressApp(seed []Address) *fiber.App {
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestAddressBook(t *testing.T) {
	app := makeAddressApp(nil)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/addresses", nil))
	if err != nil {
		t.Fatalf("anonymous list failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	body := `{"label":"Home","recipient":"Amina Rahman","phone":"0171234567","line":"House 12, Road 5","city":"Dhaka"}`
	req := httptest.NewRequest("POST", "/api/v1/addresses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 on create, got %d", res.StatusCode)
	}

	// missing required fields
	req = httptest.NewRequest("POST", "/api/v1/addresses", strings.NewReader(`{"label":"Work"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("invalid create failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on incomplete address, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/addresses", nil)
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Amina Rahman") {
		t.Fatalf("list missing saved address: %s", string(b))
	}

	// another user sees an empty book and cannot touch the entry
	req = httptest.NewRequest("GET", "/api/v1/addresses", nil)
	req.Header.Set("X-User-ID", "8")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("other user list failed: %v", err)
	}
	b, _ = io.ReadAll(res.Body)
	if strings.Contains(string(b), "Amina Rahman") {
		t.Fatalf("address leaked across users: %s", string(b))
	}

	req = httptest.NewRequest("DELETE", "/api/v1/addresses/1", nil)
	req.Header.Set("X-User-ID", "8")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("cross-user delete failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 deleting someone else's address, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/addresses/1", nil)
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on owner delete, got %d", res.StatusCode)
	}
}

func TestResolve(t *testing.T) {
	svc := NewService(NewInMemoryRepository([]Address{
		{ID: 3, UserID: 7, Label: "Home", Recipient: "Amina Rahman", Phone: "0171234567", Line: "House 12, Road 5", City: "Dhaka"},
	}))

	text, err := svc.Resolve(7, 3)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := "Amina Rahman, House 12, Road 5, Dhaka (0171234567)"
	if text != want {
		t.Fatalf("formatted address = %q, want %q", text, want)
	}

	if _, err := svc.Resolve(8, 3); err == nil {
		t.Fatalf("resolve must be owner-scoped")
	}
}
