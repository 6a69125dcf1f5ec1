package user

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// helper to build an app with a simple "bootstrap" middleware that injects a
// jwt.Token into locals when the X-User-ID header is provided. This avoids
// pulling in the full jwtware middleware and keeps tests lightweight.
func makeAppWithUserHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id, "role": c.Get("X-User-Role", RoleUser)}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestSignUpAndSignIn(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)), "test-secret")
	app := makeAppWithUserHandler(handler)

	body := `{"name":"Amina","email":"Amina@Example.com","password":"s3cret-pw"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("sign-up request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 on sign-up, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "s3cret-pw") {
		t.Fatalf("response leaked the password: %s", string(b))
	}
	if !strings.Contains(string(b), `"role":"user"`) {
		t.Fatalf("new account should carry role user: %s", string(b))
	}

	// email is normalized, so the mixed-case variant is a duplicate
	res, err = app.Test(httptestJSON("POST", "/api/v1/sign-up", body))
	if err != nil {
		t.Fatalf("duplicate sign-up failed: %v", err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", res.StatusCode)
	}

	// sign in with the normalized email
	res, err = app.Test(httptestJSON("POST", "/api/v1/sign-in", `{"email":"amina@example.com","password":"s3cret-pw"}`))
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on sign-in, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"token"`) {
		t.Fatalf("sign-in response missing token: %s", string(b))
	}

	res, err = app.Test(httptestJSON("POST", "/api/v1/sign-in", `{"email":"amina@example.com","password":"nope"}`))
	if err != nil {
		t.Fatalf("bad sign-in failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 on wrong password, got %d", res.StatusCode)
	}
}

func TestProfileRoutes(t *testing.T) {
	seed := []User{{ID: 7, Email: "j@example.com", Name: "Jenny", Role: RoleUser}}
	handler := NewHandler(NewService(NewInMemoryRepository(seed)), "test-secret")
	app := makeAppWithUserHandler(handler)

	// no token
	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/profile", nil))
	if err != nil {
		t.Fatalf("profile request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("authorized profile request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "j@example.com") {
		t.Fatalf("response missing user email: %s", string(b))
	}

	// partial update via PATCH
	req = httptestJSON("PATCH", "/api/v1/profile", `{"phone":"0171234567"}`)
	req.Header.Set("X-User-ID", "7")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("profile patch failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on patch, got %d", res.StatusCode)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), "0171234567") || !strings.Contains(string(b), "Jenny") {
		t.Fatalf("patch response unexpected: %s", string(b))
	}
}

func TestAdminRoutes_RoleGate(t *testing.T) {
	seed := []User{
		{ID: 1, Email: "root@example.com", Role: RoleAdmin},
		{ID: 2, Email: "shopper@example.com", Role: RoleUser},
	}
	handler := NewHandler(NewService(NewInMemoryRepository(seed)), "test-secret")
	app := makeAppWithUserHandler(handler)

	// ordinary users cannot list accounts
	req := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.Header.Set("X-User-ID", "2")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-User-Role", RoleAdmin)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("admin list users failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res.StatusCode)
	}

	// promote the shopper to seller
	req = httptestJSON("PATCH", "/api/v1/admin/users/2/role", `{"role":"seller"}`)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-User-Role", RoleAdmin)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("set role failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on role change, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"role":"seller"`) {
		t.Fatalf("role change response unexpected: %s", string(b))
	}

	// unknown roles are rejected
	req = httptestJSON("PATCH", "/api/v1/admin/users/2/role", `{"role":"wizard"}`)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-User-Role", RoleAdmin)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("set bad role failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 on unknown role, got %d", res.StatusCode)
	}
}

func httptestJSON(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
