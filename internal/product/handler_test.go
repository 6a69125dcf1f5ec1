package product

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/lifestylemart/storefront-backend/internal/user"
)

func makeShopApp(seed []Product) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(seed)
	h := NewHandler(NewService(repo))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			claims := jwt.MapClaims{"user_id": 1, "role": role}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app, repo
}

func shopSeed() []Product {
	return []Product{
		{ID: 1, Name: "Walnut Desk", CategoryID: 1, Price: decimal.NewFromInt(15000), Stock: 4, Status: StatusActive},
		{ID: 2, Name: "Desk Lamp", CategoryID: 2, Price: decimal.NewFromInt(1800), Stock: 20, Status: StatusActive, Featured: true},
		{ID: 3, Name: "Retired Chair", CategoryID: 1, Price: decimal.NewFromInt(5000), Stock: 2, Status: StatusInactive},
	}
}

func TestShopListing(t *testing.T) {
	app, _ := makeShopApp(shopSeed())

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/shop", nil))
	if err != nil {
		t.Fatalf("shop request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if strings.Contains(body, "Retired Chair") {
		t.Fatalf("inactive product leaked into the listing: %s", body)
	}
	if !strings.Contains(body, `"total":2`) {
		t.Fatalf("expected 2 active products: %s", body)
	}

	// category filter
	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/shop?category=2", nil))
	if err != nil {
		t.Fatalf("filtered shop request failed: %v", err)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Desk Lamp") || strings.Contains(string(b), "Walnut Desk") {
		t.Fatalf("category filter wrong: %s", string(b))
	}

	// search matches name, case-insensitive
	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/shop?search=walnut", nil))
	if err != nil {
		t.Fatalf("search request failed: %v", err)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Walnut Desk") || strings.Contains(string(b), "Desk Lamp") {
		t.Fatalf("search wrong: %s", string(b))
	}
}

func TestShopSortAndPagination(t *testing.T) {
	app, _ := makeShopApp(shopSeed())

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/shop?sort=price_low", nil))
	if err != nil {
		t.Fatalf("sorted request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if strings.Index(body, "Desk Lamp") > strings.Index(body, "Walnut Desk") {
		t.Fatalf("price_low sort wrong: %s", body)
	}

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/shop?per_page=1&page=2", nil))
	if err != nil {
		t.Fatalf("paged request failed: %v", err)
	}
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"totalPages":2`) {
		t.Fatalf("expected 2 pages of 1: %s", string(b))
	}
}

func TestProductDetail_HidesInactive(t *testing.T) {
	app, _ := makeShopApp(shopSeed())

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/1", nil))
	if err != nil {
		t.Fatalf("detail request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for active product, got %d", res.StatusCode)
	}

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/3", nil))
	if err != nil {
		t.Fatalf("inactive detail request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("inactive product must read as 404, got %d", res.StatusCode)
	}

	res, err = app.Test(httptest.NewRequest("GET", "/api/v1/products/99", nil))
	if err != nil {
		t.Fatalf("missing detail request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", res.StatusCode)
	}
}

func TestFeatured(t *testing.T) {
	app, _ := makeShopApp(shopSeed())

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/featured", nil))
	if err != nil {
		t.Fatalf("featured request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Desk Lamp") || strings.Contains(string(b), "Walnut Desk") {
		t.Fatalf("featured listing wrong: %s", string(b))
	}
}

func TestAdminProductRoutes(t *testing.T) {
	app, repo := makeShopApp(shopSeed())

	payload := `{"name":"Bookshelf","categoryId":1,"price":"4500","stock":6}`

	// anonymous
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("anonymous create failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// non-admin
	req = httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", user.RoleUser)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("non-admin create failed: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	// admin
	req = httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", user.RoleAdmin)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 on create, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/admin/products/1", nil)
	req.Header.Set("X-User-Role", user.RoleAdmin)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", res.StatusCode)
	}
	if _, err := repo.GetByID(1); err == nil {
		t.Fatalf("deleted product still present")
	}
}
