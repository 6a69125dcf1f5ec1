package favorite

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lifestylemart/storefront-backend/internal/product"
)

func newFavoriteService() *Service {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Ceramic Mug", Price: decimal.NewFromInt(250), Stock: 10, Status: product.StatusActive},
		{ID: 2, Name: "Throw Pillow", Price: decimal.NewFromInt(600), Stock: 3, Status: product.StatusActive},
	})
	return NewService(NewInMemoryRepository(), product.NewService(products))
}

func TestFavorites(t *testing.T) {
	svc := newFavoriteService()

	ids, err := svc.Add(7, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("unexpected favorites %v", ids)
	}

	if _, err := svc.Add(7, 1); !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("expected ErrAlreadyFavorite, got %v", err)
	}
	if _, err := svc.Add(7, 99); !errors.Is(err, product.ErrNotFound) {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}

	ids, err = svc.Add(7, 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 {
		t.Fatalf("newest favorite should come first: %v", ids)
	}

	products, err := svc.Products(7)
	if err != nil {
		t.Fatalf("products failed: %v", err)
	}
	if len(products) != 2 || products[0].Name != "Throw Pillow" {
		t.Fatalf("joined favorites wrong: %+v", products)
	}

	// favorites are per user
	other, err := svc.Products(8)
	if err != nil {
		t.Fatalf("other user products failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("favorites leaked across users: %+v", other)
	}

	if _, err := svc.Remove(7, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := svc.Remove(7, 1); !errors.Is(err, ErrNotFavorite) {
		t.Fatalf("expected ErrNotFavorite, got %v", err)
	}
}
