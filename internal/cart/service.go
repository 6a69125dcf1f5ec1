package cart

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"github.com/lifestylemart/storefront-backend/internal/product"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Service orchestrates cart operations, validating quantities against live
// stock before touching session state.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Add increments the stored quantity for a product. The combined quantity
// must not exceed current stock.
func (s *Service) Add(ctx context.Context, sessionID string, productID, qty int) (Summary, error) {
	if qty <= 0 {
		return Summary{}, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return Summary{}, err
	}

	current, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if current[productID]+qty > p.Stock {
		return Summary{}, product.ErrInsufficientStock
	}

	if _, err := s.repo.IncrQuantity(ctx, sessionID, productID, qty); err != nil {
		return Summary{}, err
	}
	return s.summary(ctx, sessionID)
}

// Update replaces the stored quantity. Zero or negative removes the line.
func (s *Service) Update(ctx context.Context, sessionID string, productID, qty int) (Summary, error) {
	if qty <= 0 {
		if err := s.repo.Remove(ctx, sessionID, productID); err != nil {
			return Summary{}, err
		}
		return s.summary(ctx, sessionID)
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return Summary{}, err
	}
	if qty > p.Stock {
		return Summary{}, product.ErrInsufficientStock
	}

	if err := s.repo.SetQuantity(ctx, sessionID, productID, qty); err != nil {
		return Summary{}, err
	}
	return s.summary(ctx, sessionID)
}

// Remove is idempotent; removing an absent line is a no-op.
func (s *Service) Remove(ctx context.Context, sessionID string, productID int) (Summary, error) {
	if err := s.repo.Remove(ctx, sessionID, productID); err != nil {
		return Summary{}, err
	}
	return s.summary(ctx, sessionID)
}

// Lines returns the raw productID -> quantity mapping.
func (s *Service) Lines(ctx context.Context, sessionID string) (map[int]int, error) {
	return s.repo.Get(ctx, sessionID)
}

// Totals joins the cart against the live catalog. Lines whose product no
// longer exists or is inactive are dropped from the view (and logged) but
// left in storage.
func (s *Service) Totals(ctx context.Context, sessionID string) (View, error) {
	stored, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	ids := make([]int, 0, len(stored))
	for pid := range stored {
		ids = append(ids, pid)
	}
	products, err := s.products.ListByIDs(ids)
	if err != nil {
		return View{}, err
	}
	byID := make(map[int]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	view := View{Lines: make([]Line, 0, len(stored)), Total: decimal.Zero}
	for pid, qty := range stored {
		p, ok := byID[pid]
		if !ok || !p.Active() {
			log.Printf("cart %s: dropping line for unavailable product %d", sessionID, pid)
			continue
		}
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		view.Lines = append(view.Lines, Line{Product: p, Quantity: qty, Subtotal: subtotal})
		view.Total = view.Total.Add(subtotal)
		view.DistinctItems++
		view.TotalUnits += qty
	}
	return view, nil
}

// Clear empties the session cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Clear(ctx, sessionID)
}

func (s *Service) summary(ctx context.Context, sessionID string) (Summary, error) {
	stored, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{DistinctItems: len(stored)}
	for _, qty := range stored {
		sum.TotalUnits += qty
	}
	return sum, nil
}
