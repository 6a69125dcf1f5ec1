package order

import (
	"context"
	"errors"
	"log"
)

// CartStore is the slice of the cart service the checkout needs: read the
// session's lines and clear them after the order commits.
type CartStore interface {
	Lines(ctx context.Context, sessionID string) (map[int]int, error)
	Clear(ctx context.Context, sessionID string) error
}

// Service implements the checkout engine and the order lifecycle.
type Service struct {
	repo  Repository
	carts CartStore
}

func NewService(repo Repository, carts CartStore) *Service {
	return &Service{repo: repo, carts: carts}
}

// Checkout turns the session cart into a durable order. The cart is cleared
// only after the order has committed; a failed clear is logged, never
// surfaced, since the purchase already happened.
func (s *Service) Checkout(ctx context.Context, sessionID string, draft Draft) (Order, error) {
	if draft.UserID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if !ValidPaymentMethod(draft.PaymentMethod) {
		return Order{}, errors.New("unknown payment method: " + draft.PaymentMethod)
	}
	if draft.DeliveryType == "" {
		draft.DeliveryType = DeliveryStandard
	}
	if !ValidDeliveryType(draft.DeliveryType) {
		return Order{}, errors.New("unknown delivery type: " + draft.DeliveryType)
	}
	if draft.ShippingAddress == "" {
		return Order{}, errors.New("shipping address is required")
	}
	if draft.BillingAddress == "" {
		draft.BillingAddress = draft.ShippingAddress
	}

	lines, err := s.carts.Lines(ctx, sessionID)
	if err != nil {
		return Order{}, err
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	draft.Lines = lines

	created, dropped, err := s.repo.Create(ctx, draft)
	for _, d := range dropped {
		log.Printf("checkout user %d: dropped line product=%d qty=%d: %s",
			draft.UserID, d.ProductID, d.Requested, d.Reason)
	}
	if err != nil {
		return Order{}, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("checkout user %d: could not clear cart %s: %v", draft.UserID, sessionID, err)
	}
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListRecent(ctx, limit)
}

// SetStatus moves an order through the lifecycle lattice. Re-asserting the
// current status is a no-op; anything outside the lattice fails with
// ErrInvalidTransition.
func (s *Service) SetStatus(ctx context.Context, id int, status string) (Order, error) {
	if !ValidStatus(status) {
		return Order{}, errors.New("unknown status: " + status)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if current.Status == status {
		return current, nil
	}
	if !CanTransition(current.Status, status) {
		return Order{}, ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, current.Status, status)
}

// SetTracking assigns shipment metadata. Independent of the status machine;
// last write wins.
func (s *Service) SetTracking(ctx context.Context, id int, t Tracking) (Order, error) {
	return s.repo.UpdateTracking(ctx, id, t)
}

// RateDelivery records the customer's post-delivery rating. Only the owner
// of a delivered order may rate it; repeated calls overwrite.
func (s *Service) RateDelivery(ctx context.Context, id, userID, rating int, review string) (Order, error) {
	if rating < 1 || rating > 5 {
		return Order{}, errors.New("rating must be between 1 and 5")
	}

	ord, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotFound
	}
	if ord.Status != StatusDelivered {
		return Order{}, ErrNotDelivered
	}
	return s.repo.UpdateRating(ctx, id, rating, review)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
