package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lifestylemart/storefront-backend/internal/product"
)

// Repository defines persistence for orders. Create must be atomic: the
// order row, its items and the stock decrements commit together or not at
// all.
type Repository interface {
	Create(ctx context.Context, draft Draft) (Order, []DroppedLine, error)
	GetByID(ctx context.Context, id int) (Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
	// UpdateStatus applies a transition the caller already validated. The
	// expected current status guards against concurrent admin updates, and
	// the first arrival into delivered stamps the actual delivery time.
	UpdateStatus(ctx context.Context, id int, from, to string) (Order, error)
	UpdateTracking(ctx context.Context, id int, t Tracking) (Order, error)
	UpdateRating(ctx context.Context, id int, rating int, review string) (Order, error)
	Stats(ctx context.Context) (Stats, error)
}

// InMemoryRepository mirrors the transactional checkout against an
// in-memory product table. Used by service tests.
type InMemoryRepository struct {
	mu       sync.Mutex
	products *product.InMemoryRepository
	orders   []Order
	numbers  map[string]bool
	nextID   int

	// dashboard counters the relational implementation derives from other
	// tables; tests set them directly.
	UserCount    int
	ProductCount int
}

func NewInMemoryRepository(products *product.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{
		products: products,
		numbers:  make(map[string]bool),
		nextID:   1,
	}
}

func (r *InMemoryRepository) Create(_ context.Context, draft Draft) (Order, []DroppedLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// deterministic order keeps multi-line behavior reproducible
	ids := make([]int, 0, len(draft.Lines))
	for pid := range draft.Lines {
		ids = append(ids, pid)
	}
	sort.Ints(ids)

	var items []Item
	var dropped []DroppedLine
	for _, pid := range ids {
		qty := draft.Lines[pid]
		p, err := r.products.GetByID(pid)
		if err != nil {
			dropped = append(dropped, DroppedLine{ProductID: pid, Requested: qty, Reason: "product missing"})
			continue
		}
		if !p.Active() {
			dropped = append(dropped, DroppedLine{ProductID: pid, Requested: qty, Reason: "product inactive"})
			continue
		}
		if p.Stock < qty {
			dropped = append(dropped, DroppedLine{ProductID: pid, Requested: qty, Reason: "insufficient stock"})
			continue
		}
		items = append(items, Item{
			ProductID: pid,
			Quantity:  qty,
			UnitPrice: p.Price,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	if len(items) == 0 {
		return Order{}, dropped, ErrNoValidItems
	}

	for _, item := range items {
		if err := r.products.DecrementStock(item.ProductID, item.Quantity); err != nil {
			// roll back the decrements already applied
			for _, done := range items {
				if done.ProductID == item.ProductID {
					break
				}
				r.restock(done.ProductID, done.Quantity)
			}
			return Order{}, dropped, ErrStockConflict
		}
	}

	number := NewOrderNumber()
	for attempt := 0; r.numbers[number] && attempt < maxNumberAttempts; attempt++ {
		number = NewOrderNumber()
	}
	r.numbers[number] = true

	pricing := ComputePricing(items, draft)
	now := time.Now().UTC()
	ord := Order{
		ID:              r.nextID,
		UserID:          draft.UserID,
		OrderNumber:     number,
		Subtotal:        pricing.Subtotal,
		GiftDiscount:    pricing.GiftDiscount,
		DeliveryFee:     pricing.DeliveryFee,
		TotalAmount:     pricing.Total,
		Status:          StatusPending,
		PaymentMethod:   draft.PaymentMethod,
		PaymentStatus:   PaymentStatusFor(draft.PaymentMethod),
		ShippingAddress: draft.ShippingAddress,
		BillingAddress:  draft.BillingAddress,
		Notes:           draft.Notes,
		IsGift:          draft.IsGift,
		GiftMessage:     draft.GiftMessage,
		GiftWrap:        draft.GiftWrap,
		DeliveryType:    draft.DeliveryType,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.nextID++
	for i := range items {
		items[i].ID = i + 1
		items[i].OrderID = ord.ID
	}
	ord.Items = items
	r.orders = append(r.orders, ord)
	return ord, dropped, nil
}

func (r *InMemoryRepository) restock(productID, qty int) {
	if p, err := r.products.GetByID(productID); err == nil {
		p.Stock += qty
		r.products.Update(productID, p)
	}
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListRecent(_ context.Context, limit int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Order, 0, limit)
	for i := len(r.orders) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id int, from, to string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		if r.orders[i].Status != from {
			return Order{}, ErrInvalidTransition
		}
		r.orders[i].Status = to
		if to == StatusDelivered && r.orders[i].ActualDelivery == nil {
			now := time.Now().UTC()
			r.orders[i].ActualDelivery = &now
		}
		r.orders[i].UpdatedAt = time.Now().UTC()
		return r.orders[i], nil
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateTracking(_ context.Context, id int, t Tracking) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		r.orders[i].TrackingNumber = t.TrackingNumber
		r.orders[i].CourierName = t.CourierName
		r.orders[i].EstimatedDelivery = t.EstimatedDelivery
		r.orders[i].UpdatedAt = time.Now().UTC()
		return r.orders[i], nil
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateRating(_ context.Context, id int, rating int, review string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		r.orders[i].DeliveryRating = rating
		r.orders[i].DeliveryReview = review
		r.orders[i].UpdatedAt = time.Now().UTC()
		return r.orders[i], nil
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Stats(_ context.Context) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := Stats{
		TotalUsers:    r.UserCount,
		TotalProducts: r.ProductCount,
		TotalOrders:   len(r.orders),
		TotalRevenue:  decimal.Zero,
	}
	for _, ord := range r.orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(ord.TotalAmount)
	}
	return stats, nil
}
