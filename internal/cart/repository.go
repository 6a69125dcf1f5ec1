package cart

import (
	"context"
	"sync"
)

// Repository stores session carts: a productID -> quantity mapping per
// browser session. Carts are never persisted to the relational store.
type Repository interface {
	Get(ctx context.Context, sessionID string) (map[int]int, error)
	// IncrQuantity adds delta to the stored quantity and returns the new
	// value. A missing line starts from zero.
	IncrQuantity(ctx context.Context, sessionID string, productID, delta int) (int, error)
	// SetQuantity replaces the stored quantity; qty <= 0 removes the line.
	SetQuantity(ctx context.Context, sessionID string, productID, qty int) error
	Remove(ctx context.Context, sessionID string, productID int) error
	Clear(ctx context.Context, sessionID string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.Mutex
	carts map[string]map[int]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string]map[int]int)}
}

func (r *InMemoryRepository) Get(_ context.Context, sessionID string) (map[int]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]int, len(r.carts[sessionID]))
	for pid, qty := range r.carts[sessionID] {
		out[pid] = qty
	}
	return out, nil
}

func (r *InMemoryRepository) IncrQuantity(_ context.Context, sessionID string, productID, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.carts[sessionID]
	if c == nil {
		c = make(map[int]int)
		r.carts[sessionID] = c
	}
	c[productID] += delta
	if c[productID] <= 0 {
		delete(c, productID)
		return 0, nil
	}
	return c[productID], nil
}

func (r *InMemoryRepository) SetQuantity(_ context.Context, sessionID string, productID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.carts[sessionID]
	if c == nil {
		c = make(map[int]int)
		r.carts[sessionID] = c
	}
	if qty <= 0 {
		delete(c, productID)
		return nil
	}
	c[productID] = qty
	return nil
}

func (r *InMemoryRepository) Remove(_ context.Context, sessionID string, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts[sessionID], productID)
	return nil
}

func (r *InMemoryRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
