package review

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("review not found")
	// ErrDuplicateReview enforces at most one review per (user, product)
	// pair, regardless of the existing review's status.
	ErrDuplicateReview = errors.New("product already reviewed by this user")
	// ErrTerminalReview rejects moderation of an already moderated review.
	ErrTerminalReview = errors.New("review has already been moderated")
)

type Repository interface {
	Create(r Review) (Review, error)
	GetByID(id int) (Review, error)
	// ListApproved returns publicly visible reviews for a product, newest
	// first.
	ListApproved(productID int) ([]Review, error)
	ListByStatus(status string) ([]Review, error)
	SetStatus(id int, status string) (Review, error)
}

type InMemoryRepository struct {
	mu      sync.Mutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.UserID == rev.UserID && existing.ProductID == rev.ProductID {
			return Review{}, ErrDuplicateReview
		}
	}
	rev.ID = r.nextID
	r.nextID++
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now().UTC()
	}
	r.reviews = append(r.reviews, rev)
	return rev, nil
}

func (r *InMemoryRepository) GetByID(id int) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.ID == id {
			return rev, nil
		}
	}
	return Review{}, ErrNotFound
}

func (r *InMemoryRepository) ListApproved(productID int) ([]Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Review, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].ProductID == productID && r.reviews[i].Status == StatusApproved {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByStatus(status string) ([]Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Review, 0)
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].Status == status {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) SetStatus(id int, status string) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews[i].Status = status
			return r.reviews[i], nil
		}
	}
	return Review{}, ErrNotFound
}
