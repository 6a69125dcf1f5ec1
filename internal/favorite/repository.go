package favorite

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFavorite     = errors.New("product not in favorites")
)

// Repository stores which products each user has marked as favorites.
// Mutations return the user's updated product ID list, newest first.
type Repository interface {
	List(userID int) ([]int, error)
	Add(userID, productID int) ([]int, error)
	Remove(userID, productID int) ([]int, error)
}

type InMemoryRepository struct {
	mu   sync.Mutex
	favs map[int][]int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{favs: make(map[int][]int)}
}

func (r *InMemoryRepository) List(userID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.favs[userID]))
	copy(out, r.favs[userID])
	return out, nil
}

func (r *InMemoryRepository) Add(userID, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pid := range r.favs[userID] {
		if pid == productID {
			return nil, ErrAlreadyFavorite
		}
	}
	// newest first
	r.favs[userID] = append([]int{productID}, r.favs[userID]...)
	out := make([]int, len(r.favs[userID]))
	copy(out, r.favs[userID])
	return out, nil
}

func (r *InMemoryRepository) Remove(userID, productID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.favs[userID]
	for i, pid := range current {
		if pid == productID {
			r.favs[userID] = append(current[:i], current[i+1:]...)
			out := make([]int, len(r.favs[userID]))
			copy(out, r.favs[userID])
			return out, nil
		}
	}
	return nil, ErrNotFavorite
}
