package category

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("category not found")
	// ErrCategoryInUse is returned when deleting a category that still
	// owns products.
	ErrCategoryInUse = errors.New("category has products")
)

type Repository interface {
	List(limit int) ([]Category, error)
	GetByID(id int) (Category, error)
	Create(c Category) (Category, error)
	Update(id int, c Category) (Category, error)
	// Delete fails with ErrCategoryInUse while any product references the
	// category.
	Delete(id int) error
}

type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
	nextID     int
	// inUse reports whether a category still owns products; tests plug in
	// their own view of the product table.
	inUse func(categoryID int) bool
}

func NewInMemoryRepository(seed []Category, inUse func(int) bool) *InMemoryRepository {
	if inUse == nil {
		inUse = func(int) bool { return false }
	}
	r := &InMemoryRepository{categories: make([]Category, 0, len(seed)), nextID: 1, inUse: inUse}
	maxID := 0
	for _, c := range seed {
		r.categories = append(r.categories, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(limit int) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *InMemoryRepository) Update(id int, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == id {
			c.ID = id
			c.CreatedAt = r.categories[i].CreatedAt
			r.categories[i] = c
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == id {
			if r.inUse(id) {
				return ErrCategoryInUse
			}
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
