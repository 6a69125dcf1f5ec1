package banner

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("banner not found")

type Repository interface {
	// ListActive returns active banners ordered by position.
	ListActive(limit int) ([]Banner, error)
	ListAll() ([]Banner, error)
	Create(b Banner) (Banner, error)
	Update(id int, b Banner) (Banner, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu      sync.Mutex
	banners []Banner
	nextID  int
}

func NewInMemoryRepository(seed []Banner) *InMemoryRepository {
	r := &InMemoryRepository{banners: make([]Banner, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, b := range seed {
		r.banners = append(r.banners, b)
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) ListActive(limit int) ([]Banner, error) {
	r.mu.Lock()
	out := make([]Banner, 0)
	for _, b := range r.banners {
		if b.Active {
			out = append(out, b)
		}
	}
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Banner, len(r.banners))
	copy(out, r.banners)
	return out, nil
}

func (r *InMemoryRepository) Create(b Banner) (Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.banners = append(r.banners, b)
	return b, nil
}

func (r *InMemoryRepository) Update(id int, b Banner) (Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.banners {
		if r.banners[i].ID == id {
			b.ID = id
			b.CreatedAt = r.banners[i].CreatedAt
			r.banners[i] = b
			return b, nil
		}
	}
	return Banner{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.banners {
		if r.banners[i].ID == id {
			r.banners = append(r.banners[:i], r.banners[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
