package category

import "errors"

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to limit categories; limit <= 0 returns all of them.
func (s *Service) List(limit int) ([]Category, error) {
	return s.repo.List(limit)
}

func (s *Service) GetByID(id int) (Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, errors.New("category name is required")
	}
	return s.repo.Create(c)
}

func (s *Service) Update(id int, c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, errors.New("category name is required")
	}
	return s.repo.Update(id, c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
