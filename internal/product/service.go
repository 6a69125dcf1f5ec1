package product

import "errors"

// ServiceInterface is the subset of the product service other packages
// depend on (cart validation, order enrichment).
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	ListByIDs(ids []int) ([]Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f ListFilter) (Page, error) {
	return s.repo.List(f)
}

func (s *Service) Featured(limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.repo.Featured(limit)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func validate(p Product) error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.CategoryID <= 0 {
		return errors.New("category is required")
	}
	if p.Price.IsNegative() {
		return errors.New("price must be non-negative")
	}
	if p.Stock < 0 {
		return errors.New("stock must be non-negative")
	}
	if p.Status != "" && p.Status != StatusActive && p.Status != StatusInactive {
		return errors.New("unknown status: " + p.Status)
	}
	return nil
}
