package banner

import "errors"

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to limit active banners for the storefront.
func (s *Service) List(limit int) ([]Banner, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListActive(limit)
}

// ListAll returns every banner, including inactive ones, for the admin UI.
func (s *Service) ListAll() ([]Banner, error) {
	return s.repo.ListAll()
}

func (s *Service) Create(b Banner) (Banner, error) {
	if err := validate(b); err != nil {
		return Banner{}, err
	}
	return s.repo.Create(b)
}

func (s *Service) Update(id int, b Banner) (Banner, error) {
	if err := validate(b); err != nil {
		return Banner{}, err
	}
	return s.repo.Update(id, b)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func validate(b Banner) error {
	if b.Title == "" {
		return errors.New("banner title is required")
	}
	if b.Image == "" {
		return errors.New("banner image is required")
	}
	return nil
}
