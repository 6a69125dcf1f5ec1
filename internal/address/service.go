package address

import "errors"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]Address, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Create(userID int, a Address) (Address, error) {
	if err := validate(a); err != nil {
		return Address{}, err
	}
	a.UserID = userID
	return s.repo.Create(a)
}

func (s *Service) Update(userID, id int, a Address) (Address, error) {
	if err := validate(a); err != nil {
		return Address{}, err
	}
	return s.repo.Update(userID, id, a)
}

func (s *Service) Delete(userID, id int) error {
	return s.repo.Delete(userID, id)
}

// Resolve returns the formatted shipping text for a saved address, scoped to
// its owner. Checkout uses this when the request names an address by ID.
func (s *Service) Resolve(userID, id int) (string, error) {
	a, err := s.repo.GetByID(userID, id)
	if err != nil {
		return "", err
	}
	return a.Format(), nil
}

func validate(a Address) error {
	if a.Label == "" {
		return errors.New("label is required")
	}
	if a.Recipient == "" {
		return errors.New("recipient is required")
	}
	if a.Line == "" || a.City == "" {
		return errors.New("street line and city are required")
	}
	return nil
}
