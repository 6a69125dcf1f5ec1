package user

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrForbidden = errors.New("insufficient role")

// ServiceInterface is the subset of the user service other packages depend on.
type ServiceInterface interface {
	GetByID(id int) (User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(u User, password string) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u.Password = string(hashed)
	u.Role = RoleUser
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// UpdateProfile applies the non-empty fields of patch to the stored user.
func (s *Service) UpdateProfile(id int, patch User) (User, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if patch.Name != "" {
		current.Name = patch.Name
	}
	if patch.Phone != "" {
		current.Phone = patch.Phone
	}
	if patch.Address != "" {
		current.Address = patch.Address
	}
	return s.repo.Update(id, current)
}

func (s *Service) SetRole(id int, role string) (User, error) {
	if !ValidRole(role) {
		return User{}, errors.New("unknown role: " + role)
	}
	return s.repo.SetRole(id, role)
}

// Authorize is the explicit role gate invoked at the top of protected
// handlers: it returns ErrForbidden unless the principal carries the
// required role.
func Authorize(principal Principal, required string) error {
	if principal.Role != required {
		return ErrForbidden
	}
	return nil
}
