package favorite

import (
	"github.com/lifestylemart/storefront-backend/internal/product"
)

// Service keeps each shopper's favorites list and joins it against the live
// catalog when listing.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

// Add marks a product as a favorite. The product has to exist; adding it
// twice fails with ErrAlreadyFavorite.
func (s *Service) Add(userID, productID int) ([]int, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.Add(userID, productID)
}

func (s *Service) Remove(userID, productID int) ([]int, error) {
	return s.repo.Remove(userID, productID)
}

// Products returns the favorite products joined against the catalog.
// Entries whose product has since disappeared are silently skipped.
func (s *Service) Products(userID int) ([]product.Product, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	return s.products.ListByIDs(ids)
}
