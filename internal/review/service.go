package review

import (
	"errors"
	"strings"
)

const (
	minTextLen = 10
	maxTextLen = 500
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrInvalidText   = errors.New("review must be between 10 and 500 characters")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit files a new review. One review per (user, product) pair; new
// reviews always start pending and wait for moderation.
func (s *Service) Submit(userID, productID, rating int, text string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, ErrInvalidRating
	}
	text = strings.TrimSpace(text)
	if len(text) < minTextLen || len(text) > maxTextLen {
		return Review{}, ErrInvalidText
	}

	return s.repo.Create(Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Text:      text,
		Status:    StatusPending,
	})
}

// ListApproved returns the publicly visible reviews for a product.
func (s *Service) ListApproved(productID int) ([]Review, error) {
	return s.repo.ListApproved(productID)
}

// ListPending returns the moderation queue.
func (s *Service) ListPending() ([]Review, error) {
	return s.repo.ListByStatus(StatusPending)
}

// Approve publishes a pending review. Approving an approved review is a
// no-op; a rejected review cannot come back.
func (s *Service) Approve(id int) (Review, error) {
	return s.moderate(id, StatusApproved)
}

// Reject buries a pending review. Rejecting a rejected review is a no-op;
// an approved review cannot be withdrawn.
func (s *Service) Reject(id int) (Review, error) {
	return s.moderate(id, StatusRejected)
}

func (s *Service) moderate(id int, verdict string) (Review, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return Review{}, err
	}
	if current.Status == verdict {
		return current, nil
	}
	if current.Status != StatusPending {
		return Review{}, ErrTerminalReview
	}
	return s.repo.SetStatus(id, verdict)
}
