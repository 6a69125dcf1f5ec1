package category

import "time"

// Category groups products. A category cannot be deleted while it still
// owns products.
type Category struct {
	ID          int       `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
