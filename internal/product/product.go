package product

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Sort keys accepted by the shop listing.
const (
	SortName      = "name"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortNewest    = "newest"
)

// Product is a catalog entry. Stock is mutated only by checkout (conditional
// decrement) and by admin edits.
type Product struct {
	ID          int             `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  int             `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Featured    bool            `json:"isFeatured"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (p Product) Active() bool {
	return p.Status == StatusActive
}

// ListFilter narrows and orders the shop listing.
type ListFilter struct {
	CategoryID int
	Search     string
	Sort       string
	Page       int
	PerPage    int
}

// Page is one page of an offset-paginated listing.
type Page struct {
	Items      []Product `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"perPage"`
	TotalPages int       `json:"totalPages"`
}

const DefaultPerPage = 12
