package cart

import (
	"github.com/shopspring/decimal"

	"github.com/lifestylemart/storefront-backend/internal/product"
)

// Line is one cart entry joined with the live product it references.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// View is the cart as shown at checkout: live prices, dead lines dropped.
type View struct {
	Lines         []Line          `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	DistinctItems int             `json:"distinctItems"`
	TotalUnits    int             `json:"totalUnits"`
}

// Summary is returned by mutations.
type Summary struct {
	DistinctItems int `json:"distinctItems"`
	TotalUnits    int `json:"totalUnits"`
}
