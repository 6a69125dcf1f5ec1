package address

import "time"

// Address is a saved entry in a shopper's address book. Orders snapshot the
// formatted text at checkout, so later edits never rewrite history.
type Address struct {
	ID        int       `json:"addressId"`
	UserID    int       `json:"userId"`
	Label     string    `json:"label"`
	Recipient string    `json:"recipient"`
	Phone     string    `json:"phone,omitempty"`
	Line      string    `json:"line"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// Format renders the address as the single-line text stored on orders.
func (a Address) Format() string {
	s := a.Recipient + ", " + a.Line + ", " + a.City
	if a.Phone != "" {
		s += " (" + a.Phone + ")"
	}
	return s
}
