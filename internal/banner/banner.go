package banner

import "time"

// Banner is a homepage promotion slot. Only active banners are served
// publicly, ordered by position.
type Banner struct {
	ID        int       `json:"bannerId"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	TargetURL string    `json:"targetUrl,omitempty"`
	Position  int       `json:"position"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
