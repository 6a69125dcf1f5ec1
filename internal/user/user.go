package user

import "time"

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User represents an account. Password holds the bcrypt hash and is never
// serialized in API responses.
type User struct {
	ID        int       `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSeller:
		return true
	}
	return false
}
