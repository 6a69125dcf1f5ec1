package order

import (
	"fmt"
	"math/rand"
	"time"
)

// maxNumberAttempts bounds the regenerate-on-collision loop around order
// number insertion.
const maxNumberAttempts = 5

// NewOrderNumber builds a human-readable order token: LSM + date + a random
// 4-digit suffix. Uniqueness is enforced by the orders.order_number unique
// constraint plus a retry loop at insert time.
func NewOrderNumber() string {
	return fmt.Sprintf("LSM%s%04d", time.Now().Format("20060102"), rand.Intn(10000))
}
