package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	PaymentCOD      = "cod"
	PaymentBkash    = "bkash"
	PaymentNagad    = "nagad"
	PaymentCard     = "card"
	PaymentGiftCard = "gift_card"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrEmptyCart rejects a checkout with zero cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoValidItems rejects a checkout in which every line referenced an
	// unavailable product.
	ErrNoValidItems = errors.New("no valid items in cart")
	// ErrStockConflict surfaces a concurrent stock consumption detected at
	// write time.
	ErrStockConflict = errors.New("stock changed during checkout")
	// ErrInvalidTransition rejects a status change outside the lifecycle
	// lattice.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotDelivered rejects a delivery rating before the order arrives.
	ErrNotDelivered = errors.New("order has not been delivered")
)

// Order is a committed purchase. Its pricing is snapshotted at creation and
// never recomputed.
type Order struct {
	ID              int             `json:"orderId"`
	UserID          int             `json:"userId"`
	OrderNumber     string          `json:"orderNumber"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	GiftDiscount    decimal.Decimal `json:"giftDiscount"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	ShippingAddress string          `json:"shippingAddress"`
	BillingAddress  string          `json:"billingAddress,omitempty"`
	Notes           string          `json:"notes,omitempty"`

	IsGift      bool   `json:"isGift"`
	GiftMessage string `json:"giftMessage,omitempty"`
	GiftWrap    bool   `json:"giftWrap"`

	DeliveryType      string     `json:"deliveryType"`
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	CourierName       string     `json:"courierName,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time `json:"actualDelivery,omitempty"`

	DeliveryRating int    `json:"deliveryRating,omitempty"`
	DeliveryReview string `json:"deliveryReview,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Items     []Item    `json:"items,omitempty"`
}

// Item is one order line with its unit price frozen at purchase time,
// decoupled from the live product price.
type Item struct {
	ID        int             `json:"itemId"`
	OrderID   int             `json:"orderId"`
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Draft carries everything the checkout needs to turn a cart snapshot into
// an order.
type Draft struct {
	UserID          int
	Lines           map[int]int
	PaymentMethod   string
	GiftCardCode    string
	ShippingAddress string
	BillingAddress  string
	Notes           string
	IsGift          bool
	GiftMessage     string
	GiftWrap        bool
	DeliveryType    string
}

// DroppedLine records a cart line the checkout skipped, for observability.
type DroppedLine struct {
	ProductID int
	Requested int
	Reason    string
}

// Tracking is the side-channel shipment metadata admins assign after
// creation; last write wins.
type Tracking struct {
	TrackingNumber    string     `json:"trackingNumber"`
	CourierName       string     `json:"courierName"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

// Stats backs the admin dashboard.
type Stats struct {
	TotalUsers    int             `json:"totalUsers"`
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCOD, PaymentBkash, PaymentNagad, PaymentCard, PaymentGiftCard:
		return true
	}
	return false
}

func ValidDeliveryType(t string) bool {
	return t == DeliveryStandard || t == DeliveryExpress
}
