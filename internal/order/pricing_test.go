package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func lineFor(price int64, qty int) Item {
	p := decimal.NewFromInt(price)
	return Item{UnitPrice: p, Quantity: qty, LineTotal: p.Mul(decimal.NewFromInt(int64(qty)))}
}

func TestComputePricing_PlainOrder(t *testing.T) {
	items := []Item{lineFor(1200, 2), lineFor(300, 1)}
	p := ComputePricing(items, Draft{PaymentMethod: PaymentCard, DeliveryType: DeliveryStandard})

	if !p.Subtotal.Equal(decimal.NewFromInt(2700)) {
		t.Fatalf("subtotal = %s, want 2700", p.Subtotal)
	}
	if !p.GiftDiscount.IsZero() || !p.DeliveryFee.IsZero() {
		t.Fatalf("unexpected adjustments: discount=%s fee=%s", p.GiftDiscount, p.DeliveryFee)
	}
	if !p.Total.Equal(p.Subtotal) {
		t.Fatalf("total = %s, want %s", p.Total, p.Subtotal)
	}
}

func TestComputePricing_GiftCardDiscount(t *testing.T) {
	// 10% of 2000 = 200, below the cap
	p := ComputePricing([]Item{lineFor(2000, 1)}, Draft{PaymentMethod: PaymentGiftCard, GiftCardCode: "GC-1"})
	if !p.GiftDiscount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("discount = %s, want 200", p.GiftDiscount)
	}
	if !p.Total.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("total = %s, want 1800", p.Total)
	}

	// 10% of 20000 = 2000, capped at 500
	p = ComputePricing([]Item{lineFor(20000, 1)}, Draft{PaymentMethod: PaymentGiftCard, GiftCardCode: "GC-1"})
	if !p.GiftDiscount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("capped discount = %s, want 500", p.GiftDiscount)
	}

	// no code, no discount even when paying by gift card
	p = ComputePricing([]Item{lineFor(2000, 1)}, Draft{PaymentMethod: PaymentGiftCard})
	if !p.GiftDiscount.IsZero() {
		t.Fatalf("discount without code = %s, want 0", p.GiftDiscount)
	}
}

func TestComputePricing_TotalNeverNegative(t *testing.T) {
	p := ComputePricing(nil, Draft{PaymentMethod: PaymentGiftCard, GiftCardCode: "GC-1"})
	if p.Total.IsNegative() {
		t.Fatalf("total went negative: %s", p.Total)
	}
	if !p.GiftDiscount.IsZero() {
		t.Fatalf("discount exceeds subtotal: %s", p.GiftDiscount)
	}
}

func TestComputePricing_SurchargesStack(t *testing.T) {
	items := []Item{lineFor(1000, 1)}
	p := ComputePricing(items, Draft{PaymentMethod: PaymentCard, DeliveryType: DeliveryExpress, GiftWrap: true})
	if !p.DeliveryFee.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("fee = %s, want 150 (express + wrap)", p.DeliveryFee)
	}
	if !p.Total.Equal(decimal.NewFromInt(1150)) {
		t.Fatalf("total = %s, want 1150", p.Total)
	}

	p = ComputePricing(items, Draft{PaymentMethod: PaymentCard, DeliveryType: DeliveryExpress})
	if !p.DeliveryFee.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("express-only fee = %s, want 100", p.DeliveryFee)
	}

	p = ComputePricing(items, Draft{PaymentMethod: PaymentCard, DeliveryType: DeliveryStandard, GiftWrap: true})
	if !p.DeliveryFee.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("wrap-only fee = %s, want 50", p.DeliveryFee)
	}
}

func TestPaymentStatusFor(t *testing.T) {
	if got := PaymentStatusFor(PaymentCOD); got != PaymentStatusPending {
		t.Fatalf("cod status = %q, want pending", got)
	}
	for _, m := range []string{PaymentBkash, PaymentNagad, PaymentCard, PaymentGiftCard} {
		if got := PaymentStatusFor(m); got != PaymentStatusPaid {
			t.Fatalf("%s status = %q, want paid", m, got)
		}
	}
}

func TestNewOrderNumber_Format(t *testing.T) {
	n := NewOrderNumber()
	if !strings.HasPrefix(n, "LSM") {
		t.Fatalf("order number %q missing LSM prefix", n)
	}
	if len(n) != len("LSM")+8+4 {
		t.Fatalf("order number %q has unexpected length %d", n, len(n))
	}
}
