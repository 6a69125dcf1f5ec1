package order

import "github.com/shopspring/decimal"

// Static gift-card discount rule: a percentage of the subtotal up to a
// fixed cap. No gift-card ledger is consulted.
var (
	giftCardRate = decimal.NewFromFloat(0.10)
	giftCardCap  = decimal.NewFromInt(500)
	expressFee   = decimal.NewFromInt(100)
	giftWrapFee  = decimal.NewFromInt(50)
)

// Pricing is the frozen money breakdown of an order.
type Pricing struct {
	Subtotal     decimal.Decimal
	GiftDiscount decimal.Decimal
	DeliveryFee  decimal.Decimal
	Total        decimal.Decimal
}

// ComputePricing prices the valid order lines and applies the optional
// adjustments: gift-card discount first, then the delivery and gift-wrap
// surcharges. The two surcharges stack. The discount is clamped to the
// subtotal so the total can never go negative.
func ComputePricing(items []Item, d Draft) Pricing {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}

	discount := decimal.Zero
	if d.PaymentMethod == PaymentGiftCard && d.GiftCardCode != "" {
		discount = decimal.Min(giftCardCap, subtotal.Mul(giftCardRate))
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	fee := decimal.Zero
	if d.DeliveryType == DeliveryExpress {
		fee = fee.Add(expressFee)
	}
	if d.GiftWrap {
		fee = fee.Add(giftWrapFee)
	}

	return Pricing{
		Subtotal:     subtotal,
		GiftDiscount: discount,
		DeliveryFee:  fee,
		Total:        subtotal.Sub(discount).Add(fee),
	}
}

// PaymentStatusFor simulates payment capture: everything except cash on
// delivery is marked paid immediately.
func PaymentStatusFor(method string) string {
	if method == PaymentCOD {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}
