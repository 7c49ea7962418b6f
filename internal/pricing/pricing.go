// Package pricing derives shipping, tax and final totals from a cart
// subtotal. The same Rules value feeds the cart preview and checkout
// finalization, so the two views cannot disagree.
package pricing

import "moneydream/internal/domain"

// Rules are the store's pricing constants, in integer cents and basis points.
type Rules struct {
	FreeShippingThresholdCents int64
	FlatShippingCents          int64
	TaxRateBasisPoints         int64
}

// FromSettings lifts the pricing fields out of the store settings row.
func FromSettings(s domain.Settings) Rules {
	return Rules{
		FreeShippingThresholdCents: s.FreeShippingThresholdCents,
		FlatShippingCents:          s.FlatShippingCents,
		TaxRateBasisPoints:         s.TaxRateBasisPoints,
	}
}

// Quote is the priced breakdown shown at checkout.
type Quote struct {
	SubtotalCents int64 `json:"subtotalCents"`
	ShippingCents int64 `json:"shippingCents"`
	TaxCents      int64 `json:"taxCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Quote prices a subtotal. Shipping is free only strictly above the
// threshold; a subtotal equal to the threshold still pays the flat rate.
// Tax rounds half up.
func (r Rules) Quote(subtotalCents int64) Quote {
	shipping := r.FlatShippingCents
	if subtotalCents > r.FreeShippingThresholdCents {
		shipping = 0
	}
	tax := (subtotalCents*r.TaxRateBasisPoints + 5000) / 10000
	return Quote{
		SubtotalCents: subtotalCents,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotalCents + shipping + tax,
	}
}
