package pricing

import "testing"

var storeRules = Rules{
	FreeShippingThresholdCents: 5000,
	FlatShippingCents:          1000,
	TaxRateBasisPoints:         1600,
}

func TestQuoteBelowThreshold(t *testing.T) {
	q := storeRules.Quote(4000)
	if q.ShippingCents != 1000 {
		t.Fatalf("expected flat shipping 1000, got %d", q.ShippingCents)
	}
	if q.TaxCents != 640 {
		t.Fatalf("expected tax 640, got %d", q.TaxCents)
	}
	if q.TotalCents != 5640 {
		t.Fatalf("expected final total 5640, got %d", q.TotalCents)
	}
}

func TestQuoteAboveThreshold(t *testing.T) {
	q := storeRules.Quote(6000)
	if q.ShippingCents != 0 {
		t.Fatalf("expected free shipping, got %d", q.ShippingCents)
	}
	if q.TaxCents != 960 {
		t.Fatalf("expected tax 960, got %d", q.TaxCents)
	}
	if q.TotalCents != 6960 {
		t.Fatalf("expected final total 6960, got %d", q.TotalCents)
	}
}

func TestQuoteAtThresholdStillPaysShipping(t *testing.T) {
	q := storeRules.Quote(5000)
	if q.ShippingCents != 1000 {
		t.Fatalf("threshold is exclusive, expected shipping 1000, got %d", q.ShippingCents)
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	q := storeRules.Quote(0)
	if q.ShippingCents != 1000 || q.TaxCents != 0 || q.TotalCents != 1000 {
		t.Fatalf("unexpected quote for empty subtotal: %+v", q)
	}
}

func TestQuoteTaxRoundsHalfUp(t *testing.T) {
	// 3 cents at 16% is 0.48 cents, rounds to 0; 4 cents is 0.64, rounds to 1.
	if got := storeRules.Quote(3).TaxCents; got != 0 {
		t.Fatalf("expected tax 0 for subtotal 3, got %d", got)
	}
	if got := storeRules.Quote(4).TaxCents; got != 1 {
		t.Fatalf("expected tax 1 for subtotal 4, got %d", got)
	}
}
