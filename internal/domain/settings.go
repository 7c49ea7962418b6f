package domain

// Settings is the single-row store configuration edited from the admin back
// office. Pricing values feed both the cart preview and checkout so the two
// can never disagree.
type Settings struct {
	StoreName                  string `json:"storeName"`
	Currency                   string `json:"currency"`
	FreeShippingThresholdCents int64  `json:"freeShippingThresholdCents"`
	FlatShippingCents          int64  `json:"flatShippingCents"`
	TaxRateBasisPoints         int64  `json:"taxRateBasisPoints"`
}
