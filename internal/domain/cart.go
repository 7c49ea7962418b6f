package domain

// LineItem is one product variant inside a cart. ID and Size together form
// the merge key; Name, Color and Image are display-only.
type LineItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	Image      string `json:"image,omitempty"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

// SameVariant reports whether two add-to-cart calls refer to the same row.
func (l LineItem) SameVariant(other LineItem) bool {
	return l.ID == other.ID && l.Size == other.Size
}

// Cart holds the line items of the current shopping session in insertion
// order. TotalCents is derived from Items and never mutated on its own.
type Cart struct {
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"totalCents"`
}

// Recompute replaces TotalCents with the full sum over all lines.
func (c *Cart) Recompute() {
	var total int64
	for _, item := range c.Items {
		total += item.PriceCents * int64(item.Quantity)
	}
	c.TotalCents = total
}

// Clone returns a deep copy so callers get snapshots, not the backing slice.
func (c Cart) Clone() Cart {
	out := Cart{TotalCents: c.TotalCents, Items: make([]LineItem, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}
