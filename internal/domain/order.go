package domain

import "time"

// OrderStatus walks pending -> processing -> shipped -> delivered; the admin
// back office sets it freely within the set.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Order is a finalized checkout. Items is a snapshot of the cart lines at
// confirmation time; the totals are frozen from the quote the buyer saw.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Items         []LineItem  `json:"items"`
	SubtotalCents int64       `json:"subtotalCents"`
	ShippingCents int64       `json:"shippingCents"`
	TaxCents      int64       `json:"taxCents"`
	TotalCents    int64       `json:"totalCents"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}
