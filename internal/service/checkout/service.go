// Package checkout finalizes the cart: it prices the same quote the cart
// preview shows, delegates payment to the preference API and records the
// order. The cart is cleared only on a confirmed payment, never on failure.
package checkout

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"

	"moneydream/internal/domain"
	"moneydream/internal/payment"
	"moneydream/internal/pricing"
	orderrepo "moneydream/internal/repository/order"
)

// ErrEmptyCart rejects checkout attempts with nothing to pay for.
var ErrEmptyCart = errors.New("cart is empty")

type cartEngine interface {
	Snapshot() domain.Cart
	Clear() domain.Cart
}

type rulesSource interface {
	Rules() pricing.Rules
}

type preferenceCreator interface {
	CreatePreference(ctx context.Context, items []payment.Item) (*payment.Preference, error)
}

type Service struct {
	cart     cartEngine
	rules    rulesSource
	payments preferenceCreator
	orders   orderrepo.Repository
	logger   *log.Logger
}

func New(cart cartEngine, rules rulesSource, payments preferenceCreator, orders orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{cart: cart, rules: rules, payments: payments, orders: orders, logger: logger}
}

// Quote prices the current cart with the live rules, matching what the cart
// preview displayed.
func (s *Service) Quote() pricing.Quote {
	return s.rules.Rules().Quote(s.cart.Snapshot().TotalCents)
}

// CreatePreference registers the cart lines with the payment API. Degraded
// mode (nil init_point) passes through untouched; failures leave the cart
// exactly as it was.
func (s *Service) CreatePreference(ctx context.Context) (*payment.Preference, error) {
	cart := s.cart.Snapshot()
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]payment.Item, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, payment.Item{
			ID:        line.ID,
			Title:     line.Name,
			Quantity:  line.Quantity,
			UnitPrice: payment.Cents(line.PriceCents),
		})
	}
	return s.payments.CreatePreference(ctx, items)
}

// Confirm runs on the success-redirect path: it freezes the cart and quote
// into an order, persists it and clears the cart. This is the only path that
// clears.
func (s *Service) Confirm(ctx context.Context, userID string) (*domain.Order, error) {
	cart := s.cart.Snapshot()
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	quote := s.rules.Rules().Quote(cart.TotalCents)

	order, err := s.orders.Create(ctx, domain.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         cart.Items,
		SubtotalCents: quote.SubtotalCents,
		ShippingCents: quote.ShippingCents,
		TaxCents:      quote.TaxCents,
		TotalCents:    quote.TotalCents,
		Status:        domain.OrderPending,
	})
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.logger.Printf("checkout: order %s confirmed, total %d cents", order.ID, order.TotalCents)
	return order, nil
}
