package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"moneydream/internal/domain"
	"moneydream/internal/payment"
	checkoutsvc "moneydream/internal/service/checkout"
)

type stubCheckoutSvc struct {
	pref    *payment.Preference
	prefErr error
	order   *domain.Order
	err     error
}

func (s *stubCheckoutSvc) CreatePreference(_ context.Context) (*payment.Preference, error) {
	return s.pref, s.prefErr
}

func (s *stubCheckoutSvc) Confirm(_ context.Context, userID string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.order != nil {
		return s.order, nil
	}
	return &domain.Order{ID: "o1", UserID: userID, Status: domain.OrderPending}, nil
}

func decodeCart(t *testing.T, body []byte) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	return resp
}

func TestGetCart_EmptyHasItemsArray(t *testing.T) {
	router := newRouter(t, testDeps(t))
	rec := doJSON(t, router, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeCart(t, rec.Body.Bytes())
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Fatalf("expected empty items array, got %+v", resp.Items)
	}
	if resp.Quote.SubtotalCents != 0 {
		t.Fatalf("expected zero subtotal, got %+v", resp.Quote)
	}
}

func TestAddCartItem_MergesAndQuotes(t *testing.T) {
	router := newRouter(t, testDeps(t))

	body := `{"id":"p1","name":"Shirt","size":"M","priceCents":2000,"quantity":1}`
	if rec := doJSON(t, router, http.MethodPost, "/api/cart/items", body); rec.Code != http.StatusOK {
		t.Fatalf("first add: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	rec := doJSON(t, router, http.MethodPost, "/api/cart/items", body)
	resp := decodeCart(t, rec.Body.Bytes())

	if len(resp.Items) != 1 || resp.Items[0].Quantity != 2 {
		t.Fatalf("expected merged line with quantity 2, got %+v", resp.Items)
	}
	if resp.TotalCents != 4000 {
		t.Fatalf("expected subtotal 4000, got %d", resp.TotalCents)
	}
	// Under the free shipping threshold: 4000 + 1000 shipping + 16% tax.
	if resp.Quote.ShippingCents != 1000 || resp.Quote.TaxCents != 640 || resp.Quote.TotalCents != 5640 {
		t.Fatalf("unexpected quote %+v", resp.Quote)
	}
}

func TestAddCartItem_Validation(t *testing.T) {
	router := newRouter(t, testDeps(t))
	if rec := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"name":"no id"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without id, got %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/cart/items", `{"id":"p1","priceCents":-5}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", rec.Code)
	}
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	router := newRouter(t, testDeps(t))
	doJSON(t, router, http.MethodPost, "/api/cart/items", `{"id":"p1","priceCents":2000,"quantity":1}`)

	rec := doJSON(t, router, http.MethodPut, "/api/cart/items/p1", `{"quantity":3}`)
	resp := decodeCart(t, rec.Body.Bytes())
	if resp.Items[0].Quantity != 3 || resp.TotalCents != 6000 {
		t.Fatalf("expected quantity 3 total 6000, got %+v", resp)
	}

	// Sub-minimum update leaves the line untouched.
	rec = doJSON(t, router, http.MethodPut, "/api/cart/items/p1", `{"quantity":0}`)
	resp = decodeCart(t, rec.Body.Bytes())
	if resp.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity unchanged, got %+v", resp.Items)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/cart/items/p1", "")
	resp = decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 || resp.TotalCents != 0 {
		t.Fatalf("expected empty cart after remove, got %+v", resp)
	}
}

func TestClearCart(t *testing.T) {
	router := newRouter(t, testDeps(t))
	doJSON(t, router, http.MethodPost, "/api/cart/items", `{"id":"p1","priceCents":2000,"quantity":2}`)

	rec := doJSON(t, router, http.MethodDelete, "/api/cart", "")
	resp := decodeCart(t, rec.Body.Bytes())
	if len(resp.Items) != 0 || resp.TotalCents != 0 {
		t.Fatalf("expected cleared cart, got %+v", resp)
	}
}

func TestCreatePreference_Degraded(t *testing.T) {
	deps := testDeps(t)
	msg := "payment gateway not configured"
	deps.CheckoutSvc = &stubCheckoutSvc{pref: &payment.Preference{ID: "mock-preference-id", InitPoint: nil, Message: msg}}
	router := newRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/checkout/preference", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var pref payment.Preference
	if err := json.Unmarshal(rec.Body.Bytes(), &pref); err != nil {
		t.Fatalf("decode preference: %v", err)
	}
	if pref.ID != "mock-preference-id" || pref.InitPoint != nil || pref.Message != msg {
		t.Fatalf("unexpected preference %+v", pref)
	}
}

func TestCreatePreference_Errors(t *testing.T) {
	deps := testDeps(t)
	deps.CheckoutSvc = &stubCheckoutSvc{prefErr: checkoutsvc.ErrEmptyCart}
	router := newRouter(t, deps)
	if rec := doJSON(t, router, http.MethodPost, "/api/checkout/preference", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", rec.Code)
	}

	deps.CheckoutSvc = &stubCheckoutSvc{prefErr: payment.ErrAPI}
	router = newRouter(t, deps)
	if rec := doJSON(t, router, http.MethodPost, "/api/checkout/preference", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for payment API error, got %d", rec.Code)
	}
}

func TestConfirmCheckout(t *testing.T) {
	deps := testDeps(t)
	router := newRouter(t, deps)

	// Unauthenticated requests never reach the service.
	if rec := doJSON(t, router, http.MethodPost, "/api/checkout/confirm", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	deps.Sessions.Login(domain.Identity{ID: "2", Role: domain.RoleClient})
	rec := doJSON(t, router, http.MethodPost, "/api/checkout/confirm", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.UserID != "2" || order.Status != domain.OrderPending {
		t.Fatalf("unexpected order %+v", order)
	}
}
