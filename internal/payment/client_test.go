package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCentsMarshal(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1999, "19.99"},
		{100000, "1000.00"},
	}
	for _, c := range cases {
		got, err := json.Marshal(c.in)
		if err != nil {
			t.Fatalf("marshal %d: %v", c.in, err)
		}
		if string(got) != c.want {
			t.Fatalf("marshal %d: have %s want %s", c.in, got, c.want)
		}
	}
}

func TestCreatePreferenceUnconfigured(t *testing.T) {
	client := NewClient("http://unused", "", "http://localhost:3000", nil)

	pref, err := client.CreatePreference(context.Background(), []Item{{ID: "A", Title: "Shirt", Quantity: 1, UnitPrice: 1000}})
	if err != nil {
		t.Fatalf("degraded mode must not error: %v", err)
	}
	if pref.ID != MockPreferenceID {
		t.Fatalf("expected mock preference id, got %s", pref.ID)
	}
	if pref.InitPoint != nil {
		t.Fatalf("expected nil init_point, got %v", *pref.InitPoint)
	}
	if pref.Message == "" {
		t.Fatalf("expected a user-facing message")
	}
}

func TestCreatePreferenceSuccess(t *testing.T) {
	var gotBody []byte
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pref-123","init_point":"https://pay.example/pref-123"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-abc", "http://localhost:3000", nil)
	pref, err := client.CreatePreference(context.Background(), []Item{
		{ID: "A", Title: "Shirt", Quantity: 2, UnitPrice: 1999},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pref.ID != "pref-123" || pref.InitPoint == nil || *pref.InitPoint != "https://pay.example/pref-123" {
		t.Fatalf("unexpected preference: %+v", pref)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}

	body := string(gotBody)
	if !strings.Contains(body, `"unit_price":19.99`) {
		t.Fatalf("expected decimal unit price on the wire, got %s", body)
	}
	if !strings.Contains(body, `"success":"http://localhost:3000/checkout/success"`) {
		t.Fatalf("expected back urls, got %s", body)
	}
}

func TestCreatePreferenceNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "stale", "http://localhost:3000", nil)
	_, err := client.CreatePreference(context.Background(), nil)
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("expected ErrAPI, got %v", err)
	}
}
