package cart

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"moneydream/internal/domain"
	"moneydream/internal/repository/cartstore"
)

func shirt(size string, qty int) domain.LineItem {
	return domain.LineItem{ID: "A", Name: "Shirt", Size: size, PriceCents: 1000, Quantity: qty}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	svc := New(nil, nil)

	svc.AddItem(shirt("M", 2))
	cart := svc.AddItem(shirt("M", 3))

	if len(cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.TotalCents != 5000 {
		t.Fatalf("expected total 5000, got %d", cart.TotalCents)
	}
}

func TestAddItemMergeIdempotence(t *testing.T) {
	svc := New(nil, nil)
	svc.AddItem(shirt("M", 2))
	cart := svc.AddItem(shirt("M", 2))
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 4 {
		t.Fatalf("expected single line with quantity 4, got %+v", cart.Items)
	}
}

func TestAddItemDifferentSizeAppends(t *testing.T) {
	svc := New(nil, nil)

	svc.AddItem(shirt("S", 1))
	cart := svc.AddItem(shirt("M", 1))

	if len(cart.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(cart.Items))
	}
	if cart.Items[0].Size != "S" || cart.Items[1].Size != "M" {
		t.Fatalf("expected first-seen ordering, got %+v", cart.Items)
	}
}

func TestAddItemClampsQuantity(t *testing.T) {
	svc := New(nil, nil)
	cart := svc.AddItem(shirt("M", 0))
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", cart.Items[0].Quantity)
	}
}

func TestTotalTracksEveryMutation(t *testing.T) {
	svc := New(nil, nil)

	check := func(cart domain.Cart) {
		t.Helper()
		var want int64
		for _, item := range cart.Items {
			want += item.PriceCents * int64(item.Quantity)
		}
		if cart.TotalCents != want {
			t.Fatalf("total drifted: have %d want %d", cart.TotalCents, want)
		}
	}

	check(svc.AddItem(shirt("S", 2)))
	check(svc.AddItem(domain.LineItem{ID: "B", Name: "Mug", PriceCents: 1299, Quantity: 3}))
	check(svc.UpdateQuantity("B", 1))
	check(svc.RemoveItem("A"))
	check(svc.Clear())
}

func TestAddThenRemoveRoundTripsExactly(t *testing.T) {
	svc := New(nil, nil)
	svc.AddItem(domain.LineItem{ID: "B", Name: "Mug", PriceCents: 1299, Quantity: 7})
	before := svc.Snapshot().TotalCents

	svc.AddItem(shirt("M", 3))
	cart := svc.RemoveItem("A")

	if cart.TotalCents != before {
		t.Fatalf("expected exact round trip, have %d want %d", cart.TotalCents, before)
	}
}

func TestRemoveItemRemovesAllVariants(t *testing.T) {
	svc := New(nil, nil)
	svc.AddItem(shirt("S", 1))
	svc.AddItem(shirt("M", 1))

	cart := svc.RemoveItem("A")

	if len(cart.Items) != 0 {
		t.Fatalf("expected both size variants removed, got %+v", cart.Items)
	}
	if cart.TotalCents != 0 {
		t.Fatalf("expected total 0, got %d", cart.TotalCents)
	}
}

func TestRemoveItemUnknownIDIsNoop(t *testing.T) {
	svc := New(nil, nil)
	svc.AddItem(shirt("M", 1))
	cart := svc.RemoveItem("missing")
	if len(cart.Items) != 1 || cart.TotalCents != 1000 {
		t.Fatalf("expected untouched cart, got %+v", cart)
	}
}

func TestUpdateQuantityBelowOneIsNoop(t *testing.T) {
	svc := New(nil, nil)
	svc.AddItem(shirt("M", 2))

	cart := svc.UpdateQuantity("A", 0)
	if cart.Items[0].Quantity != 2 || cart.TotalCents != 2000 {
		t.Fatalf("expected no-op, got %+v", cart)
	}

	cart = svc.UpdateQuantity("A", -3)
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("expected no-op on negative, got %+v", cart)
	}
}

func TestUpdateQuantityTargetsFirstVariant(t *testing.T) {
	// Update is product-scoped and hits the first size variant only; the
	// second line keeps its own quantity.
	svc := New(nil, nil)
	svc.AddItem(shirt("S", 1))
	svc.AddItem(shirt("M", 4))

	cart := svc.UpdateQuantity("A", 2)

	if cart.Items[0].Quantity != 2 {
		t.Fatalf("expected first variant updated, got %+v", cart.Items)
	}
	if cart.Items[1].Quantity != 4 {
		t.Fatalf("expected second variant untouched, got %+v", cart.Items)
	}
	if cart.TotalCents != 6000 {
		t.Fatalf("expected total 6000, got %d", cart.TotalCents)
	}
}

func TestClearIdempotence(t *testing.T) {
	svc := New(nil, nil)

	cart := svc.Clear()
	if len(cart.Items) != 0 || cart.TotalCents != 0 {
		t.Fatalf("clear on empty cart should be a no-op, got %+v", cart)
	}

	svc.AddItem(shirt("M", 2))
	cart = svc.Clear()
	if len(cart.Items) != 0 || cart.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	svc := New(nil, nil)
	svc.AddItem(shirt("M", 1))

	snap := svc.Snapshot()
	snap.Items[0].Quantity = 99

	if svc.Snapshot().Items[0].Quantity != 1 {
		t.Fatalf("snapshot mutation leaked into the engine")
	}
}

func TestMirrorSaveAndRestore(t *testing.T) {
	store := cartstore.NewMemory()
	svc := New(store, nil)
	svc.AddItem(shirt("M", 2))
	svc.Flush()

	restored := New(store, nil)
	restored.Restore(context.Background())
	cart := restored.Snapshot()
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 || cart.TotalCents != 2000 {
		t.Fatalf("expected restored cart, got %+v", cart)
	}
}

func TestClearClearsMirror(t *testing.T) {
	store := cartstore.NewMemory()
	svc := New(store, nil)
	svc.AddItem(shirt("M", 2))
	svc.Flush()
	svc.Clear()
	svc.Flush()

	saved, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved != nil {
		t.Fatalf("expected cleared mirror, got %+v", saved)
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context) (*domain.Cart, error) { return nil, errors.New("down") }
func (failingStore) Save(context.Context, domain.Cart) error    { return errors.New("down") }
func (failingStore) Clear(context.Context) error                { return errors.New("down") }

func TestMirrorFailureLoggedNotSurfaced(t *testing.T) {
	var buf bytes.Buffer
	svc := New(failingStore{}, log.New(&buf, "", 0))

	cart := svc.AddItem(shirt("M", 1))
	svc.Flush()

	if cart.TotalCents != 1000 {
		t.Fatalf("mirror failure must not affect the cart, got %+v", cart)
	}
	if !strings.Contains(buf.String(), "mirror save failed") {
		t.Fatalf("expected failure logged, got %q", buf.String())
	}
}

func TestRestoreFailureStartsEmpty(t *testing.T) {
	var buf bytes.Buffer
	svc := New(failingStore{}, log.New(&buf, "", 0))
	svc.Restore(context.Background())

	if cart := svc.Snapshot(); len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
	if !strings.Contains(buf.String(), "restore failed") {
		t.Fatalf("expected restore failure logged, got %q", buf.String())
	}
}
