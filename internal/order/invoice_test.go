package order

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopfront/storefront/internal/cart"
	"github.com/shopfront/storefront/internal/catalog"
	"github.com/shopfront/storefront/internal/storage"
)

func TestNewInvoiceNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := NewInvoiceNumber()
		if len(n) != 9 {
			t.Fatalf("expected 9 characters, got %q", n)
		}
		if n != strings.ToUpper(n) {
			t.Fatalf("expected uppercase, got %q", n)
		}
		if seen[n] {
			t.Fatalf("duplicate invoice number %q", n)
		}
		seen[n] = true
	}
}

func TestRenderInvoice(t *testing.T) {
	snap := Snapshot{
		InvoiceNumber: "ABC123DEF",
		Items: []cart.Item{
			{Product: catalog.Product{ID: 1, Title: "Shirt", Price: 10.00}, Quantity: 2},
			{Product: catalog.Product{ID: 2, Title: "Ring", Price: 5.00}, Quantity: 1},
		},
		Subtotal: 25.00,
		Tax:      2.50,
		Total:    27.50,
		Date:     time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	out := RenderInvoice(snap)

	for _, want := range []string{
		"INVOICE ABC123DEF",
		"Date: 2026-06-15",
		"Shirt",
		"x2",
		"20.00",
		"Subtotal",
		"27.50",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("invoice missing %q:\n%s", want, out)
		}
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewArchive(storage.NewMemory())

	_, ok, err := a.Last(ctx)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if ok {
		t.Fatal("expected no snapshot before any save")
	}

	want := Snapshot{
		InvoiceNumber: "ABC123DEF",
		Items:         []cart.Item{{Product: catalog.Product{ID: 1, Title: "Shirt", Price: 10}, Quantity: 2}},
		Subtotal:      20,
		Tax:           2,
		Total:         22,
		Date:          time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := a.Last(ctx)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if got.InvoiceNumber != want.InvoiceNumber || got.Total != want.Total || len(got.Items) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	// a second checkout replaces the first
	want.InvoiceNumber = "XYZ987QRS"
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _, _ = a.Last(ctx)
	if got.InvoiceNumber != "XYZ987QRS" {
		t.Fatalf("expected latest snapshot, got %+v", got)
	}
}
