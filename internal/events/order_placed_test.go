package events

import (
	"testing"
	"time"

	"github.com/shopfront/storefront/internal/cart"
	"github.com/shopfront/storefront/internal/catalog"
	"github.com/shopfront/storefront/internal/order"
)

func TestNewOrderPlaced(t *testing.T) {
	snap := order.Snapshot{
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

	ev := NewOrderPlaced(snap)

	if ev.EventType != EventTypeOrderPlaced {
		t.Fatalf("unexpected event type %q", ev.EventType)
	}
	if ev.InvoiceNumber != "ABC123DEF" || ev.Total != 27.50 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if len(ev.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(ev.Items))
	}
	if ev.Items[0] != (OrderLine{ProductID: 1, Title: "Shirt", Quantity: 2, Price: 10.00}) {
		t.Fatalf("unexpected first line: %+v", ev.Items[0])
	}
	if !ev.Timestamp.Equal(snap.Date) {
		t.Fatalf("timestamp must carry the order date, got %v", ev.Timestamp)
	}
}
