package events

import (
	"time"

	"github.com/shopfront/storefront/internal/order"
)

const EventTypeOrderPlaced = "OrderPlaced"

type OrderLine struct {
	ProductID int     `json:"productId"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderPlaced struct {
	EventType     string      `json:"eventType"`
	InvoiceNumber string      `json:"invoiceNumber"`
	Items         []OrderLine `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Timestamp     time.Time   `json:"timestamp"`
}

// NewOrderPlaced maps an order snapshot onto the wire event.
func NewOrderPlaced(s order.Snapshot) OrderPlaced {
	lines := make([]OrderLine, 0, len(s.Items))
	for _, it := range s.Items {
		lines = append(lines, OrderLine{
			ProductID: it.ID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return OrderPlaced{
		EventType:     EventTypeOrderPlaced,
		InvoiceNumber: s.InvoiceNumber,
		Items:         lines,
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Total:         s.Total,
		Timestamp:     s.Date,
	}
}
