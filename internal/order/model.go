package order

import (
	"time"

	"github.com/shopfront/storefront/internal/cart"
)

// Snapshot is the immutable record of a completed checkout: the cart contents
// and totals as they were when the order was placed.
type Snapshot struct {
	InvoiceNumber string      `json:"invoiceNumber"`
	Items         []cart.Item `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Date          time.Time   `json:"date"`
}
