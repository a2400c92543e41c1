package cart

import "github.com/shopfront/storefront/internal/catalog"

// Item is a catalog product plus the quantity the shopper selected.
// Identity is the product id: a cart never holds two items for the same
// product, and a quantity below 1 is never stored.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity for this item.
func (i Item) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
