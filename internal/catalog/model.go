package catalog

// Product is a single catalog record. The catalog service owns these; the
// storefront only reads them.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// Categories returns the distinct categories of the given products in
// first-seen order, for the category filter.
func Categories(products []Product) []string {
	seen := make(map[string]bool, len(products))
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
