package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shopfront/storefront/internal/catalog"
)

// ListProducts returns the catalog, optionally filtered by ?category=.
// A catalog failure is logged and presented as an empty list, never as an
// error page.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Printf("fetch products: %v", err)
		writeJSON(w, http.StatusOK, []catalog.Product{})
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := make([]catalog.Product, 0, len(products))
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Printf("fetch products: %v", err)
		writeJSON(w, http.StatusOK, []string{})
		return
	}

	categories := catalog.Categories(products)
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.logger.Printf("fetch product %d: %v", id, err)
		writeError(w, http.StatusBadGateway, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}
