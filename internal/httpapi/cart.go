package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shopfront/storefront/internal/cart"
)

type cartView struct {
	Items    []cart.Item `json:"items"`
	Count    int         `json:"count"`
	Subtotal float64     `json:"subtotal"`
	Tax      float64     `json:"tax"`
	Total    float64     `json:"total"`
}

func (h *Handler) cartView() cartView {
	return cartView{
		Items:    h.cart.Items(),
		Count:    h.cart.ItemCount(),
		Subtotal: h.cart.Subtotal(),
		Tax:      h.cart.Tax(),
		Total:    h.cart.Total(),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView())
}

// CartCount serves the badge count kept fresh by the cart observer.
func (h *Handler) CartCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int64{"count": h.badge.Load()})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	// The cart stores full product records, so resolve the product first.
	p, err := h.catalog.Get(r.Context(), body.ProductID)
	if err != nil {
		h.logger.Printf("fetch product %d: %v", body.ProductID, err)
		writeError(w, http.StatusBadGateway, "failed to load product")
		return
	}

	if err := h.cart.Add(r.Context(), p, body.Quantity); err != nil {
		h.logger.Printf("add to cart: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), productID, body.Delta); err != nil {
		h.logger.Printf("update quantity: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.cart.Remove(r.Context(), productID); err != nil {
		h.logger.Printf("remove item: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		h.logger.Printf("clear cart: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}
	writeJSON(w, http.StatusOK, h.cartView())
}
