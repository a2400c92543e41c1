package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopfront/storefront/internal/checkout"
)

// Checkout gates the payment details the way the payment form does, then runs
// the checkout flow. Invalid fields block submission with a per-field error
// map; a notifier failure inside the flow does not fail the request.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var details checkout.Details
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if errs := details.ValidateAt(h.now()); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	if h.cart.ItemCount() == 0 {
		writeError(w, http.StatusConflict, "cart is empty")
		return
	}

	flow := checkout.NewFlow(h.cart, h.archive, h.notifier, h.operator, h.logger)
	snap, err := flow.Run(r.Context(), checkout.ConfirmedPayment(details))
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeError(w, http.StatusConflict, "cart is empty")
			return
		}
		h.logger.Printf("checkout failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to process checkout")
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishOrderPlaced(r.Context(), snap); err != nil {
			// Same policy as the operator alert: fan-out is best effort.
			h.logger.Printf("publish order placed: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, snap)
}
