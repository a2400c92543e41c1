package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopfront/storefront/internal/checkout"
	"github.com/shopfront/storefront/internal/notify"
	"github.com/shopfront/storefront/internal/order"
)

func (h *Handler) LastOrder(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.lastOrder(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// LastInvoice renders the confirmation view's printable invoice.
func (h *Handler) LastInvoice(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.lastOrder(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, order.RenderInvoice(snap))
}

// ResendNotification re-sends the last order's summary. Settings come from
// the request body if supplied (and are cached for the session), else from
// the session cache, else from the configured operator defaults. Unlike the
// checkout-time notification, a failure here is surfaced to the shopper.
func (h *Handler) ResendNotification(w http.ResponseWriter, r *http.Request) {
	var supplied notify.Settings
	if err := json.NewDecoder(r.Body).Decode(&supplied); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	snap, ok := h.lastOrder(w, r)
	if !ok {
		return
	}

	settings := h.operator
	cached, haveCached := h.settings.Load(r.Context())
	switch {
	case supplied.Complete():
		settings = supplied
	case haveCached:
		settings = cached
	}
	if !settings.Complete() {
		writeError(w, http.StatusBadRequest, "telegram settings required")
		return
	}

	if err := h.notifier.Notify(r.Context(), snap.InvoiceNumber, checkout.Lines(snap.Items), snap.Total, settings); err != nil {
		h.logger.Printf("resend notification: %v", err)
		writeError(w, http.StatusBadGateway, "failed to send invoice via Telegram")
		return
	}

	if supplied.Complete() {
		if err := h.settings.Save(r.Context(), supplied); err != nil {
			h.logger.Printf("cache telegram settings: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handler) lastOrder(w http.ResponseWriter, r *http.Request) (order.Snapshot, bool) {
	snap, ok, err := h.archive.Last(r.Context())
	if err != nil {
		h.logger.Printf("load last order: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return order.Snapshot{}, false
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no completed order")
		return order.Snapshot{}, false
	}
	return snap, true
}
