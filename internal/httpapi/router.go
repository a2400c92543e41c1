package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/categories", h.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Get("/count", h.CartCount)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{productId}", h.UpdateQuantity)
			r.Delete("/items/{productId}", h.RemoveItem)
		})

		r.Post("/checkout", h.Checkout)

		r.Route("/orders/last", func(r chi.Router) {
			r.Get("/", h.LastOrder)
			r.Get("/invoice", h.LastInvoice)
			r.Post("/resend", h.ResendNotification)
		})
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}
