package httpapi

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/shopfront/storefront/internal/cart"
	"github.com/shopfront/storefront/internal/catalog"
	"github.com/shopfront/storefront/internal/notify"
	"github.com/shopfront/storefront/internal/order"
)

// CatalogClient is the slice of the catalog client the handlers need.
type CatalogClient interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, id int) (catalog.Product, error)
}

// OrderEventsPublisher fans completed checkouts out to back-office consumers.
type OrderEventsPublisher interface {
	PublishOrderPlaced(ctx context.Context, snap order.Snapshot) error
}

type Deps struct {
	Catalog  CatalogClient
	Cart     *cart.Store
	Archive  *order.Archive
	Notifier notify.Notifier
	Settings *notify.SettingsCache
	Operator notify.Settings
	// Publisher may be nil when no broker is configured.
	Publisher OrderEventsPublisher
	Logger    *log.Logger
}

type Handler struct {
	catalog   CatalogClient
	cart      *cart.Store
	archive   *order.Archive
	notifier  notify.Notifier
	settings  *notify.SettingsCache
	operator  notify.Settings
	publisher OrderEventsPublisher
	logger    *log.Logger
	now       func() time.Time

	// badge mirrors the cart item count via the store's observer callback.
	badge atomic.Int64
}

func NewHandler(d Deps) *Handler {
	h := &Handler{
		catalog:   d.Catalog,
		cart:      d.Cart,
		archive:   d.Archive,
		notifier:  d.Notifier,
		settings:  d.Settings,
		operator:  d.Operator,
		publisher: d.Publisher,
		logger:    d.Logger,
		now:       time.Now,
	}
	h.badge.Store(int64(d.Cart.ItemCount()))
	d.Cart.Subscribe(func(itemCount int) {
		h.badge.Store(int64(itemCount))
	})
	return h
}
