package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopfront/storefront/internal/cart"
	"github.com/shopfront/storefront/internal/notify"
	"github.com/shopfront/storefront/internal/order"
)

// State names the steps of a checkout attempt.
type State string

const (
	StateIdle              State = "idle"
	StateCollectingPayment State = "collecting_payment"
	StateBuildingOrder     State = "building_order"
	StateNotifying         State = "notifying"
	StateCleared           State = "cleared"
	StateAborted           State = "aborted"
	StateFailed            State = "failed"
)

// ErrCheckoutAborted reports that the shopper cancelled at the payment step.
// The cart is untouched and no snapshot is written.
var ErrCheckoutAborted = errors.New("checkout aborted")

// ErrEmptyCart reports a checkout attempt against an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Flow drives one checkout attempt:
//
//	Idle -> CollectingPayment -> BuildingOrder -> Notifying -> Cleared
//
// with Aborted reachable from CollectingPayment and Failed from
// BuildingOrder. A notifier failure never fails the checkout; it is logged
// and the flow proceeds. Any failure before the cart is cleared leaves it
// untouched.
type Flow struct {
	cart     *cart.Store
	archive  *order.Archive
	notifier notify.Notifier
	operator notify.Settings
	logger   *log.Logger
	now      func() time.Time

	state State
}

func NewFlow(c *cart.Store, a *order.Archive, n notify.Notifier, operator notify.Settings, logger *log.Logger) *Flow {
	return &Flow{
		cart:     c,
		archive:  a,
		notifier: n,
		operator: operator,
		logger:   logger,
		now:      time.Now,
		state:    StateIdle,
	}
}

// State returns the flow's current (or terminal) state.
func (f *Flow) State() State {
	return f.state
}

// Run executes the checkout and returns the order snapshot on success.
func (f *Flow) Run(ctx context.Context, collector PaymentCollector) (order.Snapshot, error) {
	f.state = StateCollectingPayment
	res, err := collector.Collect(ctx)
	if err != nil {
		f.state = StateFailed
		return order.Snapshot{}, fmt.Errorf("collect payment details: %w", err)
	}
	if !res.Confirmed {
		f.state = StateAborted
		return order.Snapshot{}, ErrCheckoutAborted
	}

	f.state = StateBuildingOrder
	items := f.cart.Items()
	if len(items) == 0 {
		f.state = StateFailed
		return order.Snapshot{}, ErrEmptyCart
	}

	snap := order.Snapshot{
		InvoiceNumber: order.NewInvoiceNumber(),
		Items:         items,
		Subtotal:      f.cart.Subtotal(),
		Tax:           f.cart.Tax(),
		Total:         f.cart.Total(),
		Date:          f.now(),
	}
	if err := f.archive.Save(ctx, snap); err != nil {
		f.state = StateFailed
		return order.Snapshot{}, err
	}

	f.state = StateNotifying
	if err := f.notifier.Notify(ctx, snap.InvoiceNumber, Lines(snap.Items), snap.Total, f.operator); err != nil {
		// Best effort: the order stands even when the owner alert fails.
		f.logger.Printf("order notification failed: %v", err)
	}

	if err := f.cart.Clear(ctx); err != nil {
		f.logger.Printf("clear cart after checkout: %v", err)
	}
	f.state = StateCleared
	return snap, nil
}

// Lines converts cart items into notification lines.
func Lines(items []cart.Item) []notify.Line {
	lines := make([]notify.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, notify.Line{Title: it.Title, Quantity: it.Quantity, Price: it.Price})
	}
	return lines
}
