// Package billing turns per-frame classification results into
// confirmed cart events. It owns the debounce state machine that
// separates deliberate item presentations from frame noise, the
// in-memory cart, and the frame pacing loop that ties them together.
package billing

import "context"

// Line is one item's running tally during a session. The JSON shape is
// the wire format accepted by the CheckoutUI /product endpoint.
type Line struct {
	ID      int     `json:"id"`      // stable item id (label position in model order, 1-based)
	Name    string  `json:"name"`    // model label
	Price   float64 `json:"price"`   // unit price from the price table
	Unit    string  `json:"unit"`    // quantity unit, e.g. "pcs"
	Taken   int     `json:"taken"`   // quantity confirmed so far, never decremented
	Payable float64 `json:"payable"` // always Taken * Price
}

// Publisher delivers one confirmed cart line to the billing endpoint.
// Delivery is at-most-once: the session treats a returned error as
// final, logs it and moves on without touching cart state.
type Publisher interface {
	Publish(ctx context.Context, line Line) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, line Line) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, line Line) error {
	return f(ctx, line)
}
