package billing

import (
	"fmt"
	"sort"
)

// PriceTable resolves a label to its unit price. Labels the table does
// not know price at 0.0.
type PriceTable interface {
	Price(label string) float64
}

// Cart accumulates confirmed items for the lifetime of a session.
// Lines are keyed by stable item id, created on first confirmation and
// never deleted. Nothing is persisted; a restart starts an empty cart.
type Cart struct {
	unit   string
	ids    map[string]int
	prices PriceTable
	lines  map[int]*Line
}

// NewCart creates a cart for the fixed label set. Item ids are
// assigned from label position in model order, 1-based, and stay
// stable for the run.
func NewCart(labels []string, prices PriceTable, unit string) *Cart {
	ids := make(map[string]int, len(labels))
	for i, label := range labels {
		ids[label] = i + 1
	}
	return &Cart{
		unit:   unit,
		ids:    ids,
		prices: prices,
		lines:  make(map[int]*Line),
	}
}

// Confirm records one confirmed unit of the label and returns the
// updated line. Each call represents exactly one physical item; there
// is no rollback path. The label must belong to the cart's label set;
// anything else is a bug in the caller, not a runtime condition.
func (c *Cart) Confirm(label string) Line {
	id, ok := c.ids[label]
	if !ok {
		panic(fmt.Sprintf("billing: label %q not in cart label set", label))
	}

	line, ok := c.lines[id]
	if !ok {
		line = &Line{
			ID:    id,
			Name:  label,
			Price: c.prices.Price(label),
			Unit:  c.unit,
		}
		c.lines[id] = line
	}

	line.Taken++
	line.Payable = float64(line.Taken) * line.Price
	return *line
}

// ItemID resolves a label to its stable item id.
func (c *Cart) ItemID(label string) (int, bool) {
	id, ok := c.ids[label]
	return id, ok
}

// Lines returns a snapshot of all cart lines ordered by item id.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Total returns the payable sum across all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Payable
	}
	return total
}
