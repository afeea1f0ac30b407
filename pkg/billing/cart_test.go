package billing

import (
	"math"
	"testing"
)

// staticPrices is a fixed PriceTable for tests.
type staticPrices map[string]float64

func (p staticPrices) Price(label string) float64 {
	return p[label]
}

var testLabels = []string{"apple", "banana", "milk"}

func TestCart_IDsFollowLabelOrder(t *testing.T) {
	cart := NewCart(testLabels, staticPrices{}, "pcs")

	tests := []struct {
		label string
		want  int
	}{
		{"apple", 1},
		{"banana", 2},
		{"milk", 3},
	}

	for _, tt := range tests {
		id, ok := cart.ItemID(tt.label)
		if !ok {
			t.Fatalf("label %q missing from cart", tt.label)
		}
		if id != tt.want {
			t.Errorf("ItemID(%q) = %d, want %d", tt.label, id, tt.want)
		}
	}

	if _, ok := cart.ItemID("durian"); ok {
		t.Error("unknown label must not resolve to an id")
	}
}

func TestCart_ConfirmNTimesYieldsQuantityN(t *testing.T) {
	cart := NewCart(testLabels, staticPrices{"apple": 2.50}, "pcs")

	var last Line
	for i := 1; i <= 5; i++ {
		last = cart.Confirm("apple")
		if last.Taken != i {
			t.Fatalf("after %d confirmations Taken = %d", i, last.Taken)
		}
	}

	if last.ID != 1 || last.Name != "apple" || last.Unit != "pcs" {
		t.Errorf("unexpected line identity: %+v", last)
	}
	if len(cart.Lines()) != 1 {
		t.Errorf("confirming one label must create one line, got %d", len(cart.Lines()))
	}
}

func TestCart_PayableAlwaysQuantityTimesPrice(t *testing.T) {
	cart := NewCart(testLabels, staticPrices{"apple": 2.50, "milk": 1.19}, "pcs")

	for i := 0; i < 7; i++ {
		cart.Confirm("apple")
	}
	cart.Confirm("milk")

	for _, line := range cart.Lines() {
		want := float64(line.Taken) * line.Price
		if math.Abs(line.Payable-want) > 1e-9 {
			t.Errorf("line %q: payable %v != taken %d * price %v",
				line.Name, line.Payable, line.Taken, line.Price)
		}
	}
}

func TestCart_UnknownPriceDefaultsToZero(t *testing.T) {
	cart := NewCart(testLabels, staticPrices{"apple": 2.50}, "pcs")

	line := cart.Confirm("banana")
	if line.Price != 0 {
		t.Errorf("label missing from price table must price at 0.0, got %v", line.Price)
	}
	if line.Payable != 0 {
		t.Errorf("payable of unpriced line must be 0.0, got %v", line.Payable)
	}
}

func TestCart_LinesSortedAndCopied(t *testing.T) {
	cart := NewCart(testLabels, staticPrices{}, "pcs")
	cart.Confirm("milk")
	cart.Confirm("apple")

	lines := cart.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ID > lines[1].ID {
		t.Error("lines must be ordered by item id")
	}

	// Mutating the snapshot must not touch the cart.
	lines[0].Taken = 99
	if cart.Lines()[0].Taken == 99 {
		t.Error("Lines must return copies")
	}
}

func TestCart_Total(t *testing.T) {
	cart := NewCart(testLabels, staticPrices{"apple": 2.0, "milk": 1.5}, "pcs")
	cart.Confirm("apple")
	cart.Confirm("apple")
	cart.Confirm("milk")

	if got := cart.Total(); math.Abs(got-5.5) > 1e-9 {
		t.Errorf("Total = %v, want 5.5", got)
	}
}

func TestCart_ConfirmUnknownLabelPanics(t *testing.T) {
	cart := NewCart(testLabels, staticPrices{}, "pcs")

	defer func() {
		if recover() == nil {
			t.Error("confirming a label outside the label set must panic")
		}
	}()
	cart.Confirm("durian")
}
