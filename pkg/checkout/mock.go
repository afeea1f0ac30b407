package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/smartgrocery/autobill/pkg/billing"
)

// Mock implements billing.Publisher for testing.
// The publish behavior can be customized via PublishFunc.
type Mock struct {
	// PublishFunc is called when Publish is invoked.
	// If nil, Publish succeeds.
	PublishFunc func(ctx context.Context, line billing.Line) error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a Publish invocation for verification.
type MockCall struct {
	Line billing.Line
	Time time.Time
}

// NewMock creates a mock publisher that accepts everything.
func NewMock() *Mock {
	return &Mock{}
}

// WithError returns a mock whose Publish always fails with err.
func WithError(err error) *Mock {
	return &Mock{
		PublishFunc: func(ctx context.Context, line billing.Line) error {
			return err
		},
	}
}

// Publish records the call and delegates to PublishFunc.
func (m *Mock) Publish(ctx context.Context, line billing.Line) error {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Line: line, Time: time.Now()})
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, line)
	}
	return nil
}

// Calls returns all recorded publish calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Publish was invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent call, or nil if none.
func (m *Mock) LastCall() *MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// Verify Mock implements billing.Publisher at compile time.
var _ billing.Publisher = (*Mock)(nil)
