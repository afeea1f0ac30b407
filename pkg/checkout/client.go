// Package checkout publishes confirmed cart lines to the CheckoutUI
// billing endpoint. Delivery is synchronous, bounded by a short
// timeout, and fire-and-forget: there is no retry queue and no outbox.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/smartgrocery/autobill/internal/httpc"
	"github.com/smartgrocery/autobill/pkg/billing"
)

// DefaultTimeout bounds one publish round-trip. While a publish runs
// the frame loop is stalled, so this also bounds how long a dead
// endpoint can freeze detection.
const DefaultTimeout = 5 * time.Second

const maxErrorBody = 512

// Client posts cart lines as JSON to the billing endpoint.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a publisher for the given endpoint URL.
func NewClient(url string, logger *slog.Logger) (*Client, error) {
	if url == "" {
		return nil, ErrNoEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:    url,
		http:   httpc.NewClient(DefaultTimeout),
		logger: logger.With("component", "checkout.client"),
	}, nil
}

// Publish sends one cart line. Any 2xx response counts as accepted;
// the body is logged but not interpreted further.
func (c *Client) Publish(ctx context.Context, line billing.Line) error {
	payload, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("checkout: encode line: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("checkout: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("checkout: post %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug("cart line accepted",
		"status", resp.StatusCode, "id", line.ID, "taken", line.Taken,
		"response", string(body))
	return nil
}

// Verify Client implements billing.Publisher at compile time.
var _ billing.Publisher = (*Client)(nil)
