// Package httpc builds HTTP clients with sensible defaults.
// Use it instead of http.DefaultClient to ensure timeouts are set.
package httpc

import (
	"net"
	"net/http"
	"time"
)

// Default timeouts for HTTP operations.
const (
	DefaultConnectTimeout  = 5 * time.Second
	DefaultKeepAlive       = 30 * time.Second
	DefaultIdleConnTimeout = 90 * time.Second
)

// NewClient creates an HTTP client with the specified overall timeout.
// The checkout publisher uses a short timeout here so a dead billing
// endpoint stalls the frame loop for a bounded time only.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DefaultConnectTimeout,
				KeepAlive: DefaultKeepAlive,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     DefaultIdleConnTimeout,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}
