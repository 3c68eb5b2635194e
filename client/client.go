// SPDX-License-Identifier: EPL-2.0

package client

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the processing backend over HTTP. It is safe for use by
// multiple goroutines; all per-request state lives in the request itself.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client, e.g. to add a
// custom transport. Apply it before WithTimeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTimeout bounds every backend call. There is no default timeout: the
// coordinator cancels superseded requests itself, and a long-running apply
// on a big signal is legitimate. Set one here when the deployment needs it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the backend at baseURL (e.g. "http://localhost:5000").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
