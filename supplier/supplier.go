// Package supplier contains the HTTP client adapters for the two upstream
// flight suppliers and the pure normalizers that map their incompatible
// payloads into canonical offers.
package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/skysearch/flightagg/flights"
)

// Fetcher is the adapter contract the aggregator depends on. Fetch returns
// the supplier's offers already normalized, plus the elapsed wall time —
// elapsed is valid even when the call failed. A returned error is always a
// *Error carrying the classified tag; it downgrades the supplier's
// contribution, it never aborts the aggregate.
type Fetcher interface {
	Fetch(ctx context.Context, q flights.Query) ([]flights.Offer, time.Duration, error)
}

// Error is a classified supplier failure. Tag is the wire-level code:
// "status_<code>" for a non-200 response, "error_<message>" for a transport
// failure (timeouts included). Supplier calls are never retried.
type Error struct {
	Tag string
}

func (e *Error) Error() string { return e.Tag }

func statusError(code int) *Error {
	return &Error{Tag: fmt.Sprintf("status_%d", code)}
}

func transportError(err error) *Error {
	return &Error{Tag: "error_" + err.Error()}
}

// getJSON issues one GET with the adapter's query parameters and decodes the
// 200 body into out. Any failure comes back as a classified *Error.
func getJSON(ctx context.Context, hc *http.Client, rawURL string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+q.Encode(), nil)
	if err != nil {
		return transportError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportError(err)
	}
	return nil
}

// Option configures a supplier client.
type Option func(*clientOptions)

type clientOptions struct {
	http *http.Client
}

// WithHTTPClient overrides the HTTP client, typically to change the request
// timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(o *clientOptions) { o.http = h }
}

func applyOptions(opts []Option) clientOptions {
	o := clientOptions{
		http: &http.Client{Timeout: 3 * time.Second},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
