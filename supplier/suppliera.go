package supplier

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skysearch/flightagg/flights"
)

const (
	supplierAPath = "/mock/supplierA"
	defaultLimitA = 10
)

// ClientA talks to supplier A, which takes origin/destination/date/limit
// query parameters and returns a flat flight list.
type ClientA struct {
	http    *http.Client
	baseURL string
}

// NewClientA creates a supplier A adapter rooted at baseURL.
func NewClientA(baseURL string, opts ...Option) *ClientA {
	o := applyOptions(opts)
	return &ClientA{http: o.http, baseURL: baseURL}
}

// Fetch implements Fetcher.
func (c *ClientA) Fetch(ctx context.Context, q flights.Query) ([]flights.Offer, time.Duration, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimitA
	}
	vals := url.Values{}
	vals.Set("origin", q.Origin)
	vals.Set("destination", q.Destination)
	vals.Set("date", q.Date)
	vals.Set("limit", strconv.Itoa(limit))

	start := time.Now()
	var payload payloadA
	err := getJSON(ctx, c.http, c.baseURL+supplierAPath, vals, &payload)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, err
	}
	return normalizeA(payload), elapsed, nil
}
