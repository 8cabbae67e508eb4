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
	supplierBPath = "/mock/supplierB"
	defaultLimitB = 8
)

// ClientB talks to supplier B, which takes from/to/date/limit plus the
// slow_ms and fail test knobs (omitted from the query when unset) and
// returns nested carrier/segment/pricing records.
type ClientB struct {
	http    *http.Client
	baseURL string
}

// NewClientB creates a supplier B adapter rooted at baseURL.
func NewClientB(baseURL string, opts ...Option) *ClientB {
	o := applyOptions(opts)
	return &ClientB{http: o.http, baseURL: baseURL}
}

// Fetch implements Fetcher.
func (c *ClientB) Fetch(ctx context.Context, q flights.Query) ([]flights.Offer, time.Duration, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimitB
	}
	vals := url.Values{}
	vals.Set("from", q.Origin)
	vals.Set("to", q.Destination)
	vals.Set("date", q.Date)
	vals.Set("limit", strconv.Itoa(limit))
	if q.SupplierBSlowMS > 0 {
		vals.Set("slow_ms", strconv.Itoa(q.SupplierBSlowMS))
	}
	if q.SupplierBFail {
		vals.Set("fail", "true")
	}

	start := time.Now()
	var payload payloadB
	err := getJSON(ctx, c.http, c.baseURL+supplierBPath, vals, &payload)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, err
	}
	return normalizeB(payload), elapsed, nil
}
