// Package aggregator is the aggregation engine: it fans out one search to
// both supplier adapters, merges whatever came back, and caches the merged
// set for a short window.
package aggregator

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/skysearch/flightagg/cache"
	"github.com/skysearch/flightagg/flights"
	"github.com/skysearch/flightagg/supplier"
)

// SupplierError is one failed supplier call in an aggregate result.
type SupplierError struct {
	Supplier string `json:"supplier"`
	Error    string `json:"error"`
}

// Timings carries the per-supplier elapsed times for a fresh aggregate, or
// the cache-hit flag when the merge came from the store.
type Timings struct {
	Cache     bool
	SupplierA time.Duration
	SupplierB time.Duration
}

// Result is one merged aggregate: A's offers followed by B's, the timings,
// and zero to two supplier errors. The offers are pre-filter, pre-sort.
type Result struct {
	Offers  []flights.Offer
	Timings Timings
	Errors  []SupplierError
}

// Aggregator owns the merge and cache lifecycle for one search. Dependencies
// are injected so tests can substitute fakes.
type Aggregator struct {
	store cache.Store
	a, b  supplier.Fetcher
	ttl   time.Duration
	log   zerolog.Logger
}

// AggOption configures an Aggregator.
type AggOption func(*Aggregator)

// WithLogger attaches a logger for cache store failures, which are otherwise
// invisible (they only cost a future hit).
func WithLogger(log zerolog.Logger) AggOption {
	return func(ag *Aggregator) { ag.log = log }
}

// New builds an aggregator over the shared store and the two supplier
// adapters. Merged results live in the store for ttl.
func New(store cache.Store, a, b supplier.Fetcher, ttl time.Duration, opts ...AggOption) *Aggregator {
	ag := &Aggregator{store: store, a: a, b: b, ttl: ttl, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(ag)
	}
	return ag
}

// Search returns the merged aggregate for q, from cache when a fresh entry
// exists. A supplier failure downgrades that supplier's contribution to
// empty and lands in Errors; Search itself never fails. Both supplier calls
// always run to completion (or timeout) before the merge.
func (ag *Aggregator) Search(ctx context.Context, q flights.Query) Result {
	key := cacheKey(q)
	if raw, ok := ag.store.Get(ctx, key); ok {
		var offers []flights.Offer
		if err := json.Unmarshal(raw, &offers); err == nil {
			return Result{Offers: offers, Timings: Timings{Cache: true}}
		}
		// Undecodable entry: treat as a miss and overwrite below.
	}

	var (
		aOffers, bOffers   []flights.Offer
		aElapsed, bElapsed time.Duration
		aErr, bErr         error
	)
	var g errgroup.Group
	g.Go(func() error {
		aOffers, aElapsed, aErr = ag.a.Fetch(ctx, q)
		return nil
	})
	g.Go(func() error {
		bOffers, bElapsed, bErr = ag.b.Fetch(ctx, q)
		return nil
	})
	_ = g.Wait()

	res := Result{
		Offers:  make([]flights.Offer, 0, len(aOffers)+len(bOffers)),
		Timings: Timings{SupplierA: aElapsed, SupplierB: bElapsed},
	}
	// Merge order is fixed: A's offers precede B's regardless of which call
	// finished first.
	if aErr != nil {
		res.Errors = append(res.Errors, SupplierError{Supplier: "A", Error: aErr.Error()})
	} else {
		res.Offers = append(res.Offers, aOffers...)
	}
	if bErr != nil {
		res.Errors = append(res.Errors, SupplierError{Supplier: "B", Error: bErr.Error()})
	} else {
		res.Offers = append(res.Offers, bOffers...)
	}

	if raw, err := json.Marshal(res.Offers); err == nil {
		if err := ag.store.Set(ctx, key, raw, ag.ttl); err != nil {
			ag.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return res
}

// cacheKey covers only the fields that change the merged set: origin,
// destination, date, limit. Display modifiers (airline, sort, price bounds)
// are applied after the cache, so they stay out of the key and requests
// differing only in them share an entry.
func cacheKey(q flights.Query) string {
	return cache.Key("flights", q.Origin, q.Destination, q.Date, strconv.Itoa(q.Limit))
}
