package routes

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skysearch/flightagg/flights"
	"github.com/skysearch/flightagg/internal/aggregator"
)

var airportCodeRe = regexp.MustCompile(`^[A-Z0-9]{3}$`)

// handleSearch answers GET /api/flights/search: validate, aggregate, then
// filter and sort the merged offers. The filter/sort stage runs on every
// request, cache hits included — only the merge is cached.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, fieldErrs := parseQuery(r)
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "validation_failed",
			"messages": fieldErrs,
		})
		return
	}

	start := time.Now()
	res := s.Agg.Search(r.Context(), q)

	offers := flights.Filter(res.Offers, q.Airline, q.PriceMin, q.PriceMax)
	flights.Sort(offers, q.SortBy, q.SortOrder)

	timings := timingsJSON(res.Timings, time.Since(start).Milliseconds())
	errs := res.Errors
	if errs == nil {
		errs = []aggregator.SupplierError{}
	}

	s.Log.Info().
		Str("endpoint", "/api/flights/search").
		Str("origin", q.Origin).
		Str("destination", q.Destination).
		Str("date", q.Date).
		Int("count", len(offers)).
		Interface("timings", timings).
		Interface("errors", errs).
		Msg("flight search")

	writeJSON(w, http.StatusOK, map[string]any{
		"meta": map[string]any{
			"count":   len(offers),
			"errors":  errs,
			"timings": timings,
		},
		"data": offers,
	})
}

// parseQuery builds the validated Query value object once at the boundary.
// Validation failures come back per field; the aggregation core never sees
// raw strings.
func parseQuery(r *http.Request) (flights.Query, map[string]string) {
	get := func(name string) string { return r.URL.Query().Get(name) }
	fieldErrs := map[string]string{}

	origin := strings.ToUpper(strings.TrimSpace(get("origin")))
	if !airportCodeRe.MatchString(origin) {
		fieldErrs["origin"] = "origin must be exactly 3 alphanumeric characters"
	}
	destination := strings.ToUpper(strings.TrimSpace(get("destination")))
	if !airportCodeRe.MatchString(destination) {
		fieldErrs["destination"] = "destination must be exactly 3 alphanumeric characters"
	}

	date := get("date")
	if date == "" {
		fieldErrs["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		fieldErrs["date"] = "date must be a valid date in YYYY-MM-DD format"
	}

	limit := 20
	if v := get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	q := flights.Query{
		Origin:      origin,
		Destination: destination,
		Date:        date,
		Limit:       limit,
		Airline:     get("airline"),
		SortBy:      get("sortBy"),
		SortOrder:   strings.ToLower(get("sortOrder")),
		PriceMin:    floatParam(get("priceMin"), "priceMin", fieldErrs),
		PriceMax:    floatParam(get("priceMax"), "priceMax", fieldErrs),
	}
	if v := get("supplierB_slow_ms"); v != "" {
		q.SupplierBSlowMS, _ = strconv.Atoi(v)
	}
	if v := get("supplierB_fail"); v != "" {
		q.SupplierBFail, _ = strconv.ParseBool(v)
	}
	return q, fieldErrs
}

func floatParam(v, name string, fieldErrs map[string]string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		fieldErrs[name] = name + " must be a number"
		return nil
	}
	return &f
}

// timingsJSON renders the meta.timings object: the cache flag on hits, the
// per-supplier times on misses, total_ms always.
func timingsJSON(t aggregator.Timings, totalMS int64) map[string]any {
	if t.Cache {
		return map[string]any{"cache": true, "total_ms": totalMS}
	}
	return map[string]any{
		"supplierA_ms": t.SupplierA.Milliseconds(),
		"supplierB_ms": t.SupplierB.Milliseconds(),
		"total_ms":     totalMS,
	}
}
