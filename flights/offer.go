// Package flights defines the canonical flight offer model every supplier is
// normalized into, the parsed search query, and the post-merge filter/sort
// stage.
package flights

// Offer is the unified record shape all consumers operate on. Every field is
// always present: fields the source supplier omits carry deterministic
// defaults (empty string for text, nil for timestamps, 0 for price, USD for
// currency).
type Offer struct {
	ID            string  `json:"id"`
	Supplier      string  `json:"supplier"`
	Airline       string  `json:"airline"`
	AirlineCode   string  `json:"airline_code"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime *string `json:"departure_time"`
	ArrivalTime   *string `json:"arrival_time"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
}

// Query is the parsed-and-validated search request. It is built once at the
// HTTP boundary; nothing downstream re-parses raw strings. Origin and
// Destination are already uppercased.
type Query struct {
	Origin      string
	Destination string
	Date        string
	Limit       int

	// Display-only modifiers, applied after the merge on every request.
	Airline   string
	SortBy    string
	SortOrder string
	PriceMin  *float64
	PriceMax  *float64

	// Supplier B test knobs, forwarded verbatim to the upstream call.
	SupplierBSlowMS int
	SupplierBFail   bool
}
