package supplier

import "github.com/skysearch/flightagg/flights"

// payloadA is supplier A's native response: a flat flight list.
type payloadA struct {
	Flights []rawFlightA `json:"flights"`
}

type rawFlightA struct {
	ID            string  `json:"id"`
	AirlineCode   string  `json:"airline_code"`
	AirlineName   string  `json:"airline_name"`
	FlightNumber  string  `json:"flight_number"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime *string `json:"departure_time"`
	ArrivalTime   *string `json:"arrival_time"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
}

// payloadB is supplier B's native response: nested carrier, segment, and
// pricing objects.
type payloadB struct {
	Results []rawResultB `json:"results"`
}

type rawResultB struct {
	UID      string        `json:"uid"`
	Carrier  rawCarrierB   `json:"carrier"`
	Segments []rawSegmentB `json:"segments"`
	Pricing  rawPricingB   `json:"pricing"`
}

type rawCarrierB struct {
	IATA string `json:"iata"`
	Name string `json:"name"`
}

type rawSegmentB struct {
	FlightNo string  `json:"flightNo"`
	Orig     string  `json:"orig"`
	Dest     string  `json:"dest"`
	DepartAt *string `json:"departAt"`
	ArriveAt *string `json:"arriveAt"`
}

type rawPricingB struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// normalizeA maps supplier A's flat records into canonical offers. Missing
// optional fields keep their zero defaults; currency falls back to USD.
func normalizeA(p payloadA) []flights.Offer {
	out := make([]flights.Offer, 0, len(p.Flights))
	for _, f := range p.Flights {
		out = append(out, flights.Offer{
			ID:            f.ID,
			Supplier:      "A",
			Airline:       f.AirlineName,
			AirlineCode:   f.AirlineCode,
			FlightNumber:  f.FlightNumber,
			Origin:        f.Origin,
			Destination:   f.Destination,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Price:         f.Price,
			Currency:      defaultCurrency(f.Currency),
		})
	}
	return out
}

// normalizeB maps supplier B's nested records into canonical offers. Only the
// first segment is considered; multi-segment itineraries are not modeled.
func normalizeB(p payloadB) []flights.Offer {
	out := make([]flights.Offer, 0, len(p.Results))
	for _, r := range p.Results {
		var seg rawSegmentB
		if len(r.Segments) > 0 {
			seg = r.Segments[0]
		}
		out = append(out, flights.Offer{
			ID:            r.UID,
			Supplier:      "B",
			Airline:       r.Carrier.Name,
			AirlineCode:   r.Carrier.IATA,
			FlightNumber:  seg.FlightNo,
			Origin:        seg.Orig,
			Destination:   seg.Dest,
			DepartureTime: seg.DepartAt,
			ArrivalTime:   seg.ArriveAt,
			Price:         r.Pricing.Amount,
			Currency:      defaultCurrency(r.Pricing.Currency),
		})
	}
	return out
}

func defaultCurrency(c string) string {
	if c == "" {
		return "USD"
	}
	return c
}
