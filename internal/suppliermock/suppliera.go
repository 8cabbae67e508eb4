// Package suppliermock serves the two supplier backends the aggregator talks
// to out of the box: synthetic flight generators with supplier-specific wire
// shapes. Supplier A can proxy a real aviationstack upstream when a key is
// configured.
package suppliermock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const aviationstackDefaultBase = "https://api.aviationstack.com/v1"

// SupplierA serves the supplier A contract: GET with
// origin/destination/date/limit, responding with a flat flight list.
type SupplierA struct {
	log  zerolog.Logger
	key  string
	base string
	http *http.Client
}

// NewSupplierA builds the handler. An empty key selects the synthetic
// generator; with a key set, requests proxy the aviationstack API at base.
func NewSupplierA(log zerolog.Logger, key, base string) *SupplierA {
	if base == "" {
		base = aviationstackDefaultBase
	}
	return &SupplierA{
		log:  log,
		key:  key,
		base: base,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

type wireFlightA struct {
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

type responseA struct {
	Supplier string           `json:"supplier"`
	Flights  []wireFlightA    `json:"flights"`
	Timing   map[string]int64 `json:"timing"`
	Error    *string          `json:"error"`
}

// Handler is the http.HandlerFunc for GET /mock/supplierA.
func (s *SupplierA) Handler(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	date := r.URL.Query().Get("date")
	limit := intParam(r, "limit", 10)

	if origin == "" || destination == "" || date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "origin, destination, and date are required",
		})
		return
	}

	start := time.Now()
	timing := map[string]int64{}
	var errTag *string
	var results []wireFlightA

	if s.key != "" {
		upstreamStart := time.Now()
		var err error
		results, err = s.fetchAviationstack(r.Context(), origin, destination, date, limit)
		timing["aviationstack_ms"] = time.Since(upstreamStart).Milliseconds()
		if err != nil {
			msg := err.Error()
			errTag = &msg
			results = []wireFlightA{}
		}
	} else {
		results = syntheticFlightsA(origin, destination, date, limit)
	}

	timing["total_ms"] = time.Since(start).Milliseconds()
	s.log.Info().
		Str("supplier", "A").
		Str("origin", origin).
		Str("destination", destination).
		Str("date", date).
		Int("count", len(results)).
		Interface("timing", timing).
		Msg("supplier A search")

	writeJSON(w, http.StatusOK, responseA{
		Supplier: "A",
		Flights:  results,
		Timing:   timing,
		Error:    errTag,
	})
}

type aviationstackResponse struct {
	Data []struct {
		Flight struct {
			IATA   string `json:"iata"`
			Number string `json:"number"`
		} `json:"flight"`
		Airline struct {
			IATA string `json:"iata"`
			Name string `json:"name"`
		} `json:"airline"`
		Departure struct {
			IATA      string  `json:"iata"`
			Scheduled *string `json:"scheduled"`
			Estimated *string `json:"estimated"`
		} `json:"departure"`
		Arrival struct {
			IATA      string  `json:"iata"`
			Scheduled *string `json:"scheduled"`
			Estimated *string `json:"estimated"`
		} `json:"arrival"`
	} `json:"data"`
}

func (s *SupplierA) fetchAviationstack(ctx context.Context, origin, destination, date string, limit int) ([]wireFlightA, error) {
	vals := url.Values{}
	vals.Set("access_key", s.key)
	vals.Set("limit", strconv.Itoa(limit))
	vals.Set("dep_iata", origin)
	vals.Set("arr_iata", destination)
	// The free tier may not filter by date reliably; included for
	// completeness.
	vals.Set("flight_date", date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/flights?"+vals.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("aviationstack_error_%s", err.Error())
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aviationstack_error_%s", err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("aviationstack_status_%d", resp.StatusCode)
	}

	var body aviationstackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("aviationstack_error_%s", err.Error())
	}

	out := make([]wireFlightA, 0, len(body.Data))
	for _, item := range body.Data {
		id := item.Flight.IATA
		if id == "" {
			id = item.Flight.Number
		}
		if id == "" {
			id = "A-" + uuid.NewString()
		}
		out = append(out, wireFlightA{
			ID:            id,
			AirlineCode:   item.Airline.IATA,
			AirlineName:   item.Airline.Name,
			FlightNumber:  item.Flight.Number,
			Origin:        item.Departure.IATA,
			Destination:   item.Arrival.IATA,
			DepartureTime: firstNonNil(item.Departure.Scheduled, item.Departure.Estimated),
			ArrivalTime:   firstNonNil(item.Arrival.Scheduled, item.Arrival.Estimated),
			Price:         syntheticPrice(item.Airline.IATA),
			Currency:      "USD",
		})
	}
	return out, nil
}

var airlinesA = []struct{ code, name string }{
	{"GA", "Garuda Indonesia"},
	{"JT", "Lion Air"},
	{"QG", "Citilink"},
	{"SJ", "Sriwijaya Air"},
}

func syntheticFlightsA(origin, destination, date string, limit int) []wireFlightA {
	if limit < 0 {
		limit = 0
	}
	out := make([]wireFlightA, 0, limit)
	for i := 0; i < limit; i++ {
		al := airlinesA[i%len(airlinesA)]
		dep := fmt.Sprintf("%sT08:%02d:00Z", date, i%60)
		arr := fmt.Sprintf("%sT10:%02d:00Z", date, i%60)
		out = append(out, wireFlightA{
			ID:            fmt.Sprintf("A-%s-%d", al.code, i+100),
			AirlineCode:   al.code,
			AirlineName:   al.name,
			FlightNumber:  fmt.Sprintf("%s%d", al.code, i+1000),
			Origin:        strings.ToUpper(origin),
			Destination:   strings.ToUpper(destination),
			DepartureTime: &dep,
			ArrivalTime:   &arr,
			Price:         float64(50 + i*5),
			Currency:      "USD",
		})
	}
	return out
}

// syntheticPrice derives a demo fare from the airline code, since
// aviationstack carries no pricing.
func syntheticPrice(airlineCode string) float64 {
	base := 80.0
	multiplier := 0.5
	if airlineCode != "" {
		multiplier = float64(airlineCode[0]%10) / 10.0
	}
	return math.Round(base*(1+multiplier)*100) / 100
}

func firstNonNil(a, b *string) *string {
	if a != nil {
		return a
	}
	return b
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
