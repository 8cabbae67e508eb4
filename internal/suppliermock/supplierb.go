package suppliermock

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SupplierB serves the supplier B contract: GET with from/to/date/limit plus
// the slow_ms and fail test knobs, responding with nested
// carrier/segment/pricing records.
type SupplierB struct {
	log zerolog.Logger
}

// NewSupplierB builds the handler.
func NewSupplierB(log zerolog.Logger) *SupplierB {
	return &SupplierB{log: log}
}

type wireCarrierB struct {
	IATA string `json:"iata"`
	Name string `json:"name"`
}

type wireSegmentB struct {
	FlightNo string `json:"flightNo"`
	Orig     string `json:"orig"`
	Dest     string `json:"dest"`
	DepartAt string `json:"departAt"`
	ArriveAt string `json:"arriveAt"`
}

type wireResultB struct {
	UID      string         `json:"uid"`
	Carrier  wireCarrierB   `json:"carrier"`
	Segments []wireSegmentB `json:"segments"`
	Pricing  struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"pricing"`
}

type responseB struct {
	Supplier string            `json:"supplier"`
	Results  []wireResultB     `json:"results"`
	Meta     map[string]string `json:"meta"`
	Timing   map[string]int64  `json:"timing"`
}

var carriersB = []struct{ code, name string }{
	{"AK", "AirAsia"},
	{"ID", "Batik Air"},
	{"NH", "All Nippon Airways"},
}

// Handler is the http.HandlerFunc for GET /mock/supplierB.
func (s *SupplierB) Handler(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	date := r.URL.Query().Get("date")
	limit := intParam(r, "limit", 8)
	slowMS := intParam(r, "slow_ms", 0)
	fail, _ := strconv.ParseBool(r.URL.Query().Get("fail"))

	if from == "" || to == "" || date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "from, to, and date are required",
		})
		return
	}

	if slowMS > 0 {
		time.Sleep(time.Duration(slowMS) * time.Millisecond)
	}

	if fail {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"supplier": "B",
			"error":    "simulated_failure",
		})
		return
	}

	start := time.Now()
	results := syntheticResultsB(from, to, date, limit)
	timing := map[string]int64{"total_ms": time.Since(start).Milliseconds()}

	s.log.Info().
		Str("supplier", "B").
		Str("from", from).
		Str("to", to).
		Str("date", date).
		Int("count", len(results)).
		Interface("timing", timing).
		Msg("supplier B search")

	writeJSON(w, http.StatusOK, responseB{
		Supplier: "B",
		Results:  results,
		Meta:     map[string]string{"currency": "USD", "source": "mock"},
		Timing:   timing,
	})
}

func syntheticResultsB(from, to, date string, limit int) []wireResultB {
	if limit < 0 {
		limit = 0
	}
	out := make([]wireResultB, 0, limit)
	for i := 0; i < limit; i++ {
		carrier := carriersB[i%len(carriersB)]
		res := wireResultB{
			UID:     fmt.Sprintf("B-%s-%d", carrier.code, i+200),
			Carrier: wireCarrierB{IATA: carrier.code, Name: carrier.name},
			Segments: []wireSegmentB{{
				FlightNo: fmt.Sprintf("%s%d", carrier.code, i+500),
				Orig:     strings.ToUpper(from),
				Dest:     strings.ToUpper(to),
				DepartAt: fmt.Sprintf("%sT09:%02d:00Z", date, i%60),
				ArriveAt: fmt.Sprintf("%sT11:%02d:00Z", date, i%60),
			}},
		}
		res.Pricing.Amount = float64(55 + i*7)
		res.Pricing.Currency = "USD"
		out = append(out, res)
	}
	return out
}
