package suppliermock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func getA(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	s := NewSupplierA(zerolog.Nop(), "", "")
	rec := httptest.NewRecorder()
	s.Handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func getB(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	s := NewSupplierB(zerolog.Nop())
	rec := httptest.NewRecorder()
	s.Handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSupplierASynthetic(t *testing.T) {
	rec := getA(t, "/mock/supplierA?origin=cgk&destination=dps&date=2026-02-15&limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body responseA
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Supplier != "A" || body.Error != nil {
		t.Errorf("envelope wrong: %+v", body)
	}
	if len(body.Flights) != 5 {
		t.Fatalf("got %d flights, want 5", len(body.Flights))
	}

	first := body.Flights[0]
	if first.ID != "A-GA-100" || first.AirlineName != "Garuda Indonesia" || first.FlightNumber != "GA1000" {
		t.Errorf("first flight = %+v", first)
	}
	if first.Origin != "CGK" || first.Destination != "DPS" {
		t.Errorf("codes should be uppercased: %+v", first)
	}
	if first.Price != 50 || body.Flights[4].Price != 70 {
		t.Errorf("price progression wrong: %v ... %v", first.Price, body.Flights[4].Price)
	}
	if first.DepartureTime == nil || *first.DepartureTime != "2026-02-15T08:00:00Z" {
		t.Errorf("departure = %v", first.DepartureTime)
	}
}

func TestSupplierANegativeLimit(t *testing.T) {
	rec := getA(t, "/mock/supplierA?origin=CGK&destination=DPS&date=2026-02-15&limit=-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body responseA
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Flights) != 0 {
		t.Errorf("got %d flights, want 0", len(body.Flights))
	}
}

func TestSupplierAMissingParams(t *testing.T) {
	rec := getA(t, "/mock/supplierA?origin=CGK")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Error("400 body should carry an error message")
	}
}

func TestSupplierBSynthetic(t *testing.T) {
	rec := getB(t, "/mock/supplierB?from=CGK&to=DPS&date=2026-02-15&limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body responseB
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Supplier != "B" || body.Meta["source"] != "mock" {
		t.Errorf("envelope wrong: %+v", body)
	}
	if len(body.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(body.Results))
	}

	first := body.Results[0]
	if first.UID != "B-AK-200" || first.Carrier.Name != "AirAsia" {
		t.Errorf("first result = %+v", first)
	}
	if len(first.Segments) != 1 || first.Segments[0].FlightNo != "AK500" {
		t.Errorf("segments = %+v", first.Segments)
	}
	if first.Pricing.Amount != 55 || body.Results[2].Pricing.Amount != 69 {
		t.Errorf("pricing progression wrong")
	}
}

func TestSupplierBNegativeLimit(t *testing.T) {
	rec := getB(t, "/mock/supplierB?from=CGK&to=DPS&date=2026-02-15&limit=-3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body responseB
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 0 {
		t.Errorf("got %d results, want 0", len(body.Results))
	}
}

func TestSupplierBFail(t *testing.T) {
	rec := getB(t, "/mock/supplierB?from=CGK&to=DPS&date=2026-02-15&fail=true")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["supplier"] != "B" || body["error"] != "simulated_failure" {
		t.Errorf("body = %v", body)
	}
}

func TestSupplierBSlowMS(t *testing.T) {
	start := time.Now()
	rec := getB(t, "/mock/supplierB?from=CGK&to=DPS&date=2026-02-15&slow_ms=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("response came back in %v, want >= 50ms", elapsed)
	}
}

func TestSupplierAAviationstackPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_key") != "test-key" {
			t.Errorf("access_key not forwarded")
		}
		if r.URL.Query().Get("dep_iata") != "CGK" || r.URL.Query().Get("arr_iata") != "DPS" {
			t.Errorf("iata params wrong: %v", r.URL.Query())
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{
					"flight":    map[string]any{"iata": "GA402", "number": "402"},
					"airline":   map[string]any{"iata": "GA", "name": "Garuda Indonesia"},
					"departure": map[string]any{"iata": "CGK", "scheduled": "2026-02-15T08:00:00+00:00"},
					"arrival":   map[string]any{"iata": "DPS", "scheduled": "2026-02-15T11:00:00+00:00"},
				},
			},
		})
	}))
	defer upstream.Close()

	s := NewSupplierA(zerolog.Nop(), "test-key", upstream.URL)
	rec := httptest.NewRecorder()
	s.Handler(rec, httptest.NewRequest(http.MethodGet, "/mock/supplierA?origin=CGK&destination=DPS&date=2026-02-15", nil))

	var body responseA
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != nil {
		t.Fatalf("error = %v", *body.Error)
	}
	if len(body.Flights) != 1 {
		t.Fatalf("got %d flights, want 1", len(body.Flights))
	}
	f := body.Flights[0]
	if f.ID != "GA402" || f.AirlineName != "Garuda Indonesia" || f.Currency != "USD" {
		t.Errorf("flight = %+v", f)
	}
	// 'G' = 71, 71%10 = 1 → 80 * 1.1
	if f.Price != 88 {
		t.Errorf("synthetic price = %v, want 88", f.Price)
	}
	if _, ok := body.Timing["aviationstack_ms"]; !ok {
		t.Error("timing should include aviationstack_ms")
	}
}

func TestSupplierAAviationstackStatusError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	s := NewSupplierA(zerolog.Nop(), "test-key", upstream.URL)
	rec := httptest.NewRecorder()
	s.Handler(rec, httptest.NewRequest(http.MethodGet, "/mock/supplierA?origin=CGK&destination=DPS&date=2026-02-15", nil))

	// The mock itself still answers 200; the upstream failure rides in the
	// error field.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body responseA
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || *body.Error != "aviationstack_status_403" {
		t.Errorf("error = %v, want aviationstack_status_403", body.Error)
	}
	if len(body.Flights) != 0 {
		t.Errorf("flights should be empty on upstream failure")
	}
}
