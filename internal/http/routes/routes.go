// Package routes wires the chi router: the public flight search endpoint,
// the mock supplier backends, and a health check.
package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/skysearch/flightagg/cache"
	"github.com/skysearch/flightagg/internal/aggregator"
	appmw "github.com/skysearch/flightagg/internal/http/middleware"
)

type Server struct {
	Router *chi.Mux
	Agg    *aggregator.Aggregator
	Log    zerolog.Logger
}

type ServerOptions struct {
	Agg        *aggregator.Aggregator
	Store      cache.Store
	Log        zerolog.Logger
	RateLimit  int
	RateWindow time.Duration
	MockA      http.HandlerFunc
	MockB      http.HandlerFunc
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Agg: opts.Agg, Log: opts.Log}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/mock/supplierA", opts.MockA)
	r.Get("/mock/supplierB", opts.MockB)

	r.Group(func(pr chi.Router) {
		pr.Use(appmw.RateLimit(opts.Store, opts.RateLimit, opts.RateWindow))
		pr.Get("/api/flights/search", s.handleSearch)
	})

	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
