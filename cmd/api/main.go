// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/skysearch/flightagg/cache"
	"github.com/skysearch/flightagg/internal/aggregator"
	"github.com/skysearch/flightagg/internal/config"
	"github.com/skysearch/flightagg/internal/http/routes"
	"github.com/skysearch/flightagg/internal/suppliermock"
	"github.com/skysearch/flightagg/supplier"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Shared TTL store: Redis when configured, in-memory otherwise. Both the
	// result cache and the rate limit counters live here.
	var store cache.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatalf("redis ping error: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		store = cache.NewRedis(rdb)
	} else {
		store = cache.NewMemory()
	}

	// Supplier adapters
	hc := &http.Client{Timeout: cfg.SupplierTimeout}
	a := supplier.NewClientA(cfg.SupplierBaseURL, supplier.WithHTTPClient(hc))
	b := supplier.NewClientB(cfg.SupplierBaseURL, supplier.WithHTTPClient(hc))

	agg := aggregator.New(store, a, b, cfg.CacheTTL, aggregator.WithLogger(logger))

	// Router / server
	s := routes.New(routes.ServerOptions{
		Agg:        agg,
		Store:      store,
		Log:        logger,
		RateLimit:  cfg.RateLimit,
		RateWindow: cfg.RateWindow,
		MockA:      suppliermock.NewSupplierA(logger, cfg.AviationstackKey, cfg.AviationstackBase).Handler,
		MockB:      suppliermock.NewSupplierB(logger).Handler,
	})
	h := hlog.NewHandler(logger)(s.Router)

	log.Printf("starting flight search api on :%s", cfg.Port)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}
	log.Fatal(srv.ListenAndServe())
}
