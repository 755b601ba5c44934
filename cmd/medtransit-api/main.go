// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medtransit/internal/config"
	"medtransit/internal/geo"
	httptransport "medtransit/internal/http"
	"medtransit/internal/infra"
	"medtransit/internal/modules/dispatch"
	"medtransit/internal/modules/driver"
	"medtransit/internal/modules/rates"
	"medtransit/internal/modules/risk"
	"medtransit/internal/modules/trip"
	"medtransit/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var resolver geo.Resolver
	if cfg.Maps.APIKey != "" {
		resolver, err = geo.NewGoogleResolver(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps client: %v", err)
		}
	} else {
		log.Println("no maps API key configured, using deterministic mock resolver")
		resolver = geo.NewMockResolver(types.Point{Lat: cfg.Dispatch.BaseLat, Lng: cfg.Dispatch.BaseLng})
	}

	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(tripStore)

	driverStore := driver.NewStore(dbPool, redisClient)
	driverSvc := driver.NewService(driverStore)

	ratesStore := rates.NewStore(dbPool)
	ratesSvc := rates.NewService(ratesStore, tripStore)

	dispatchSvc := dispatch.NewService(tripStore, driverSvc, resolver)

	riskStore := risk.NewStore(dbPool)
	riskSvc := risk.NewService(riskStore, tripStore)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Trips:    tripSvc,
		Drivers:  driverSvc,
		Dispatch: dispatchSvc,
		Rates:    ratesSvc,
		Risk:     riskSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
