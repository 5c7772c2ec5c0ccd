// README: Entry point; loads config, wires the dispatcher, runs the
// simulation loop, and serves the inspection HTTP surface alongside it.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatchsim/internal/config"
	"dispatchsim/internal/dispatch/loop"
	"dispatchsim/internal/infra"
	"dispatchsim/internal/inspect"
	"dispatchsim/internal/loader"
	"dispatchsim/internal/oracle"
	"dispatchsim/internal/proximity"
	"dispatchsim/internal/report"

	"golang.org/x/time/rate"
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
	redisClient := infra.NewRedis(cfg.Redis.Addr)
	proximityIndex := proximity.NewIndex(redisClient)

	memoized, err := buildOracle(cfg.Oracle)
	if err != nil {
		log.Fatalf("build routing oracle: %v", err)
	}
	backend := oracle.Backend(memoized)

	startTime := time.Now().UTC()
	synth := loader.NewSynthetic(startTime.UnixNano(), startTime)
	world, params, err := synth.Load(ctx)
	if err != nil {
		log.Fatalf("load instance: %v", err)
	}
	cfg.Dispatch.PayPerOrder = params.PayPerOrder
	cfg.Dispatch.GuaranteedPayPerHour = params.GuaranteedPayPerHour

	dispatcher := loop.New(world, backend, cfg.Dispatch, proximityIndex)

	go func() {
		t := startTime
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			memoized.Reset()
			if err := dispatcher.Tick(ctx, t); err != nil {
				log.Printf("tick at %v failed: %v", t, err)
			}
			if err := proximityIndex.Sync(ctx, world.FreeCouriers()); err != nil {
				log.Printf("proximity sync at %v failed: %v", t, err)
			}
			t = t.Add(time.Minute)
			time.Sleep(10 * time.Millisecond)
		}
	}()

	sink := report.NewPostgresSink(dbPool)
	go func() {
		<-ctx.Done()
		orders, couriers := report.BuildRows(world)
		runID := startTime.Format(time.RFC3339)
		if err := sink.WriteOrders(context.Background(), runID, orders); err != nil {
			log.Printf("write order rows: %v", err)
		}
		if err := sink.WriteCouriers(context.Background(), runID, couriers); err != nil {
			log.Printf("write courier rows: %v", err)
		}
	}()

	server := inspect.NewServer(dispatcher, world, func() time.Time { return time.Now().UTC() })
	httpServer := &http.Server{Addr: cfg.HTTP.Addr, Handler: server.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// buildOracle assembles the Routing Oracle's decorator chain: a base
// backend chosen by config, wrapped by retry-with-fallback, rate limiting,
// and per-tick memoization, in that order (closest layer to the network
// first).
func buildOracle(cfg config.OracleConfig) (*oracle.MemoizingBackend, error) {
	var base oracle.Backend
	switch cfg.Backend {
	case "external":
		base = oracle.NewExternalBackend(cfg.ExternalURL, &http.Client{Timeout: cfg.RequestTimeout})
	case "google":
		g, err := oracle.NewGoogleBackend(cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		base = g
	default:
		base = oracle.NewEuclideanBackend(cfg.MetersPerMinute)
	}

	var fallback oracle.Backend
	if cfg.FallbackEuclidean {
		fallback = oracle.NewEuclideanBackend(cfg.MetersPerMinute)
	}

	retrying := oracle.NewRetryingBackend(base, cfg.MaxAttempts, cfg.BackoffBase, fallback)
	limited := oracle.NewRateLimitedBackend(retrying, rateFromInterval(cfg.RateLimitInterval), 1)
	return oracle.NewMemoizingBackend(limited), nil
}

func rateFromInterval(d time.Duration) rate.Limit {
	if d <= 0 {
		return rate.Limit(1000)
	}
	return rate.Every(d)
}
