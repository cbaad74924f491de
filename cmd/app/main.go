package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nhasan91/railbooking/config"
	"github.com/nhasan91/railbooking/internal/bootstrap"
	"github.com/nhasan91/railbooking/internal/cache"
	"github.com/nhasan91/railbooking/internal/notify"
	"github.com/nhasan91/railbooking/internal/prompt"
	"github.com/nhasan91/railbooking/internal/railapi"
	"github.com/nhasan91/railbooking/internal/service/auth"
	"github.com/nhasan91/railbooking/internal/service/availability"
	"github.com/nhasan91/railbooking/internal/service/checkout"
	"github.com/nhasan91/railbooking/internal/service/reservation"
	"github.com/nhasan91/railbooking/internal/service/seats"
	"github.com/nhasan91/railbooking/internal/service/trip"
)

const (
	pollInterval          = time.Second
	reserveRetryDelay     = 100 * time.Millisecond
	layoutMinLoopInterval = time.Millisecond
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	request, err := cfg.Booking.Request()
	if err != nil {
		log.Fatalf("invalid booking request: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := railapi.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	var tripCache trip.Cache
	if cfg.Redis.Enabled() {
		tripCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Redis.TripTTLMinutes)*time.Minute)
	}

	stdin := prompt.NewStdin()
	deps := bootstrap.Deps{
		RunID:    uuid.NewString(),
		Request:  request,
		Auth:     auth.NewAuthenticator(client, railapi.Policy{MaxRetries: cfg.API.AuthMaxRetries, Delay: pollInterval}),
		Trips:    trip.NewResolver(client, tripCache, railapi.Policy{Delay: pollInterval}),
		Layout:   availability.NewPoller(client, layoutMinLoopInterval),
		Allocate: seats.Allocate,
		Reserve:  reservation.NewExecutor(client, reserveRetryDelay, cfg.Reservation.Concurrent),
		Checkout: checkout.NewFlow(client, railapi.Policy{Delay: pollInterval}, stdin, stdin, stdin, prompt.Browser{}),
		Notify:   notify.NewSender(),
	}

	if err := bootstrap.Run(ctx, deps); err != nil {
		log.Fatalf("booking failed: %v", err)
	}
	log.Printf("booking process completed successfully")
}
