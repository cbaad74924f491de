package trip

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhasan91/railbooking/internal/domain"
	"github.com/nhasan91/railbooking/internal/railapi"
)

type TripUseCase interface {
	Resolve(ctx context.Context, req domain.BookingRequest) (*domain.TripContext, error)
}

// Cache is the optional resolved-trip store. A nil Cache disables it.
type Cache interface {
	GetTrip(ctx context.Context, key string) (*domain.TripContext, error)
	SetTrip(ctx context.Context, key string, trip *domain.TripContext) error
}

// Resolver polls the trip search until the requested train appears with the
// requested seat class. The search index lags around opening time, so "no
// match" is a not-yet condition, never an error.
type Resolver struct {
	client *railapi.Client
	cache  Cache
	policy railapi.Policy
}

func NewResolver(client *railapi.Client, cache Cache, policy railapi.Policy) *Resolver {
	return &Resolver{client: client, cache: cache, policy: policy}
}

func (r *Resolver) Resolve(ctx context.Context, req domain.BookingRequest) (*domain.TripContext, error) {
	key := cacheKey(req)
	if r.cache != nil {
		if cached, err := r.cache.GetTrip(ctx, key); err == nil && cached != nil {
			log.Printf("trip resolved from cache: train %s, trip %d, route %d", cached.TrainName, cached.TripID, cached.RouteID)
			return cached, nil
		}
	}

	query := url.Values{
		"from_city":       {req.FromStation},
		"to_city":         {req.ToStation},
		"date_of_journey": {req.JourneyDate},
		"seat_class":      {req.SeatClass},
	}
	log.Printf("fetching trip details for %s to %s on %s", req.FromStation, req.ToStation, req.JourneyDate)

	var trip *domain.TripContext
	err := r.policy.Run(ctx, func() (bool, error) {
		resp := r.client.Do(ctx, http.MethodGet, railapi.EndpointSearchTrips, query, nil)
		switch resp.Kind {
		case railapi.KindSuccess:
			var body railapi.SearchTripsResponse
			if err := resp.Decode(&body); err != nil {
				return false, err
			}
			if len(body.Data.Trains) == 0 {
				log.Printf("trip details not available yet, retrying")
				return false, nil
			}
			if trip = match(body.Data.Trains, req); trip == nil {
				log.Printf("train %d with seat class %s not available yet, retrying", req.TrainNumber, req.SeatClass)
				return false, nil
			}
			return true, nil
		case railapi.KindRetryable:
			log.Printf("search trips: server error, retrying: %s", resp.Detail())
			return false, nil
		default:
			// The search index can answer oddly while it warms up; keep
			// polling on anything that is not a match.
			log.Printf("search trips: unexpected response, retrying: %s", resp.Detail())
			return false, nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("resolve trip: %w", err)
	}

	log.Printf("trip details found: train %s, trip %d, route %d, boarding point %d",
		trip.TrainName, trip.TripID, trip.RouteID, trip.BoardingPointID)
	if r.cache != nil {
		if err := r.cache.SetTrip(ctx, key, trip); err != nil {
			log.Printf("failed to cache trip: %v", err)
		}
	}
	return trip, nil
}

// match picks the first seat-class entry of the requested train. Train number
// plus class is unique, so the first hit wins; the boarding point is the first
// listed one.
func match(trains []railapi.Train, req domain.BookingRequest) *domain.TripContext {
	model := strconv.Itoa(req.TrainNumber)
	for _, train := range trains {
		if train.TrainModel != model {
			continue
		}
		for _, seatType := range train.SeatTypes {
			if seatType.Type != req.SeatClass {
				continue
			}
			trip := &domain.TripContext{
				TripID:    seatType.TripID,
				RouteID:   seatType.TripRouteID,
				TrainName: train.TripNumber,
			}
			if len(train.BoardingPoints) > 0 {
				trip.BoardingPointID = train.BoardingPoints[0].TripPointID
			}
			return trip
		}
	}
	return nil
}

func cacheKey(req domain.BookingRequest) string {
	return strings.Join([]string{
		req.FromStation,
		req.ToStation,
		req.JourneyDate,
		req.SeatClass,
		strconv.Itoa(req.TrainNumber),
	}, "|")
}

var _ TripUseCase = (*Resolver)(nil)
