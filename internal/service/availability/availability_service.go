package availability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/nhasan91/railbooking/internal/domain"
	"github.com/nhasan91/railbooking/internal/railapi"
)

type AvailabilityUseCase interface {
	Poll(ctx context.Context, trip *domain.TripContext) ([]domain.Coach, error)
}

// ErrOrderLimitExceeded means this account already holds the maximum bookings
// for the route and date. The run cannot proceed.
var ErrOrderLimitExceeded = errors.New("maximum ticket booking limit reached for this route and date")

// State of the polling machine. Polling and NotOpenYet both continue the loop;
// the other three end it.
type State int

const (
	StatePolling State = iota
	StateNotOpenYet
	StateAvailable
	StateLimitExceeded
	StateFatal
)

// Poller requests the seat layout until the server publishes it. The minimum
// loop interval bounds the request rate: elapsed call time is measured and any
// shortfall slept before the next attempt.
type Poller struct {
	client      *railapi.Client
	minInterval time.Duration
}

func NewPoller(client *railapi.Client, minInterval time.Duration) *Poller {
	return &Poller{client: client, minInterval: minInterval}
}

func (p *Poller) Poll(ctx context.Context, trip *domain.TripContext) ([]domain.Coach, error) {
	body := railapi.SeatLayoutRequest{TripID: trip.TripID, TripRouteID: trip.RouteID}
	log.Printf("waiting for seat layout availability")

	for {
		start := time.Now()
		resp := p.client.Do(ctx, http.MethodGet, railapi.EndpointSeatLayout, nil, body)

		state, layout, err := p.step(resp)
		switch state {
		case StateAvailable:
			log.Printf("booking is now available")
			return layout, nil
		case StateLimitExceeded, StateFatal:
			return nil, err
		}

		if elapsed := time.Since(start); elapsed < p.minInterval {
			if err := railapi.Sleep(ctx, p.minInterval-elapsed); err != nil {
				return nil, err
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

func (p *Poller) step(resp *railapi.Response) (State, []domain.Coach, error) {
	switch resp.Kind {
	case railapi.KindSuccess:
		var body railapi.SeatLayoutResponse
		if err := resp.Decode(&body); err != nil {
			log.Printf("seat layout: undecodable 200, retrying: %v", err)
			return StatePolling, nil, nil
		}
		if len(body.Data.SeatLayout) == 0 {
			return StatePolling, nil, nil
		}
		return StateAvailable, toDomain(body.Data.SeatLayout), nil

	case railapi.KindRetryable:
		log.Printf("seat layout: server overloaded, retrying: %s", resp.Detail())
		return StatePolling, nil, nil

	case railapi.KindBusiness:
		return p.stepBusiness(resp.Business)

	default:
		// Unknown statuses have been observed to clear on their own while the
		// booking window opens; keep polling.
		log.Printf("seat layout: unexpected response, retrying: %s", resp.Detail())
		return StatePolling, nil, nil
	}
}

func (p *Poller) stepBusiness(biz *railapi.BusinessError) (State, []domain.Coach, error) {
	switch {
	case biz.NotOpenYet():
		return StateNotOpenYet, nil, nil
	case biz.OrderLimitExceeded():
		return StateLimitExceeded, nil, ErrOrderLimitExceeded
	default:
		if wait, ok := biz.Countdown(); ok {
			retryAt := time.Now().Add(wait)
			log.Printf("booking opens later: %s; current time %s, try again after %s",
				biz.Message, time.Now().Format("03:04:05 PM"), retryAt.Format("03:04:05 PM"))
			return StateFatal, nil, fmt.Errorf("booking not open, try again after %s: %s", retryAt.Format("03:04:05 PM"), biz.Message)
		}
		return StateFatal, nil, fmt.Errorf("seat layout unavailable: %w", biz)
	}
}

func toDomain(coaches []railapi.CoachLayout) []domain.Coach {
	out := make([]domain.Coach, 0, len(coaches))
	for _, coach := range coaches {
		rows := make([][]domain.Seat, 0, len(coach.Layout))
		for _, row := range coach.Layout {
			seats := make([]domain.Seat, 0, len(row))
			for _, cell := range row {
				seats = append(seats, domain.Seat{
					TicketID:     cell.TicketID,
					SeatNumber:   cell.SeatNumber,
					Availability: cell.SeatAvailability,
				})
			}
			rows = append(rows, seats)
		}
		out = append(out, domain.Coach{Name: coach.FloorName, Rows: rows})
	}
	return out
}

var _ AvailabilityUseCase = (*Poller)(nil)
