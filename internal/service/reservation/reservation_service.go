package reservation

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nhasan91/railbooking/internal/domain"
	"github.com/nhasan91/railbooking/internal/railapi"
)

type ReservationUseCase interface {
	Reserve(ctx context.Context, selection domain.SeatSelection, routeID int64) (*Result, error)
}

// ErrNoSeatsReserved means every attempt failed; the run cannot continue.
var ErrNoSeatsReserved = errors.New("no seats could be reserved")

// Result aggregates per-ticket outcomes. Succeeded preserves selection order.
type Result struct {
	Succeeded []int64
	Outcomes  []domain.ReservationOutcome
	Stopped   bool
}

// Executor locks each selected ticket. Per-ticket attempts are independent
// except for the shared stop flag: once the server reports the per-transaction
// seat cap, no new attempt starts.
type Executor struct {
	client     *railapi.Client
	retryDelay time.Duration
	concurrent bool
}

func NewExecutor(client *railapi.Client, retryDelay time.Duration, concurrent bool) *Executor {
	return &Executor{client: client, retryDelay: retryDelay, concurrent: concurrent}
}

func (e *Executor) Reserve(ctx context.Context, selection domain.SeatSelection, routeID int64) (*Result, error) {
	log.Printf("initiating seat reservation for %d tickets", len(selection))

	outcomes := make([]domain.ReservationOutcome, len(selection))
	var stop atomic.Bool

	if e.concurrent {
		var wg sync.WaitGroup
		for i, seat := range selection {
			wg.Add(1)
			go func(i int, seat domain.SelectedSeat) {
				defer wg.Done()
				if stop.Load() {
					outcomes[i] = skipped(seat)
					return
				}
				outcomes[i] = e.reserveOne(ctx, seat, routeID, &stop)
			}(i, seat)
		}
		wg.Wait()
	} else {
		for i, seat := range selection {
			if stop.Load() {
				outcomes[i] = skipped(seat)
				continue
			}
			outcomes[i] = e.reserveOne(ctx, seat, routeID, &stop)
			if outcomes[i].Status == domain.ReservationRejected {
				if err := railapi.Sleep(ctx, e.retryDelay); err != nil {
					return nil, err
				}
			}
		}
	}

	result := &Result{Outcomes: outcomes, Stopped: stop.Load()}
	for _, outcome := range outcomes {
		if outcome.Status == domain.ReservationReserved {
			result.Succeeded = append(result.Succeeded, outcome.TicketID)
		}
	}
	if len(result.Succeeded) == 0 {
		return result, ErrNoSeatsReserved
	}
	log.Printf("successfully reserved %d of %d tickets", len(result.Succeeded), len(selection))
	return result, nil
}

func (e *Executor) reserveOne(ctx context.Context, seat domain.SelectedSeat, routeID int64, stop *atomic.Bool) domain.ReservationOutcome {
	body := railapi.ReserveSeatRequest{TicketID: seat.TicketID, RouteID: routeID}
	for {
		resp := e.client.Do(ctx, http.MethodPatch, railapi.EndpointReserveSeat, nil, body)
		switch resp.Kind {
		case railapi.KindSuccess:
			var ack railapi.ReserveSeatResponse
			if err := resp.Decode(&ack); err != nil || ack.Data.Ack != 1 {
				// a 200 without the acknowledgment is an explicit decline
				log.Printf("seat %s (ticket %d) declined: %s", seat.SeatNumber, seat.TicketID, resp.Body)
				return rejected(seat, "declined by server")
			}
			log.Printf("seat %s (ticket %d) reserved", seat.SeatNumber, seat.TicketID)
			return domain.ReservationOutcome{TicketID: seat.TicketID, SeatNumber: seat.SeatNumber, Status: domain.ReservationReserved}

		case railapi.KindBusiness:
			biz := resp.Business
			switch {
			case biz.SeatLimitExceeded():
				log.Printf("seat %s (ticket %d): %s; stopping further reservations", seat.SeatNumber, seat.TicketID, biz.Message)
				stop.Store(true)
				return skipped(seat)
			case biz.TicketUnavailable():
				log.Printf("seat %s (ticket %d) is not available now, skipping", seat.SeatNumber, seat.TicketID)
				return rejected(seat, biz.Message)
			default:
				log.Printf("seat %s (ticket %d) rejected: %s", seat.SeatNumber, seat.TicketID, biz)
				return rejected(seat, biz.Message)
			}

		case railapi.KindRetryable:
			log.Printf("seat %s (ticket %d): server overloaded, retrying: %s", seat.SeatNumber, seat.TicketID, resp.Detail())
			if err := railapi.Sleep(ctx, e.retryDelay); err != nil {
				return rejected(seat, err.Error())
			}

		default:
			log.Printf("seat %s (ticket %d) failed: %s", seat.SeatNumber, seat.TicketID, resp.Detail())
			return rejected(seat, resp.Detail())
		}
	}
}

func rejected(seat domain.SelectedSeat, reason string) domain.ReservationOutcome {
	return domain.ReservationOutcome{
		TicketID:   seat.TicketID,
		SeatNumber: seat.SeatNumber,
		Status:     domain.ReservationRejected,
		Reason:     reason,
	}
}

func skipped(seat domain.SelectedSeat) domain.ReservationOutcome {
	return domain.ReservationOutcome{
		TicketID:   seat.TicketID,
		SeatNumber: seat.SeatNumber,
		Status:     domain.ReservationLimitStopped,
		Reason:     "seat limit reached for this transaction",
	}
}

var _ ReservationUseCase = (*Executor)(nil)
