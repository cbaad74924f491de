package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nhasan91/railbooking/internal/domain"
	"github.com/nhasan91/railbooking/internal/notify"
	"github.com/nhasan91/railbooking/internal/service/reservation"
)

// ErrNoSeatsFound means the allocator could not find a single available seat.
var ErrNoSeatsFound = errors.New("no seats available to proceed")

type Authenticator interface {
	SignIn(ctx context.Context, mobile, password string) (*domain.Session, error)
}

type TripResolver interface {
	Resolve(ctx context.Context, req domain.BookingRequest) (*domain.TripContext, error)
}

type AvailabilityPoller interface {
	Poll(ctx context.Context, trip *domain.TripContext) ([]domain.Coach, error)
}

type ReservationExecutor interface {
	Reserve(ctx context.Context, selection domain.SeatSelection, routeID int64) (*reservation.Result, error)
}

type CheckoutFlow interface {
	Complete(ctx context.Context, req domain.BookingRequest, session *domain.Session, trip *domain.TripContext, ticketIDs []int64) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, event notify.BookingEvent) error
}

// Allocator is the pure seat-selection function.
type Allocator func(layout []domain.Coach, desired []string, count int) domain.SeatSelection

// Deps wires the pipeline stages. Every field is required except Notify.
type Deps struct {
	RunID    string
	Request  domain.BookingRequest
	Auth     Authenticator
	Trips    TripResolver
	Layout   AvailabilityPoller
	Allocate Allocator
	Reserve  ReservationExecutor
	Checkout CheckoutFlow
	Notify   Notifier
}

// Run executes the purchase pipeline stage by stage and stops at the first
// terminal failure. Transient faults never reach here; each stage retries
// those internally.
func Run(ctx context.Context, deps Deps) error {
	req := deps.Request

	log.Printf("run %s: signing in as %s", deps.RunID, req.MobileNumber)
	session, err := deps.Auth.SignIn(ctx, req.MobileNumber, req.Password)
	if err != nil {
		return fmt.Errorf("authentication: %w", err)
	}
	if session.Email != "" || session.DisplayName != "" {
		log.Printf("signed in as %s (%s, %s)", session.DisplayName, session.Email, session.Phone)
	}

	trip, err := deps.Trips.Resolve(ctx, req)
	if err != nil {
		return fmt.Errorf("trip resolution: %w", err)
	}

	layout, err := deps.Layout.Poll(ctx, trip)
	if err != nil {
		return fmt.Errorf("seat layout: %w", err)
	}

	selection := deps.Allocate(layout, req.DesiredSeats, req.SeatCount)
	if len(selection) == 0 {
		return ErrNoSeatsFound
	}
	if len(selection) < req.SeatCount {
		log.Printf("warning: proceeding with %d seats instead of %d", len(selection), req.SeatCount)
	}
	log.Printf("seats matched: %v", selection.SeatNumbers())

	result, err := deps.Reserve.Reserve(ctx, selection, trip.RouteID)
	if err != nil {
		return fmt.Errorf("reservation: %w", err)
	}

	redirectURL, err := deps.Checkout.Complete(ctx, req, session, trip, result.Succeeded)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if deps.Notify != nil {
		event := notify.BookingEvent{
			RunID:      deps.RunID,
			TrainName:  trip.TrainName,
			TicketIDs:  result.Succeeded,
			PaymentURL: redirectURL,
		}
		for _, seat := range selection {
			for _, id := range result.Succeeded {
				if seat.TicketID == id {
					event.SeatNumbers = append(event.SeatNumbers, seat.SeatNumber)
				}
			}
		}
		if err := deps.Notify.Send(ctx, event); err != nil {
			log.Printf("failed to send booking summary: %v", err)
		}
	}
	return nil
}
