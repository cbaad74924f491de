package notify

import (
	"context"
	"fmt"
	"strings"
)

// BookingEvent is the final summary of a completed run.
type BookingEvent struct {
	RunID       string
	TrainName   string
	SeatNumbers []string
	TicketIDs   []int64
	PaymentURL  string
}

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event BookingEvent) error {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Booking completed (run %s)\n", event.RunID)
	fmt.Printf("Train: %s\n", event.TrainName)
	fmt.Printf("Seats: %s\n", strings.Join(event.SeatNumbers, ", "))
	fmt.Printf("Payment URL (usable only once): %s\n", event.PaymentURL)
	fmt.Println(strings.Repeat("=", 50))
	return nil
}
