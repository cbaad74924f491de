package domain

// TripContext identifies the resolved trip. Every stage after trip resolution
// needs it; it is immutable once created.
type TripContext struct {
	TripID          int64  `json:"trip_id"`
	RouteID         int64  `json:"route_id"`
	BoardingPointID int64  `json:"boarding_point_id"`
	TrainName       string `json:"train_name"`
}

// Seat is one slot in the layout grid. Availability is whatever the server
// sent; only the value 1 means bookable.
type Seat struct {
	TicketID     int64
	SeatNumber   string
	Availability int
}

func (s Seat) Available() bool {
	return s.Availability == 1
}

// Coach is one car of the layout: a name and a 2-D grid of seats in server
// order.
type Coach struct {
	Name string
	Rows [][]Seat
}

// SelectedSeat pairs the server ticket id with the human-readable seat number.
type SelectedSeat struct {
	TicketID   int64
	SeatNumber string
}

// SeatSelection is the allocator output, in the order reservation attempts
// should run.
type SeatSelection []SelectedSeat

func (s SeatSelection) TicketIDs() []int64 {
	ids := make([]int64, 0, len(s))
	for _, seat := range s {
		ids = append(ids, seat.TicketID)
	}
	return ids
}

func (s SeatSelection) SeatNumbers() []string {
	numbers := make([]string, 0, len(s))
	for _, seat := range s {
		numbers = append(numbers, seat.SeatNumber)
	}
	return numbers
}

// HasSeat reports whether a seat number is already part of the selection.
// Selections are deduplicated by seat number, not ticket id.
func (s SeatSelection) HasSeat(number string) bool {
	for _, seat := range s {
		if seat.SeatNumber == number {
			return true
		}
	}
	return false
}
