package railapi

// Request and response bodies per endpoint. Field names mirror the wire format
// exactly; do not rename without checking the API.

type SignInRequest struct {
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

type SignInResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

type SearchTripsResponse struct {
	Data struct {
		Trains []Train `json:"trains"`
	} `json:"data"`
}

type Train struct {
	TrainModel     string          `json:"train_model"`
	TripNumber     string          `json:"trip_number"`
	SeatTypes      []SeatType      `json:"seat_types"`
	BoardingPoints []BoardingPoint `json:"boarding_points"`
}

type SeatType struct {
	Type        string `json:"type"`
	TripID      int64  `json:"trip_id"`
	TripRouteID int64  `json:"trip_route_id"`
}

type BoardingPoint struct {
	TripPointID  int64  `json:"trip_point_id"`
	LocationName string `json:"location_name"`
}

// SeatLayoutRequest travels as a JSON body on a GET; the upstream API reads it
// that way.
type SeatLayoutRequest struct {
	TripID      int64 `json:"trip_id"`
	TripRouteID int64 `json:"trip_route_id"`
}

type SeatLayoutResponse struct {
	Data struct {
		SeatLayout []CoachLayout `json:"seatLayout"`
	} `json:"data"`
}

type CoachLayout struct {
	FloorName string       `json:"floor_name"`
	Layout    [][]SeatCell `json:"layout"`
}

type SeatCell struct {
	TicketID         int64  `json:"ticket_id"`
	SeatNumber       string `json:"seat_number"`
	SeatAvailability int    `json:"seat_availability"`
}

type ReserveSeatRequest struct {
	TicketID int64 `json:"ticket_id"`
	RouteID  int64 `json:"route_id"`
}

type ReserveSeatResponse struct {
	Data struct {
		Ack int `json:"ack"`
	} `json:"data"`
}

type PassengerDetailsRequest struct {
	TripID      int64   `json:"trip_id"`
	TripRouteID int64   `json:"trip_route_id"`
	TicketIDs   []int64 `json:"ticket_ids"`
}

type PassengerDetailsResponse struct {
	Data struct {
		Success bool `json:"success"`
	} `json:"data"`
}

type VerifyOTPRequest struct {
	TripID      int64   `json:"trip_id"`
	TripRouteID int64   `json:"trip_route_id"`
	TicketIDs   []int64 `json:"ticket_ids"`
	OTP         string  `json:"otp"`
}

type VerifyOTPResponse struct {
	Data struct {
		Success bool `json:"success"`
	} `json:"data"`
}

// ConfirmRequest carries the full checkout payload. The payment fields are
// mutually exclusive: wallet methods set SelectedMobileTransaction, card
// methods set PaymentGateway instead.
type ConfirmRequest struct {
	IsBkashOnline             bool     `json:"is_bkash_online"`
	BoardingPointID           int64    `json:"boarding_point_id"`
	FromCity                  string   `json:"from_city"`
	ToCity                    string   `json:"to_city"`
	DateOfJourney             string   `json:"date_of_journey"`
	SeatClass                 string   `json:"seat_class"`
	PassengerType             []string `json:"passengerType"`
	Gender                    []string `json:"gender"`
	PassengerNames            []string `json:"pname"`
	ContactMobile             string   `json:"pmobile"`
	ContactEmail              string   `json:"pemail"`
	TripID                    int64    `json:"trip_id"`
	TripRouteID               int64    `json:"trip_route_id"`
	TicketIDs                 []int64  `json:"ticket_ids"`
	ContactPerson             int      `json:"contactperson"`
	OTP                       string   `json:"otp"`
	SelectedMobileTransaction int      `json:"selected_mobile_transaction,omitempty"`
	PaymentGateway            string   `json:"pg,omitempty"`
}

type ConfirmResponse struct {
	Data struct {
		RedirectURL string `json:"redirectUrl"`
	} `json:"data"`
}
