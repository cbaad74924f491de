package domain

// BookingRequest holds the parameters for one purchase run. It is supplied by an
// external provider (the config file) and never mutated afterwards.
type BookingRequest struct {
	MobileNumber string
	Password     string
	FromStation  string
	ToStation    string
	JourneyDate  string
	SeatClass    string
	TrainNumber  int
	SeatCount    int
	DesiredSeats []string
}

// Session is the authenticated identity for the run: the bearer token plus the
// display fields decoded from it. Created once, read-only afterwards.
type Session struct {
	Token       string
	Email       string
	Phone       string
	DisplayName string
}

type ReservationStatus string

const (
	ReservationReserved     ReservationStatus = "RESERVED"
	ReservationRejected     ReservationStatus = "REJECTED"
	ReservationLimitStopped ReservationStatus = "LIMIT_STOPPED"
)

type ReservationOutcome struct {
	TicketID   int64
	SeatNumber string
	Status     ReservationStatus
	Reason     string
}

// PaymentMethod enumerates the gateways the confirm endpoint accepts. The zero
// value is invalid.
type PaymentMethod int

const (
	PaymentBkash PaymentMethod = iota + 1
	PaymentNagad
	PaymentRocket
	PaymentUpay
	PaymentVisa
	PaymentMastercard
	PaymentNexus
)

var paymentNames = map[PaymentMethod]string{
	PaymentBkash:      "bKash",
	PaymentNagad:      "Nagad",
	PaymentRocket:     "Rocket",
	PaymentUpay:       "Upay",
	PaymentVisa:       "VISA",
	PaymentMastercard: "Mastercard",
	PaymentNexus:      "DBBL Nexus",
}

func (m PaymentMethod) Name() string {
	return paymentNames[m]
}

// Wallet reports whether the method is a mobile-wallet gateway (bKash, Nagad,
// Rocket, Upay) as opposed to a card gateway.
func (m PaymentMethod) Wallet() bool {
	switch m {
	case PaymentBkash, PaymentNagad, PaymentRocket, PaymentUpay:
		return true
	}
	return false
}

// Gateway returns the pg code for card methods, empty otherwise.
func (m PaymentMethod) Gateway() string {
	switch m {
	case PaymentVisa:
		return "visa"
	case PaymentMastercard:
		return "mastercard"
	case PaymentNexus:
		return "nexus"
	}
	return ""
}

// TransactionChannel returns the selected_mobile_transaction code for wallet
// methods, zero otherwise. bKash is the default online channel.
func (m PaymentMethod) TransactionChannel() int {
	switch m {
	case PaymentBkash:
		return 1
	case PaymentNagad:
		return 3
	case PaymentRocket:
		return 4
	case PaymentUpay:
		return 5
	}
	return 0
}

// ParsePaymentMethod maps the raw menu input ("1".."7") to a method.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch raw {
	case "1":
		return PaymentBkash, true
	case "2":
		return PaymentNagad, true
	case "3":
		return PaymentRocket, true
	case "4":
		return PaymentUpay, true
	case "5":
		return PaymentVisa, true
	case "6":
		return PaymentMastercard, true
	case "7":
		return PaymentNexus, true
	}
	return 0, false
}
