package checkout

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/nhasan91/railbooking/internal/domain"
	"github.com/nhasan91/railbooking/internal/railapi"
)

type CheckoutUseCase interface {
	Complete(ctx context.Context, req domain.BookingRequest, session *domain.Session, trip *domain.TripContext, ticketIDs []int64) (string, error)
}

// OTPPrompter supplies the one-time password. correction is true when the
// previous value was rejected.
type OTPPrompter interface {
	OTP(ctx context.Context, correction bool) (string, error)
}

// PaymentSelector supplies the raw payment menu choice; the flow validates it
// and re-prompts on garbage.
type PaymentSelector interface {
	PaymentChoice(ctx context.Context) (string, error)
}

// PassengerNamer supplies names for passengers beyond the account holder.
// index is 1-based and counts from the second passenger.
type PassengerNamer interface {
	PassengerName(ctx context.Context, index int) (string, error)
}

// RedirectOpener hands the payment URL to the operator's browser. The flow's
// responsibility ends at producing the URL.
type RedirectOpener interface {
	Open(url string) error
}

// Flow drives checkout: passenger details, OTP verification, payment method
// selection, confirmation.
type Flow struct {
	client   *railapi.Client
	policy   railapi.Policy
	otp      OTPPrompter
	payments PaymentSelector
	namer    PassengerNamer
	opener   RedirectOpener
}

func NewFlow(client *railapi.Client, policy railapi.Policy, otp OTPPrompter, payments PaymentSelector, namer PassengerNamer, opener RedirectOpener) *Flow {
	return &Flow{client: client, policy: policy, otp: otp, payments: payments, namer: namer, opener: opener}
}

func (f *Flow) Complete(ctx context.Context, req domain.BookingRequest, session *domain.Session, trip *domain.TripContext, ticketIDs []int64) (string, error) {
	if err := f.submitDetails(ctx, trip, ticketIDs); err != nil {
		return "", err
	}

	otp, err := f.verifyOTP(ctx, trip, ticketIDs)
	if err != nil {
		return "", err
	}

	method, err := f.selectPayment(ctx)
	if err != nil {
		return "", err
	}
	log.Printf("payment method selected: %s", method.Name())

	payload, err := f.confirmPayload(ctx, req, session, trip, ticketIDs, otp, method)
	if err != nil {
		return "", err
	}

	redirectURL, err := f.confirm(ctx, payload)
	if err != nil {
		return "", err
	}

	log.Printf("booking confirmed; the payment link can be used only once")
	if err := f.opener.Open(redirectURL); err != nil {
		log.Printf("failed to open payment page: %v", err)
	}
	return redirectURL, nil
}

// submitDetails posts passenger/contact info, which triggers the OTP send.
func (f *Flow) submitDetails(ctx context.Context, trip *domain.TripContext, ticketIDs []int64) error {
	body := railapi.PassengerDetailsRequest{TripID: trip.TripID, TripRouteID: trip.RouteID, TicketIDs: ticketIDs}
	return f.policy.Run(ctx, func() (bool, error) {
		resp := f.client.Do(ctx, http.MethodPost, railapi.EndpointPassengerDetails, nil, body)
		switch resp.Kind {
		case railapi.KindSuccess:
			var ack railapi.PassengerDetailsResponse
			if err := resp.Decode(&ack); err != nil {
				return false, err
			}
			if !ack.Data.Success {
				return false, fmt.Errorf("passenger details declined: %s", resp.Body)
			}
			log.Printf("OTP sent successfully")
			return true, nil
		case railapi.KindRetryable:
			log.Printf("passenger details: server overloaded, retrying: %s", resp.Detail())
			return false, nil
		default:
			return false, fmt.Errorf("passenger details failed: %s", resp.Detail())
		}
	})
}

// verifyOTP loops until the server accepts an OTP. A mismatch re-prompts and
// retries without bound; anything else terminal aborts the run.
func (f *Flow) verifyOTP(ctx context.Context, trip *domain.TripContext, ticketIDs []int64) (string, error) {
	otp, err := f.otp.OTP(ctx, false)
	if err != nil {
		return "", err
	}

	for {
		body := railapi.VerifyOTPRequest{TripID: trip.TripID, TripRouteID: trip.RouteID, TicketIDs: ticketIDs, OTP: otp}
		resp := f.client.Do(ctx, http.MethodPost, railapi.EndpointVerifyOTP, nil, body)
		switch resp.Kind {
		case railapi.KindSuccess:
			var ack railapi.VerifyOTPResponse
			if err := resp.Decode(&ack); err != nil {
				return "", err
			}
			if !ack.Data.Success {
				return "", fmt.Errorf("OTP verification declined: %s", resp.Body)
			}
			log.Printf("OTP verified successfully")
			return otp, nil

		case railapi.KindBusiness:
			if resp.Business.OTPMismatch() {
				log.Printf("OTP does not match: %s", resp.Business)
				if otp, err = f.otp.OTP(ctx, true); err != nil {
					return "", err
				}
				continue
			}
			return "", fmt.Errorf("OTP verification failed: %w", resp.Business)

		case railapi.KindRetryable:
			log.Printf("verify OTP: server overloaded, retrying: %s", resp.Detail())
			if err := railapi.Sleep(ctx, f.policy.Delay); err != nil {
				return "", err
			}

		default:
			return "", fmt.Errorf("OTP verification failed: %s", resp.Detail())
		}
	}
}

// selectPayment re-prompts until the choice parses; invalid input is never
// fatal.
func (f *Flow) selectPayment(ctx context.Context) (domain.PaymentMethod, error) {
	for {
		raw, err := f.payments.PaymentChoice(ctx)
		if err != nil {
			return 0, err
		}
		if method, ok := domain.ParsePaymentMethod(raw); ok {
			return method, nil
		}
		log.Printf("invalid selection %q: enter a number between 1 and 7", raw)
	}
}

func (f *Flow) confirmPayload(ctx context.Context, req domain.BookingRequest, session *domain.Session, trip *domain.TripContext, ticketIDs []int64, otp string, method domain.PaymentMethod) (*railapi.ConfirmRequest, error) {
	names := []string{session.DisplayName}
	for i := 1; i < len(ticketIDs); i++ {
		name, err := f.namer.PassengerName(ctx, i+1)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	passengerType := make([]string, len(ticketIDs))
	gender := make([]string, len(ticketIDs))
	for i := range ticketIDs {
		passengerType[i] = "Adult"
		gender[i] = "male"
	}

	payload := &railapi.ConfirmRequest{
		BoardingPointID: trip.BoardingPointID,
		FromCity:        req.FromStation,
		ToCity:          req.ToStation,
		DateOfJourney:   req.JourneyDate,
		SeatClass:       req.SeatClass,
		PassengerType:   passengerType,
		Gender:          gender,
		PassengerNames:  names,
		ContactMobile:   session.Phone,
		ContactEmail:    session.Email,
		TripID:          trip.TripID,
		TripRouteID:     trip.RouteID,
		TicketIDs:       ticketIDs,
		ContactPerson:   0,
		OTP:             otp,
	}
	applyPayment(payload, method)
	return payload, nil
}

// applyPayment sets the mutually exclusive payment fields for the chosen
// gateway.
func applyPayment(payload *railapi.ConfirmRequest, method domain.PaymentMethod) {
	payload.IsBkashOnline = method == domain.PaymentBkash
	if method.Wallet() {
		payload.SelectedMobileTransaction = method.TransactionChannel()
		payload.PaymentGateway = ""
		return
	}
	payload.SelectedMobileTransaction = 0
	payload.PaymentGateway = method.Gateway()
}

func (f *Flow) confirm(ctx context.Context, payload *railapi.ConfirmRequest) (string, error) {
	var redirectURL string
	err := f.policy.Run(ctx, func() (bool, error) {
		resp := f.client.Do(ctx, http.MethodPatch, railapi.EndpointConfirm, nil, payload)
		switch resp.Kind {
		case railapi.KindSuccess:
			var body railapi.ConfirmResponse
			if err := resp.Decode(&body); err != nil {
				return false, err
			}
			if body.Data.RedirectURL == "" {
				return false, fmt.Errorf("%w: confirm succeeded without a redirect URL: %s", railapi.ErrMalformedResponse, resp.Body)
			}
			redirectURL = body.Data.RedirectURL
			return true, nil
		case railapi.KindRetryable:
			log.Printf("confirm: server overloaded, retrying: %s", resp.Detail())
			return false, nil
		default:
			return false, fmt.Errorf("confirm failed: %s", resp.Detail())
		}
	})
	return redirectURL, err
}

var _ CheckoutUseCase = (*Flow)(nil)
