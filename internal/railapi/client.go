// Package railapi is the HTTP transport for the rail reservation API. It owns
// response classification and the retry policy so every stage shares one
// resilience model instead of re-implementing its own.
package railapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	EndpointSignIn           = "/v1.0/app/auth/sign-in"
	EndpointSearchTrips      = "/v1.0/app/bookings/search-trips-v2"
	EndpointSeatLayout       = "/v1.0/app/bookings/seat-layout"
	EndpointReserveSeat      = "/v1.0/app/bookings/reserve-seat"
	EndpointPassengerDetails = "/v1.0/app/bookings/passenger-details"
	EndpointVerifyOTP        = "/v1.0/app/bookings/verify-otp"
	EndpointConfirm          = "/v1.0/app/bookings/confirm"
)

var (
	// ErrMalformedResponse marks a 200 that is missing a documented field.
	// Retrying cannot fix a contract mismatch, so it is always terminal.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRetriesExhausted is returned by a bounded Policy once its budget is
	// spent.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// Kind is the transport-level classification of a response.
type Kind int

const (
	KindSuccess Kind = iota
	KindRetryable
	KindBusiness
	KindTerminal
)

// Response is a classified API response. Business is set only for KindBusiness;
// Err carries the transport error for retryable network failures.
type Response struct {
	Kind     Kind
	Status   int
	Body     []byte
	Business *BusinessError
	Err      error
}

// Decode unmarshals the body; failure is a contract mismatch, not a transient
// condition.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Detail renders the response for operator-facing error messages.
func (r *Response) Detail() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return fmt.Sprintf("HTTP %d: %s", r.Status, r.Body)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token. Called once after sign-in, before any
// concurrent use of the client.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Do issues one request and classifies the result. Transport-level failures
// (connection reset, timeout, TLS) classify as retryable; classification never
// returns a Go error so callers handle exactly one shape.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, body any) *Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Response{Kind: KindTerminal, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &Response{Kind: KindTerminal, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &Response{Kind: KindTerminal, Err: ctx.Err()}
		}
		return &Response{Kind: KindRetryable, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &Response{Kind: KindRetryable, Status: res.StatusCode, Err: err}
	}
	return classify(res.StatusCode, data)
}

// Sleep waits d unless the context ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
