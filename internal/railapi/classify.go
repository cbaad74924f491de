package railapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The API reports overload on any of these; 501 only shows up on the
// seat-layout endpoint but retrying it is harmless everywhere.
var retryableStatuses = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusNotImplemented:      true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func classify(status int, body []byte) *Response {
	resp := &Response{Status: status, Body: body}
	switch {
	case status == http.StatusOK:
		resp.Kind = KindSuccess
	case retryableStatuses[status]:
		resp.Kind = KindRetryable
	case status == http.StatusUnprocessableEntity:
		if biz := parseBusinessError(status, body); biz != nil {
			resp.Kind = KindBusiness
			resp.Business = biz
		} else {
			resp.Kind = KindTerminal
		}
	default:
		resp.Kind = KindTerminal
	}
	return resp
}

// BusinessError is a structured 422: a server-declared rule violation rather
// than a transport fault.
type BusinessError struct {
	Status  int
	Key     string
	Message string
}

func (e *BusinessError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s (errorKey: %s)", e.Message, e.Key)
	}
	return e.Message
}

// NotOpenYet matches the "booking not open" message; the poller keeps polling
// through it.
func (e *BusinessError) NotOpenYet() bool {
	return strings.Contains(e.Message, "ticket purchase for this trip will be available")
}

// OrderLimitExceeded reports the per-route booking cap for this account.
func (e *BusinessError) OrderLimitExceeded() bool {
	return e.Key == "OrderLimitExceeded"
}

// SeatLimitExceeded matches the per-transaction seat cap on reserve-seat.
func (e *BusinessError) SeatLimitExceeded() bool {
	return strings.Contains(e.Message, "Maximum 4 seats can be booked at a time")
}

// TicketUnavailable matches a seat taken between layout snapshot and reserve.
func (e *BusinessError) TicketUnavailable() bool {
	return strings.Contains(e.Message, "ticket is not available now")
}

// OTPMismatch reports a wrong one-time password; the flow re-prompts on it.
func (e *BusinessError) OTPMismatch() bool {
	return e.Key == "OtpNotVerified"
}

var countdownPattern = regexp.MustCompile(`(?i)(\d+)\s*minute[s]?\s*(\d+)\s*second[s]?`)

// Countdown extracts a server-supplied "available in N minutes M seconds" wait
// from the free-text message.
func (e *BusinessError) Countdown() (time.Duration, bool) {
	m := countdownPattern.FindStringSubmatch(e.Message)
	if m == nil {
		return 0, false
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, true
}

// The error envelope varies by endpoint: messages is either an object with
// message/errorKey (or error_msg on reserve-seat) or a plain list of strings.
type errorEnvelope struct {
	Error struct {
		Messages json.RawMessage `json:"messages"`
	} `json:"error"`
}

func parseBusinessError(status int, body []byte) *BusinessError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error.Messages) == 0 {
		return nil
	}

	var obj struct {
		Message  string `json:"message"`
		ErrorMsg string `json:"error_msg"`
		ErrorKey string `json:"errorKey"`
	}
	if err := json.Unmarshal(env.Error.Messages, &obj); err == nil {
		message := obj.Message
		if message == "" {
			message = obj.ErrorMsg
		}
		if message != "" || obj.ErrorKey != "" {
			return &BusinessError{Status: status, Key: obj.ErrorKey, Message: message}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(env.Error.Messages, &list); err == nil && len(list) > 0 {
		return &BusinessError{Status: status, Message: list[0]}
	}
	return nil
}
