package railapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_RetryableStatuses(t *testing.T) {
	endpoints := []string{
		EndpointSignIn,
		EndpointSearchTrips,
		EndpointSeatLayout,
		EndpointReserveSeat,
		EndpointPassengerDetails,
		EndpointVerifyOTP,
		EndpointConfirm,
	}

	for _, status := range []int{500, 501, 502, 503, 504} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		client := NewClient(srv.URL, time.Second)

		for _, endpoint := range endpoints {
			resp := client.Do(context.Background(), http.MethodGet, endpoint, nil, nil)
			assert.Equal(t, KindRetryable, resp.Kind, "status %d on %s", status, endpoint)
		}
		srv.Close()
	}
}

func TestClient_Do_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"token":"abc"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	resp := client.Do(context.Background(), http.MethodPost, EndpointSignIn, nil, SignInRequest{MobileNumber: "017", Password: "x"})

	require.Equal(t, KindSuccess, resp.Kind)
	var body SignInResponse
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, "abc", body.Data.Token)
}

func TestClient_Do_SendsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	client.SetToken("tok123")
	client.Do(context.Background(), http.MethodGet, EndpointSearchTrips, nil, nil)

	assert.Equal(t, "Bearer tok123", got)
}

func TestClient_Do_TransportErrorIsRetryable(t *testing.T) {
	// nothing listening here
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond)
	resp := client.Do(context.Background(), http.MethodGet, EndpointSeatLayout, nil, nil)

	assert.Equal(t, KindRetryable, resp.Kind)
	assert.Error(t, resp.Err)
}

func TestClient_Do_UnclassifiedStatusIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	resp := client.Do(context.Background(), http.MethodGet, EndpointSearchTrips, nil, nil)
	assert.Equal(t, KindTerminal, resp.Kind)
}

func TestResponse_Decode_MalformedBody(t *testing.T) {
	resp := &Response{Kind: KindSuccess, Status: 200, Body: []byte("not json")}
	var body SignInResponse
	err := resp.Decode(&body)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestPolicy_Run_Bounded(t *testing.T) {
	attempts := 0
	policy := Policy{MaxRetries: 3, Delay: time.Millisecond}
	err := policy.Run(context.Background(), func() (bool, error) {
		attempts++
		return false, nil
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, 3, attempts)
}

func TestPolicy_Run_StopsOnSuccess(t *testing.T) {
	attempts := 0
	policy := Policy{Delay: time.Millisecond}
	err := policy.Run(context.Background(), func() (bool, error) {
		attempts++
		return attempts == 4, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, attempts)
}

func TestPolicy_Run_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := Policy{Delay: time.Minute}
	err := policy.Run(ctx, func() (bool, error) { return false, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
