package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
booking:
  mobile_number: "01712345678"
  password: secret
  from_station: Dhaka
  to_station: Chattogram
  journey_date: 15-Sep-2026
  seat_class: S_CHAIR
  train_number: 788
  seat_count: 2
  desired_seats: [KHA-3, KHA-4]
api:
  base_url: http://localhost:8080
  timeout_seconds: 5
  auth_max_retries: 3
redis:
  addr: localhost:6379
  trip_ttl_minutes: 10
reservation:
  concurrent: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "01712345678", cfg.Booking.MobileNumber)
	assert.Equal(t, []string{"KHA-3", "KHA-4"}, cfg.Booking.DesiredSeats)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	assert.Equal(t, 3, cfg.API.AuthMaxRetries)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10, cfg.Redis.TripTTLMinutes)
	assert.True(t, cfg.Reservation.Concurrent)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
booking:
  mobile_number: "01712345678"
  password: secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://railspaapi.shohoz.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, 50, cfg.API.AuthMaxRetries)
	assert.Equal(t, 30, cfg.Redis.TripTTLMinutes)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Reservation.Concurrent)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "booking: [not: a, mapping")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestBookingConfig_Request(t *testing.T) {
	valid := BookingConfig{
		MobileNumber: "01712345678",
		Password:     "secret",
		FromStation:  "Dhaka",
		ToStation:    "Chattogram",
		JourneyDate:  "15-Sep-2026",
		SeatClass:    "S_CHAIR",
		TrainNumber:  788,
		SeatCount:    2,
	}

	req, err := valid.Request()
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", req.FromStation)
	assert.Equal(t, 788, req.TrainNumber)
	assert.Equal(t, 2, req.SeatCount)

	tests := []struct {
		name    string
		mutate  func(*BookingConfig)
		wantErr string
	}{
		{"missing mobile", func(b *BookingConfig) { b.MobileNumber = "" }, "booking.mobile_number is required"},
		{"missing password", func(b *BookingConfig) { b.Password = "" }, "booking.password is required"},
		{"missing origin", func(b *BookingConfig) { b.FromStation = "" }, "booking.from_station is required"},
		{"missing destination", func(b *BookingConfig) { b.ToStation = "" }, "booking.to_station is required"},
		{"missing date", func(b *BookingConfig) { b.JourneyDate = "" }, "booking.journey_date is required"},
		{"missing class", func(b *BookingConfig) { b.SeatClass = "" }, "booking.seat_class is required"},
		{"zero train number", func(b *BookingConfig) { b.TrainNumber = 0 }, "booking.train_number must be positive"},
		{"zero seat count", func(b *BookingConfig) { b.SeatCount = 0 }, "booking.seat_count must be positive"},
		{"negative seat count", func(b *BookingConfig) { b.SeatCount = -1 }, "booking.seat_count must be positive"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			_, err := cfg.Request()
			require.Error(t, err)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
