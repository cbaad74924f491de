package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nhasan91/railbooking/internal/domain"
)

type Config struct {
	Booking     BookingConfig     `yaml:"booking"`
	API         APIConfig         `yaml:"api"`
	Redis       RedisConfig       `yaml:"redis"`
	Reservation ReservationConfig `yaml:"reservation"`
}

type BookingConfig struct {
	MobileNumber string   `yaml:"mobile_number"`
	Password     string   `yaml:"password"`
	FromStation  string   `yaml:"from_station"`
	ToStation    string   `yaml:"to_station"`
	JourneyDate  string   `yaml:"journey_date"`
	SeatClass    string   `yaml:"seat_class"`
	TrainNumber  int      `yaml:"train_number"`
	SeatCount    int      `yaml:"seat_count"`
	DesiredSeats []string `yaml:"desired_seats"`
}

// Request validates the booking section and converts it into the immutable
// request the pipeline runs on.
func (b BookingConfig) Request() (domain.BookingRequest, error) {
	missing := func(field string) (domain.BookingRequest, error) {
		return domain.BookingRequest{}, fmt.Errorf("booking.%s is required", field)
	}
	switch {
	case b.MobileNumber == "":
		return missing("mobile_number")
	case b.Password == "":
		return missing("password")
	case b.FromStation == "":
		return missing("from_station")
	case b.ToStation == "":
		return missing("to_station")
	case b.JourneyDate == "":
		return missing("journey_date")
	case b.SeatClass == "":
		return missing("seat_class")
	}
	if b.TrainNumber <= 0 {
		return domain.BookingRequest{}, fmt.Errorf("booking.train_number must be positive")
	}
	if b.SeatCount <= 0 {
		return domain.BookingRequest{}, fmt.Errorf("booking.seat_count must be positive")
	}
	return domain.BookingRequest{
		MobileNumber: b.MobileNumber,
		Password:     b.Password,
		FromStation:  b.FromStation,
		ToStation:    b.ToStation,
		JourneyDate:  b.JourneyDate,
		SeatClass:    b.SeatClass,
		TrainNumber:  b.TrainNumber,
		SeatCount:    b.SeatCount,
		DesiredSeats: b.DesiredSeats,
	}, nil
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	AuthMaxRetries int    `yaml:"auth_max_retries"`
}

type RedisConfig struct {
	Addr           string `yaml:"addr"`
	Password       string `yaml:"password"`
	DB             int    `yaml:"db"`
	TripTTLMinutes int    `yaml:"trip_ttl_minutes"`
}

// Enabled reports whether the optional trip cache is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type ReservationConfig struct {
	Concurrent bool `yaml:"concurrent"`
}

const (
	defaultBaseURL        = "https://railspaapi.shohoz.com"
	defaultTimeoutSeconds = 30
	defaultAuthRetries    = 50
	defaultTripTTLMinutes = 30
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.API.AuthMaxRetries <= 0 {
		cfg.API.AuthMaxRetries = defaultAuthRetries
	}
	if cfg.Redis.TripTTLMinutes <= 0 {
		cfg.Redis.TripTTLMinutes = defaultTripTTLMinutes
	}

	return &cfg, nil
}
