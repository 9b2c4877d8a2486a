package inspect

import (
	"errors"
	"fmt"
	"time"
)

// DefaultAddress is the default address of the inspection listener.
const DefaultAddress = "127.0.0.1:7070"

const (
	// DefaultRequestsPerSecond is the default sustained request rate.
	DefaultRequestsPerSecond = 50
	// DefaultBurst is the default number of requests allowed above the sustained rate.
	DefaultBurst = 100
	// DefaultRequestTimeout is the default deadline of a single request.
	DefaultRequestTimeout = 5 * time.Second
)

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrNilConfig is returned when no configuration is given to serve.
var ErrNilConfig = errors.New("config must not be nil")

// ErrInvalidRateLimit is returned when the rate or burst is not positive.
var ErrInvalidRateLimit = errors.New("rate limit must be positive")

// ErrInvalidTimeout is returned when the request timeout cannot be parsed or is not positive.
var ErrInvalidTimeout = errors.New("invalid request timeout")

// Config holds the settings of the inspection listener. It is read from the
// "inspect" section of the served configuration unless options are given.
type Config struct {
	Address           string   `yaml:"address"`
	AllowedOrigins    []string `yaml:"allowedOrigins"`
	RequestsPerSecond float64  `yaml:"requestsPerSecond"`
	Burst             int      `yaml:"burst"`
	RequestTimeout    string   `yaml:"requestTimeout"`
}

// SetDefaults sets default values for the Config and reports whether
// anything was changed.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
		changed = true
	}

	if c.Burst == 0 {
		c.Burst = DefaultBurst
		changed = true
	}

	if c.RequestTimeout == "" {
		c.RequestTimeout = DefaultRequestTimeout.String()
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.RequestsPerSecond <= 0 || c.Burst <= 0 {
		return fmt.Errorf("%w: %v requests per second, burst %d", ErrInvalidRateLimit, c.RequestsPerSecond, c.Burst)
	}

	_, err := c.timeout()

	return err
}

func (c *Config) timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTimeout, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimeout, c.RequestTimeout)
	}

	return d, nil
}

// Option defines a function type for configuring the inspection listener.
type Option func(*Config)

// WithAddress sets the address of the inspection listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(cfg *Config) {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, origins...)
	}
}

// WithRateLimit limits the listener to rps requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(cfg *Config) {
		cfg.RequestsPerSecond = rps
		cfg.Burst = burst
	}
}

// WithRequestTimeout sets the deadline of a single request.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.RequestTimeout = d.String()
	}
}
