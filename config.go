package aerogate

import (
	"errors"
	"net/url"
)

// Config defines a public type used by aerogate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API         APIConfig
	Credentials CredentialConfig
	Events      EventsConfig
	Metrics     MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig locates the authentication collaborator. Empty paths fall back
// to the backend's default URL layout. No timeout lives here: timeout policy
// is delegated entirely to the HTTP client handed to the builder.
type APIConfig struct {
	BaseURL      string
	TokenPath    string
	RegisterPath string
	ProfilePath  string
}

/*
====================================
CREDENTIAL CONFIG
====================================
*/

// CredentialConfig configures the default Redis credential store built by
// [Builder.WithRedis]. Ignored when an explicit store is supplied.
type CredentialConfig struct {
	RedisPrefix string
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventsConfig defines a public type used by aerogate APIs.
//
// EventsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by aerogate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Credentials: CredentialConfig{
			RedisPrefix: "ag",
		},
		Events: EventsConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the baseline configuration. The API base URL must be
// filled in by the caller; everything else has a working default.
func DefaultConfig() Config {
	return defaultConfig()
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// API
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL must be set")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return errors.New("API BaseURL is not a valid URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("API BaseURL must be absolute")
	}

	// Events
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return errors.New("Events BufferSize must be > 0 when Events are enabled")
	}

	// Credentials
	if c.Credentials.RedisPrefix == "" {
		return errors.New("Credentials RedisPrefix must not be empty")
	}

	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}
