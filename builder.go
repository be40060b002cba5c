package aerogate

import (
	"errors"
	"net/http"

	"github.com/aerodesk/aerogate/api"
	"github.com/aerodesk/aerogate/credstore"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by aerogate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	httpClient *http.Client
	authAPI    AuthAPI
	creds      credstore.Store
	redis      *redis.Client
	eventSink  EventSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
//
// WithBaseURL may return an error when input validation, dependency calls, or security checks fail.
// WithBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuthAPI substitutes the HTTP collaborator wholesale. Intended for
// tests and for callers with a non-standard backend.
func (b *Builder) WithAuthAPI(authAPI AuthAPI) *Builder {
	b.authAPI = authAPI
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
//
// WithCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// WithCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCredentialStore(store credstore.Store) *Builder {
	b.creds = store
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink may return an error when input validation, dependency calls, or security checks fail.
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.eventSink = sink
	if sink != nil {
		b.config.Events.Enabled = true
	}
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	// -------- AUTH API --------
	authAPI := b.authAPI
	if authAPI == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		client, err := api.NewClient(api.Config{
			BaseURL:      cfg.API.BaseURL,
			TokenPath:    cfg.API.TokenPath,
			RegisterPath: cfg.API.RegisterPath,
			ProfilePath:  cfg.API.ProfilePath,
			HTTPClient:   b.httpClient,
		})
		if err != nil {
			return nil, err
		}
		authAPI = client
	}

	// -------- CREDENTIAL STORE --------
	creds := b.creds
	if creds == nil && b.redis != nil {
		creds = credstore.NewRedisStore(b.redis, cfg.Credentials.RedisPrefix)
	}
	if creds == nil {
		return nil, errors.New("credential store required (WithCredentialStore or WithRedis)")
	}

	engine := &Engine{
		config:  cfg,
		authAPI: authAPI,
		creds:   creds,
		state:   SessionState{Status: StatusUnknown},
	}
	engine.events = newEventDispatcher(cfg.Events, b.eventSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
