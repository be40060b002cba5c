// Command aerogate-web is the booking front end. It renders server-side HTML
// pages backed by the session engine: public catalog browsing, login and
// registration forms, an order history behind the session guard, and an admin
// console behind the staff guard.
//
// On startup the saved token pair (if any) is rehydrated in the background;
// guarded pages answer with a neutral loading response until that settles.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	aerogate "github.com/aerodesk/aerogate"
	"github.com/aerodesk/aerogate/api"
	"github.com/aerodesk/aerogate/credstore"
	"github.com/aerodesk/aerogate/middleware"
)

type config struct {
	Addr     string `env:"AEROGATE_ADDR" envDefault:":8000"`
	APIBase  string `env:"AEROGATE_API_BASE" envDefault:"http://localhost:8001"`
	LoginURL string `env:"AEROGATE_LOGIN_URL" envDefault:"/login"`
	HomeURL  string `env:"AEROGATE_HOME_URL" envDefault:"/"`

	// RedisAddr selects the redis credential store; when empty the token
	// pair is kept in a file under CredFile instead.
	RedisAddr string `env:"AEROGATE_REDIS_ADDR"`
	CredFile  string `env:"AEROGATE_CRED_FILE" envDefault:".aerogate/credentials.json"`

	EventLog string `env:"AEROGATE_EVENT_LOG"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("aerogate-web: config: %v", err)
	}

	creds := buildCredentialStore(cfg)

	builder := aerogate.New().
		WithBaseURL(cfg.APIBase).
		WithHTTPClient(&http.Client{Timeout: 15 * time.Second}).
		WithCredentialStore(creds).
		WithMetricsEnabled(true)

	if cfg.EventLog != "" {
		f, err := os.OpenFile(cfg.EventLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("aerogate-web: event log: %v", err)
		}
		defer f.Close()
		builder = builder.WithEventSink(aerogate.NewJSONWriterSink(f))
	}

	engine, err := builder.Build()
	if err != nil {
		log.Fatalf("aerogate-web: %v", err)
	}
	defer engine.Close()

	// Rehydrate off the request path. Until this resolves the guards see
	// StatusUnknown and answer with the loading response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		state := engine.CheckAuth(ctx)
		log.Printf("aerogate-web: session rehydrated: %s", state.Status)
	}()

	// Catalog and order calls share the engine's credential store through a
	// bearer transport, so whatever Login saved is what gets sent.
	backend, err := api.NewClient(api.Config{
		BaseURL: cfg.APIBase,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &api.BearerTransport{
				Source: api.StoreTokenSource{Store: creds},
			},
		},
	})
	if err != nil {
		log.Fatalf("aerogate-web: %v", err)
	}

	app := &webApp{
		engine:   engine,
		backend:  backend,
		loginURL: cfg.LoginURL,
		homeURL:  cfg.HomeURL,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Attach(engine))

	r.Get("/", app.handleHome)
	r.Get("/flights", app.handleFlights)
	r.Get("/login", app.handleLoginForm)
	r.Post("/login", app.handleLogin)
	r.Get("/register", app.handleRegisterForm)
	r.Post("/register", app.handleRegister)
	r.Post("/logout", app.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(engine, cfg.LoginURL))
		r.Get("/orders", app.handleOrders)
		r.Post("/orders", app.handleCreateOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireStaff(engine, cfg.LoginURL, cfg.HomeURL))
		r.Get("/admin", app.handleAdmin)
	})

	log.Printf("aerogate-web: listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("aerogate-web: %v", err)
	}
}

func buildCredentialStore(cfg config) credstore.Store {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return credstore.NewRedisStore(client, "ag")
	}
	return credstore.NewFileStore(cfg.CredFile)
}
