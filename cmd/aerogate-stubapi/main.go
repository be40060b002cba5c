// Command aerogate-stubapi is a local stand-in for the booking backend. It
// serves the token, register, and profile endpoints plus a seeded in-memory
// catalog so the gateway can run end-to-end without the real deployment.
//
// The stub signs real JWTs but performs no token refresh; the refresh token
// it hands out is stored by clients and never exercised.
package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type config struct {
	Addr           string        `env:"STUBAPI_ADDR" envDefault:":8001"`
	JWTSecret      string        `env:"STUBAPI_JWT_SECRET" envDefault:"dev-only-not-a-secret"`
	AccessTTL      time.Duration `env:"STUBAPI_ACCESS_TTL" envDefault:"30m"`
	RefreshTTL     time.Duration `env:"STUBAPI_REFRESH_TTL" envDefault:"24h"`
	AllowedOrigins []string      `env:"STUBAPI_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8000"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("aerogate-stubapi: config: %v", err)
	}

	srv := &server{
		store:      newMemStore(),
		jwtSecret:  []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/token/", srv.handleToken)
		r.Post("/register/", srv.handleRegister)
		r.With(srv.requireBearer).Get("/me/", srv.handleMe)
	})

	r.Route("/api/airport", func(r chi.Router) {
		r.Get("/airports/", srv.handleListAirports)
		r.Get("/routes/", srv.handleListRoutes)
		r.Get("/airplane_types/", srv.handleListAirplaneTypes)
		r.Get("/airplanes/", srv.handleListAirplanes)
		r.Get("/airplanes/{id}/", srv.handleGetAirplane)
		r.Get("/crew/", srv.handleListCrew)
		r.Get("/flights/", srv.handleListFlights)
		r.Get("/flights/{id}/", srv.handleGetFlight)

		r.Group(func(r chi.Router) {
			r.Use(srv.requireStaff)
			r.Post("/airports/", srv.handleCreateAirport)
			r.Put("/airports/{id}/", srv.handleUpdateAirport)
			r.Delete("/airports/{id}/", srv.handleDeleteAirport)
			r.Post("/routes/", srv.handleCreateRoute)
			r.Delete("/routes/{id}/", srv.handleDeleteRoute)
			r.Post("/airplane_types/", srv.handleCreateAirplaneType)
			r.Post("/airplanes/", srv.handleCreateAirplane)
			r.Delete("/airplanes/{id}/", srv.handleDeleteAirplane)
			r.Post("/crew/", srv.handleCreateCrewMember)
			r.Post("/flights/", srv.handleCreateFlight)
			r.Put("/flights/{id}/", srv.handleUpdateFlight)
			r.Delete("/flights/{id}/", srv.handleDeleteFlight)
		})

		r.Group(func(r chi.Router) {
			r.Use(srv.requireBearer)
			r.Get("/orders/", srv.handleListOrders)
			r.Post("/orders/", srv.handleCreateOrder)
		})
	})

	log.Printf("aerogate-stubapi: listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("aerogate-stubapi: %v", err)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
