package main

import (
	"strings"
	"sync"
	"time"

	"github.com/aerodesk/aerogate/api"
)

type user struct {
	profile  api.UserProfile
	password string
}

// memStore is the in-memory stand-in for the real backend's database. All
// access goes through the mutex; handlers copy values out before encoding.
type memStore struct {
	mu sync.Mutex

	users  map[string]*user
	nextID map[string]int64

	airports      map[int64]api.Airport
	routes        map[int64]api.Route
	airplaneTypes map[int64]api.AirplaneType
	airplanes     map[int64]api.Airplane
	crew          map[int64]api.CrewMember
	flights       map[int64]api.Flight
	orders        map[int64]api.Order
	owners        map[int64]int64 // order ID -> user ID
}

func newMemStore() *memStore {
	s := &memStore{
		users:         map[string]*user{},
		nextID:        map[string]int64{},
		airports:      map[int64]api.Airport{},
		routes:        map[int64]api.Route{},
		airplaneTypes: map[int64]api.AirplaneType{},
		airplanes:     map[int64]api.Airplane{},
		crew:          map[int64]api.CrewMember{},
		flights:       map[int64]api.Flight{},
		orders:        map[int64]api.Order{},
		owners:        map[int64]int64{},
	}
	s.seed()
	return s
}

func (s *memStore) id(kind string) int64 {
	s.nextID[kind]++
	return s.nextID[kind]
}

func (s *memStore) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin := api.UserProfile{
		ID:          s.id("user"),
		Email:       "admin@example.com",
		FirstName:   "Ada",
		LastName:    "Admin",
		IsStaff:     true,
		IsSuperuser: true,
	}
	s.users[admin.Email] = &user{profile: admin, password: "admin123"}

	traveler := api.UserProfile{
		ID:        s.id("user"),
		Email:     "traveler@example.com",
		FirstName: "Tess",
		LastName:  "Traveler",
	}
	s.users[traveler.Email] = &user{profile: traveler, password: "travel123"}

	vno := api.Airport{ID: s.id("airport"), Name: "Vilnius International", ClosestBigCity: "Vilnius"}
	arn := api.Airport{ID: s.id("airport"), Name: "Stockholm Arlanda", ClosestBigCity: "Stockholm"}
	s.airports[vno.ID] = vno
	s.airports[arn.ID] = arn

	out := api.Route{ID: s.id("route"), Source: vno.ID, Destination: arn.ID, Distance: 689}
	back := api.Route{ID: s.id("route"), Source: arn.ID, Destination: vno.ID, Distance: 689}
	s.routes[out.ID] = out
	s.routes[back.ID] = back

	narrow := api.AirplaneType{ID: s.id("airplane_type"), Name: "Narrow-body"}
	s.airplaneTypes[narrow.ID] = narrow

	plane := api.Airplane{
		ID:           s.id("airplane"),
		Name:         "LY-ABA",
		Rows:         30,
		SeatsInRow:   6,
		AirplaneType: narrow.ID,
		Capacity:     180,
	}
	s.airplanes[plane.ID] = plane

	captain := api.CrewMember{ID: s.id("crew"), FirstName: "Jonas", LastName: "Petrauskas"}
	s.crew[captain.ID] = captain

	depart := time.Date(2026, time.September, 15, 8, 30, 0, 0, time.UTC)
	flight := api.Flight{
		ID:            s.id("flight"),
		Route:         out.ID,
		Airplane:      plane.ID,
		DepartureTime: depart,
		ArrivalTime:   depart.Add(95 * time.Minute),
		Crew:          []int64{captain.ID},
	}
	s.flights[flight.ID] = flight
}

func (s *memStore) authenticate(email, password string) (api.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok || u.password != password {
		return api.UserProfile{}, false
	}
	return u.profile, true
}

func (s *memStore) register(account api.NewAccount) (api.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(account.Email)
	if _, exists := s.users[email]; exists {
		return api.UserProfile{}, false
	}

	profile := api.UserProfile{
		ID:        s.id("user"),
		Email:     email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
	s.users[email] = &user{profile: profile, password: account.Password}
	return profile, true
}

// orderOwners returns a copy of the order ownership index. Callers must hold
// the store mutex.
func (s *memStore) orderOwners() map[int64]int64 {
	out := make(map[int64]int64, len(s.owners))
	for k, v := range s.owners {
		out[k] = v
	}
	return out
}

func (s *memStore) userByID(id int64) (api.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.profile.ID == id {
			return u.profile, true
		}
	}
	return api.UserProfile{}, false
}
