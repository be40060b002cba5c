package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aerodesk/aerogate/api"
)

type server struct {
	store      *memStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type apiError struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, apiError{Detail: detail})
}

func (s *server) issueToken(userID int64, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"type": kind,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *server) parseAccess(token string) (int64, bool) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return 0, false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	if kind, _ := claims["type"].(string); kind != "access" {
		return 0, false
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

type profileContextKey struct{}

func profileFromRequest(r *http.Request) (api.UserProfile, bool) {
	p, ok := r.Context().Value(profileContextKey{}).(api.UserProfile)
	return p, ok
}

// requireBearer resolves the Authorization header into a user profile and
// rejects the request when the token is missing, stale, or malformed.
func (s *server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, prefix) {
			writeError(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}

		userID, ok := s.parseAccess(header[len(prefix):])
		if !ok {
			writeError(w, http.StatusUnauthorized, "token is invalid or expired")
			return
		}

		profile, ok := s.store.userByID(userID)
		if !ok {
			writeError(w, http.StatusUnauthorized, "user no longer exists")
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey{}, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireStaff layers the write-permission check on top of requireBearer.
func (s *server) requireStaff(next http.Handler) http.Handler {
	return s.requireBearer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, _ := profileFromRequest(r)
		if !profile.IsStaff && !profile.IsSuperuser {
			writeError(w, http.StatusForbidden, "you do not have permission to perform this action")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (s *server) handleToken(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	profile, ok := s.store.authenticate(creds.Email, creds.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no active account found with the given credentials")
		return
	}

	access, err := s.issueToken(profile.ID, "access", s.accessTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	refresh, err := s.issueToken(profile.ID, "refresh", s.refreshTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Access: access, Refresh: refresh})
}

func (s *server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var account api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if account.Email == "" || len(account.Password) < 5 {
		writeError(w, http.StatusBadRequest, "email and a password of at least 5 characters are required")
		return
	}

	profile, ok := s.store.register(account)
	if !ok {
		writeError(w, http.StatusBadRequest, "user with this email already exists")
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// page wraps a result slice in the backend's pagination envelope. The stub
// serves every record on one page, so next and previous stay null.
func page[T any](results []T) api.Page[T] {
	if results == nil {
		results = []T{}
	}
	return api.Page[T]{Count: len(results), Results: results}
}

func sortedValues[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

func (s *server) handleListAirports(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	airports := sortedValues(s.store.airports, func(a api.Airport) int64 { return a.ID })
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, page(airports))
}

func (s *server) handleCreateAirport(w http.ResponseWriter, r *http.Request) {
	var airport api.Airport
	if err := json.NewDecoder(r.Body).Decode(&airport); err != nil || airport.Name == "" {
		writeError(w, http.StatusBadRequest, "a name is required")
		return
	}

	s.store.mu.Lock()
	airport.ID = s.store.id("airport")
	s.store.airports[airport.ID] = airport
	s.store.mu.Unlock()

	writeJSON(w, http.StatusCreated, airport)
}

func (s *server) handleUpdateAirport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var airport api.Airport
	if err := json.NewDecoder(r.Body).Decode(&airport); err != nil || airport.Name == "" {
		writeError(w, http.StatusBadRequest, "a name is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, exists := s.store.airports[id]; !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	airport.ID = id
	s.store.airports[id] = airport
	writeJSON(w, http.StatusOK, airport)
}

func (s *server) handleDeleteAirport(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(id int64) bool {
		if _, exists := s.store.airports[id]; !exists {
			return false
		}
		delete(s.store.airports, id)
		return true
	})
}

func (s *server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	routes := sortedValues(s.store.routes, func(rt api.Route) int64 { return rt.ID })
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, page(routes))
}

func (s *server) handleCreateRoute(w http.ResponseWriter, r *http.Request) {
	var route api.Route
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.airports[route.Source]; !ok {
		writeError(w, http.StatusBadRequest, "unknown source airport")
		return
	}
	if _, ok := s.store.airports[route.Destination]; !ok {
		writeError(w, http.StatusBadRequest, "unknown destination airport")
		return
	}
	route.ID = s.store.id("route")
	s.store.routes[route.ID] = route
	writeJSON(w, http.StatusCreated, route)
}

func (s *server) handleDeleteRoute(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(id int64) bool {
		if _, exists := s.store.routes[id]; !exists {
			return false
		}
		delete(s.store.routes, id)
		return true
	})
}

func (s *server) handleListAirplaneTypes(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	types := sortedValues(s.store.airplaneTypes, func(t api.AirplaneType) int64 { return t.ID })
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, page(types))
}

func (s *server) handleCreateAirplaneType(w http.ResponseWriter, r *http.Request) {
	var t api.AirplaneType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil || t.Name == "" {
		writeError(w, http.StatusBadRequest, "a name is required")
		return
	}

	s.store.mu.Lock()
	t.ID = s.store.id("airplane_type")
	s.store.airplaneTypes[t.ID] = t
	s.store.mu.Unlock()

	writeJSON(w, http.StatusCreated, t)
}

func (s *server) handleListAirplanes(w http.ResponseWriter, r *http.Request) {
	nameFilter := strings.ToLower(r.URL.Query().Get("name"))
	var typeFilter []string
	if raw := r.URL.Query().Get("types"); raw != "" {
		typeFilter = strings.Split(raw, ",")
	}

	s.store.mu.Lock()
	all := sortedValues(s.store.airplanes, func(a api.Airplane) int64 { return a.ID })
	typeNames := make(map[int64]string, len(s.store.airplaneTypes))
	for id, t := range s.store.airplaneTypes {
		typeNames[id] = t.Name
	}
	s.store.mu.Unlock()

	filtered := all[:0:0]
	for _, a := range all {
		if nameFilter != "" && !strings.Contains(strings.ToLower(a.Name), nameFilter) {
			continue
		}
		if len(typeFilter) > 0 && !containsFold(typeFilter, typeNames[a.AirplaneType]) {
			continue
		}
		filtered = append(filtered, a)
	}

	writeJSON(w, http.StatusOK, page(filtered))
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), needle) {
			return true
		}
	}
	return false
}

func (s *server) handleGetAirplane(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	s.store.mu.Lock()
	airplane, exists := s.store.airplanes[id]
	s.store.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, airplane)
}

func (s *server) handleCreateAirplane(w http.ResponseWriter, r *http.Request) {
	var airplane api.Airplane
	if err := json.NewDecoder(r.Body).Decode(&airplane); err != nil || airplane.Name == "" {
		writeError(w, http.StatusBadRequest, "a name is required")
		return
	}
	if airplane.Rows <= 0 || airplane.SeatsInRow <= 0 {
		writeError(w, http.StatusBadRequest, "rows and seats_in_row must be positive")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.airplaneTypes[airplane.AirplaneType]; !ok {
		writeError(w, http.StatusBadRequest, "unknown airplane type")
		return
	}
	airplane.ID = s.store.id("airplane")
	airplane.Capacity = airplane.Rows * airplane.SeatsInRow
	s.store.airplanes[airplane.ID] = airplane
	writeJSON(w, http.StatusCreated, airplane)
}

func (s *server) handleDeleteAirplane(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(id int64) bool {
		if _, exists := s.store.airplanes[id]; !exists {
			return false
		}
		delete(s.store.airplanes, id)
		return true
	})
}

func (s *server) handleListCrew(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	crew := sortedValues(s.store.crew, func(c api.CrewMember) int64 { return c.ID })
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, page(crew))
}

func (s *server) handleCreateCrewMember(w http.ResponseWriter, r *http.Request) {
	var member api.CrewMember
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil || member.FirstName == "" || member.LastName == "" {
		writeError(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	s.store.mu.Lock()
	member.ID = s.store.id("crew")
	s.store.crew[member.ID] = member
	s.store.mu.Unlock()

	writeJSON(w, http.StatusCreated, member)
}

func (s *server) handleListFlights(w http.ResponseWriter, r *http.Request) {
	var routeID int64
	if raw := r.URL.Query().Get("route"); raw != "" {
		routeID, _ = strconv.ParseInt(raw, 10, 64)
	}
	departureDate := r.URL.Query().Get("departure_date")

	s.store.mu.Lock()
	all := sortedValues(s.store.flights, func(f api.Flight) int64 { return f.ID })
	s.store.mu.Unlock()

	filtered := all[:0:0]
	for _, f := range all {
		if routeID > 0 && f.Route != routeID {
			continue
		}
		if departureDate != "" && f.DepartureTime.UTC().Format("2006-01-02") != departureDate {
			continue
		}
		filtered = append(filtered, f)
	}

	writeJSON(w, http.StatusOK, page(filtered))
}

func (s *server) handleGetFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	s.store.mu.Lock()
	flight, exists := s.store.flights[id]
	s.store.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, flight)
}

func (s *server) handleCreateFlight(w http.ResponseWriter, r *http.Request) {
	var flight api.Flight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if !flight.ArrivalTime.After(flight.DepartureTime) {
		writeError(w, http.StatusBadRequest, "arrival_time must be after departure_time")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, ok := s.store.routes[flight.Route]; !ok {
		writeError(w, http.StatusBadRequest, "unknown route")
		return
	}
	if _, ok := s.store.airplanes[flight.Airplane]; !ok {
		writeError(w, http.StatusBadRequest, "unknown airplane")
		return
	}
	flight.ID = s.store.id("flight")
	s.store.flights[flight.ID] = flight
	writeJSON(w, http.StatusCreated, flight)
}

func (s *server) handleUpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var flight api.Flight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, exists := s.store.flights[id]; !exists {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	flight.ID = id
	s.store.flights[id] = flight
	writeJSON(w, http.StatusOK, flight)
}

func (s *server) handleDeleteFlight(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, func(id int64) bool {
		if _, exists := s.store.flights[id]; !exists {
			return false
		}
		delete(s.store.flights, id)
		return true
	})
}

func (s *server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromRequest(r)

	s.store.mu.Lock()
	all := sortedValues(s.store.orders, func(o api.Order) int64 { return o.ID })
	owners := s.store.orderOwners()
	s.store.mu.Unlock()

	mine := all[:0:0]
	for _, o := range all {
		if owners[o.ID] == profile.ID {
			mine = append(mine, o)
		}
	}

	writeJSON(w, http.StatusOK, page(mine))
}

func (s *server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromRequest(r)

	var order api.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil || len(order.Tickets) == 0 {
		writeError(w, http.StatusBadRequest, "an order needs at least one ticket")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range order.Tickets {
		flight, ok := s.store.flights[order.Tickets[i].Flight]
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown flight")
			return
		}
		airplane := s.store.airplanes[flight.Airplane]
		t := order.Tickets[i]
		if t.Row < 1 || t.Row > airplane.Rows || t.Seat < 1 || t.Seat > airplane.SeatsInRow {
			writeError(w, http.StatusBadRequest, "seat is outside the airplane layout")
			return
		}
		order.Tickets[i].ID = s.store.id("ticket")
	}

	order.ID = s.store.id("order")
	order.CreatedAt = time.Now().UTC()
	s.store.orders[order.ID] = order
	s.store.owners[order.ID] = profile.ID
	writeJSON(w, http.StatusCreated, order)
}

func (s *server) deleteByID(w http.ResponseWriter, r *http.Request, remove func(int64) bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	s.store.mu.Lock()
	removed := remove(id)
	s.store.mu.Unlock()

	if !removed {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
