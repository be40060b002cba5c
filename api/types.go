package api

import "time"

// Credentials is the transient login form payload. It is sent to the token
// endpoint and never persisted anywhere.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAccount is the registration payload.
type NewAccount struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// UserProfile is the backend's view of the authenticated user. is_staff and
// is_superuser drive the client-side privileged-navigation gate; the backend
// remains the enforcement authority for every admin action.
type UserProfile struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Page is the backend's pagination envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Airport defines a wire type of the booking catalog.
type Airport struct {
	ID             int64  `json:"id,omitempty"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

// Route defines a wire type of the booking catalog.
type Route struct {
	ID          int64 `json:"id,omitempty"`
	Source      int64 `json:"source"`
	Destination int64 `json:"destination"`
	Distance    int   `json:"distance"`
}

// AirplaneType defines a wire type of the booking catalog.
type AirplaneType struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Airplane defines a wire type of the booking catalog.
type Airplane struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType int64  `json:"airplane_type"`
	Capacity     int    `json:"capacity,omitempty"`
	Image        string `json:"image,omitempty"`
}

// CrewMember defines a wire type of the booking catalog.
type CrewMember struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Flight defines a wire type of the booking catalog.
type Flight struct {
	ID            int64     `json:"id,omitempty"`
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crew          []int64   `json:"crew,omitempty"`
}

// Ticket is a seat reservation inside an order.
type Ticket struct {
	ID     int64 `json:"id,omitempty"`
	Flight int64 `json:"flight"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
}

// Order is a placed booking together with its tickets.
type Order struct {
	ID        int64     `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Tickets   []Ticket  `json:"tickets"`
}

// FlightFilter narrows a flight listing. Zero values mean "no filter".
type FlightFilter struct {
	RouteID       int64
	DepartureDate string // YYYY-MM-DD
}

// AirplaneFilter narrows an airplane listing.
type AirplaneFilter struct {
	Name  string
	Types []string
}
