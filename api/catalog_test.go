package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestListAirportsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultAirportRoot+"airports/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Page[Airport]{
			Count: 2,
			Results: []Airport{
				{ID: 1, Name: "Vilnius International", ClosestBigCity: "Vilnius"},
				{ID: 2, Name: "Stockholm Arlanda", ClosestBigCity: "Stockholm"},
			},
		})
	}))

	page, err := client.ListAirports(context.Background())
	if err != nil {
		t.Fatalf("ListAirports failed: %v", err)
	}
	if page.Count != 2 || len(page.Results) != 2 {
		t.Fatalf("page = %+v", page)
	}
	if page.Results[0].Name != "Vilnius International" {
		t.Fatalf("first airport = %+v", page.Results[0])
	}
}

func TestListFlightsFilterQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("route") != "4" {
			t.Errorf("route = %q, want 4", q.Get("route"))
		}
		if q.Get("departure_date") != "2026-09-15" {
			t.Errorf("departure_date = %q", q.Get("departure_date"))
		}
		_ = json.NewEncoder(w).Encode(Page[Flight]{})
	}))

	_, err := client.ListFlights(context.Background(), FlightFilter{RouteID: 4, DepartureDate: "2026-09-15"})
	if err != nil {
		t.Fatalf("ListFlights failed: %v", err)
	}
}

func TestListFlightsNoFilterOmitsQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(Page[Flight]{})
	}))

	if _, err := client.ListFlights(context.Background(), FlightFilter{}); err != nil {
		t.Fatalf("ListFlights failed: %v", err)
	}
}

func TestListAirplanesFilterQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("name") != "LY" {
			t.Errorf("name = %q", q.Get("name"))
		}
		if q.Get("types") != "Narrow-body,Wide-body" {
			t.Errorf("types = %q", q.Get("types"))
		}
		_ = json.NewEncoder(w).Encode(Page[Airplane]{})
	}))

	_, err := client.ListAirplanes(context.Background(), AirplaneFilter{
		Name:  "LY",
		Types: []string{"Narrow-body", "Wide-body"},
	})
	if err != nil {
		t.Fatalf("ListAirplanes failed: %v", err)
	}
}

func TestCreateFlight(t *testing.T) {
	depart := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var flight Flight
		if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
			t.Errorf("decode: %v", err)
		}
		flight.ID = 11
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(flight)
	}))

	created, err := client.CreateFlight(context.Background(), Flight{
		Route:         1,
		Airplane:      2,
		DepartureTime: depart,
		ArrivalTime:   depart.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateFlight failed: %v", err)
	}
	if created.ID != 11 || !created.DepartureTime.Equal(depart) {
		t.Fatalf("created = %+v", created)
	}
}

func TestDeleteAirport(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != DefaultAirportRoot+"airports/9/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteAirport(context.Background(), 9); err != nil {
		t.Fatalf("DeleteAirport failed: %v", err)
	}
}

func TestCreateOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultAirportRoot+"orders/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var order Order
		_ = json.NewDecoder(r.Body).Decode(&order)
		order.ID = 5
		order.CreatedAt = time.Now().UTC()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(order)
	}))

	created, err := client.CreateOrder(context.Background(), Order{
		Tickets: []Ticket{{Flight: 1, Row: 3, Seat: 4}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if created.ID != 5 || len(created.Tickets) != 1 {
		t.Fatalf("created = %+v", created)
	}
}
