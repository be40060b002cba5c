package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Catalog resource collections under the airport root.
const (
	airportsResource      = "airports/"
	routesResource        = "routes/"
	airplaneTypesResource = "airplane_types/"
	airplanesResource     = "airplanes/"
	crewResource          = "crew/"
	flightsResource       = "flights/"
)

func (c *Client) resource(name string) string {
	return c.airportRoot + name
}

func (c *Client) item(name string, id int64) string {
	return fmt.Sprintf("%s%s%d/", c.airportRoot, name, id)
}

// ListAirports returns the public airport catalog.
func (c *Client) ListAirports(ctx context.Context) (Page[Airport], error) {
	var page Page[Airport]
	err := c.getJSON(ctx, c.resource(airportsResource), nil, &page)
	return page, err
}

// CreateAirport adds an airport. Requires a privileged bearer token on the
// underlying transport.
func (c *Client) CreateAirport(ctx context.Context, airport Airport) (Airport, error) {
	var created Airport
	err := c.postJSON(ctx, c.resource(airportsResource), airport, &created)
	return created, err
}

// UpdateAirport replaces an airport record.
func (c *Client) UpdateAirport(ctx context.Context, airport Airport) (Airport, error) {
	var updated Airport
	err := c.putJSON(ctx, c.item(airportsResource, airport.ID), airport, &updated)
	return updated, err
}

// DeleteAirport removes an airport record.
func (c *Client) DeleteAirport(ctx context.Context, id int64) error {
	return c.delete(ctx, c.item(airportsResource, id))
}

// ListRoutes returns the route catalog.
func (c *Client) ListRoutes(ctx context.Context) (Page[Route], error) {
	var page Page[Route]
	err := c.getJSON(ctx, c.resource(routesResource), nil, &page)
	return page, err
}

// CreateRoute adds a route between two airports.
func (c *Client) CreateRoute(ctx context.Context, route Route) (Route, error) {
	var created Route
	err := c.postJSON(ctx, c.resource(routesResource), route, &created)
	return created, err
}

// DeleteRoute removes a route record.
func (c *Client) DeleteRoute(ctx context.Context, id int64) error {
	return c.delete(ctx, c.item(routesResource, id))
}

// ListAirplaneTypes returns the airplane type catalog.
func (c *Client) ListAirplaneTypes(ctx context.Context) (Page[AirplaneType], error) {
	var page Page[AirplaneType]
	err := c.getJSON(ctx, c.resource(airplaneTypesResource), nil, &page)
	return page, err
}

// CreateAirplaneType adds an airplane type.
func (c *Client) CreateAirplaneType(ctx context.Context, t AirplaneType) (AirplaneType, error) {
	var created AirplaneType
	err := c.postJSON(ctx, c.resource(airplaneTypesResource), t, &created)
	return created, err
}

// ListAirplanes returns airplanes, optionally narrowed by name substring and
// type names.
func (c *Client) ListAirplanes(ctx context.Context, filter AirplaneFilter) (Page[Airplane], error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if len(filter.Types) > 0 {
		query.Set("types", strings.Join(filter.Types, ","))
	}

	var page Page[Airplane]
	err := c.getJSON(ctx, c.resource(airplanesResource), query, &page)
	return page, err
}

// GetAirplane retrieves a single airplane.
func (c *Client) GetAirplane(ctx context.Context, id int64) (Airplane, error) {
	var airplane Airplane
	err := c.getJSON(ctx, c.item(airplanesResource, id), nil, &airplane)
	return airplane, err
}

// CreateAirplane adds an airplane.
func (c *Client) CreateAirplane(ctx context.Context, airplane Airplane) (Airplane, error) {
	var created Airplane
	err := c.postJSON(ctx, c.resource(airplanesResource), airplane, &created)
	return created, err
}

// DeleteAirplane removes an airplane record.
func (c *Client) DeleteAirplane(ctx context.Context, id int64) error {
	return c.delete(ctx, c.item(airplanesResource, id))
}

// ListCrew returns the crew roster.
func (c *Client) ListCrew(ctx context.Context) (Page[CrewMember], error) {
	var page Page[CrewMember]
	err := c.getJSON(ctx, c.resource(crewResource), nil, &page)
	return page, err
}

// CreateCrewMember adds a crew member.
func (c *Client) CreateCrewMember(ctx context.Context, member CrewMember) (CrewMember, error) {
	var created CrewMember
	err := c.postJSON(ctx, c.resource(crewResource), member, &created)
	return created, err
}

// ListFlights returns flights, optionally narrowed by route and departure
// date.
func (c *Client) ListFlights(ctx context.Context, filter FlightFilter) (Page[Flight], error) {
	query := url.Values{}
	if filter.RouteID > 0 {
		query.Set("route", strconv.FormatInt(filter.RouteID, 10))
	}
	if filter.DepartureDate != "" {
		query.Set("departure_date", filter.DepartureDate)
	}

	var page Page[Flight]
	err := c.getJSON(ctx, c.resource(flightsResource), query, &page)
	return page, err
}

// GetFlight retrieves a single flight.
func (c *Client) GetFlight(ctx context.Context, id int64) (Flight, error) {
	var flight Flight
	err := c.getJSON(ctx, c.item(flightsResource, id), nil, &flight)
	return flight, err
}

// CreateFlight schedules a flight.
func (c *Client) CreateFlight(ctx context.Context, flight Flight) (Flight, error) {
	var created Flight
	err := c.postJSON(ctx, c.resource(flightsResource), flight, &created)
	return created, err
}

// UpdateFlight replaces a flight record.
func (c *Client) UpdateFlight(ctx context.Context, flight Flight) (Flight, error) {
	var updated Flight
	err := c.putJSON(ctx, c.item(flightsResource, flight.ID), flight, &updated)
	return updated, err
}

// DeleteFlight removes a flight record.
func (c *Client) DeleteFlight(ctx context.Context, id int64) error {
	return c.delete(ctx, c.item(flightsResource, id))
}
