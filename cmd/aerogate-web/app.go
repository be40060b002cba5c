package main

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	aerogate "github.com/aerodesk/aerogate"
	"github.com/aerodesk/aerogate/api"
	"github.com/aerodesk/aerogate/middleware"
)

type webApp struct {
	engine   *aerogate.Engine
	backend  *api.Client
	loginURL string
	homeURL  string
}

type pageData struct {
	Title   string
	Session aerogate.SessionState
	Error   string
	Notice  string

	Flights  []api.Flight
	Orders   []api.Order
	Airports []api.Airport
}

func (a *webApp) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data.Session.Status == aerogate.StatusUnknown {
		if state, ok := middleware.SessionFromContext(r.Context()); ok {
			data.Session = state
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("aerogate-web: render %s: %v", name, err)
	}
}

func (a *webApp) handleHome(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "home", pageData{Title: "AeroGate"})
}

func (a *webApp) handleFlights(w http.ResponseWriter, r *http.Request) {
	filter := api.FlightFilter{DepartureDate: r.URL.Query().Get("date")}
	if raw := r.URL.Query().Get("route"); raw != "" {
		filter.RouteID, _ = strconv.ParseInt(raw, 10, 64)
	}

	data := pageData{Title: "Flights"}
	page, err := a.backend.ListFlights(r.Context(), filter)
	if err != nil {
		data.Error = "the flight catalog is unavailable right now"
	} else {
		data.Flights = page.Results
	}
	a.render(w, r, "flights", data)
}

func (a *webApp) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if a.engine.State().Authenticated() {
		http.Redirect(w, r, a.homeURL, http.StatusSeeOther)
		return
	}
	a.render(w, r, "login", pageData{Title: "Sign in"})
}

func (a *webApp) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.render(w, r, "login", pageData{Title: "Sign in", Error: "malformed form submission"})
		return
	}

	creds := aerogate.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	_, err := a.engine.Login(r.Context(), creds)
	switch {
	case err == nil:
		http.Redirect(w, r, a.homeURL, http.StatusSeeOther)
	case errors.Is(err, aerogate.ErrInvalidCredentials):
		a.render(w, r, "login", pageData{Title: "Sign in", Error: "email or password is incorrect"})
	default:
		a.render(w, r, "login", pageData{Title: "Sign in", Error: "sign-in is unavailable right now, try again shortly"})
	}
}

func (a *webApp) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "register", pageData{Title: "Create account"})
}

func (a *webApp) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.render(w, r, "register", pageData{Title: "Create account", Error: "malformed form submission"})
		return
	}

	account := aerogate.NewAccount{
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
	}

	err := a.engine.Register(r.Context(), account)
	switch {
	case err == nil:
		// Registration does not sign the account in; the user proves the
		// password once more at the login form.
		http.Redirect(w, r, a.loginURL, http.StatusSeeOther)
	case errors.Is(err, aerogate.ErrRegistrationFailed):
		a.render(w, r, "register", pageData{Title: "Create account", Error: "registration was rejected, check the form values"})
	default:
		a.render(w, r, "register", pageData{Title: "Create account", Error: "registration is unavailable right now, try again shortly"})
	}
}

func (a *webApp) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.engine.Logout(r.Context())
	http.Redirect(w, r, a.homeURL, http.StatusSeeOther)
}

func (a *webApp) handleOrders(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "My orders"}
	page, err := a.backend.ListOrders(r.Context())
	if err != nil {
		data.Error = "order history is unavailable right now"
	} else {
		data.Orders = page.Results
	}
	a.render(w, r, "orders", data)
}

func (a *webApp) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	flightID, _ := strconv.ParseInt(r.PostFormValue("flight"), 10, 64)
	row, _ := strconv.Atoi(r.PostFormValue("row"))
	seat, _ := strconv.Atoi(r.PostFormValue("seat"))

	order := api.Order{Tickets: []api.Ticket{{Flight: flightID, Row: row, Seat: seat}}}
	if _, err := a.backend.CreateOrder(r.Context(), order); err != nil {
		data := pageData{Title: "My orders", Error: "the booking was rejected"}
		if page, listErr := a.backend.ListOrders(r.Context()); listErr == nil {
			data.Orders = page.Results
		}
		a.render(w, r, "orders", data)
		return
	}

	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (a *webApp) handleAdmin(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Admin"}
	page, err := a.backend.ListAirports(r.Context())
	if err != nil {
		data.Error = "the airport catalog is unavailable right now"
	} else {
		data.Airports = page.Results
	}
	a.render(w, r, "admin", data)
}

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "layout_top"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} · AeroGate</title></head>
<body>
<nav>
  <a href="/">Home</a> · <a href="/flights">Flights</a>
  {{if .Session.Authenticated}}
    · <a href="/orders">My orders</a>
    {{if .Session.Privileged}} · <a href="/admin">Admin</a>{{end}}
    · <form method="post" action="/logout" style="display:inline"><button>Sign out ({{.Session.User.Email}})</button></form>
  {{else}}
    · <a href="/login">Sign in</a> · <a href="/register">Create account</a>
  {{end}}
</nav>
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
{{if .Notice}}<p>{{.Notice}}</p>{{end}}
{{end}}

{{define "layout_bottom"}}</body></html>{{end}}

{{define "home"}}{{template "layout_top" .}}
<h1>AeroGate</h1>
<p>Browse flights, book tickets, manage the fleet.</p>
{{template "layout_bottom" .}}{{end}}

{{define "flights"}}{{template "layout_top" .}}
<h1>Flights</h1>
<form method="get" action="/flights">
  <label>Route ID <input name="route" type="number" min="1"></label>
  <label>Date <input name="date" type="date"></label>
  <button>Filter</button>
</form>
<ul>
{{range .Flights}}<li>Flight {{.ID}}: route {{.Route}}, departs {{.DepartureTime.Format "2006-01-02 15:04"}} UTC</li>{{else}}<li>No flights match.</li>{{end}}
</ul>
{{template "layout_bottom" .}}{{end}}

{{define "login"}}{{template "layout_top" .}}
<h1>Sign in</h1>
<form method="post" action="/login">
  <label>Email <input name="email" type="email" required></label>
  <label>Password <input name="password" type="password" required></label>
  <button>Sign in</button>
</form>
{{template "layout_bottom" .}}{{end}}

{{define "register"}}{{template "layout_top" .}}
<h1>Create account</h1>
<form method="post" action="/register">
  <label>Email <input name="email" type="email" required></label>
  <label>Password <input name="password" type="password" required minlength="5"></label>
  <label>First name <input name="first_name"></label>
  <label>Last name <input name="last_name"></label>
  <button>Create account</button>
</form>
{{template "layout_bottom" .}}{{end}}

{{define "orders"}}{{template "layout_top" .}}
<h1>My orders</h1>
<ul>
{{range .Orders}}<li>Order {{.ID}} ({{len .Tickets}} ticket(s), placed {{.CreatedAt.Format "2006-01-02"}})</li>{{else}}<li>No orders yet.</li>{{end}}
</ul>
<h2>Book a seat</h2>
<form method="post" action="/orders">
  <label>Flight ID <input name="flight" type="number" min="1" required></label>
  <label>Row <input name="row" type="number" min="1" required></label>
  <label>Seat <input name="seat" type="number" min="1" required></label>
  <button>Book</button>
</form>
{{template "layout_bottom" .}}{{end}}

{{define "admin"}}{{template "layout_top" .}}
<h1>Admin</h1>
<h2>Airports</h2>
<ul>
{{range .Airports}}<li>{{.Name}} ({{.ClosestBigCity}})</li>{{else}}<li>No airports.</li>{{end}}
</ul>
{{template "layout_bottom" .}}{{end}}
`))
