// Package api is the HTTP collaborator of the session engine: a thin typed
// client for the flight-booking backend. It covers the three authentication
// endpoints the engine depends on (token exchange, registration, profile
// lookup) and the catalog, order, and admin CRUD endpoints the render layer
// reads.
//
// Every failure is classified before it leaves this package: a network-level
// problem surfaces as [*TransportError], a non-2xx response as [*StatusError].
// The engine maps those onto its own error taxonomy; this package never
// decides what a failure means for session state.
//
// # What this package must NOT do
//
//   - Store or cache tokens (that is credstore's job).
//   - Retry or refresh on 401 (the engine owns the invalidation policy).
//   - Interpret response bodies of failed requests beyond draining them.
package api
