// Package aerogate is the client-side session subsystem for a flight-booking
// REST API. It acquires, persists, rehydrates, and invalidates an
// authenticated session, and feeds the render-time guards that admit or deny
// navigation to protected views.
//
// The package is designed for concurrent UI workloads: Engine methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build]. Overlapping mutations are serialized through an operation
// sequence — a superseded Login can never clobber a newer Logout or CheckAuth
// result.
//
// # Architecture boundaries
//
// aerogate is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (SessionState, Event, MetricsSnapshot). Token persistence
// lives in [github.com/aerodesk/aerogate/credstore], the HTTP collaborator in
// [github.com/aerodesk/aerogate/api], and the navigation guards in
// [github.com/aerodesk/aerogate/middleware].
//
// # What this package must NOT do
//
//   - Inspect token contents. The TokenPair is opaque; only its presence is
//     consulted, and the backend remains the validation authority.
//   - Persist derived session state. The stored TokenPair is the single
//     durable record; user and status are re-derived by CheckAuth at start.
//   - Surface CheckAuth failures as errors. Rehydration failures collapse to
//     the unauthenticated state and are observable only through events.
package aerogate
