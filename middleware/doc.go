// Package middleware exposes HTTP route guards built on top of
// aerogate.Engine session state.
//
// # Guards
//
//   - [Attach] — injects the current session snapshot into every request.
//   - [RequireSession] — authenticated sessions only, redirects to login.
//   - [RequireStaff] — staff or superuser sessions only, redirects home.
//
// Each guard reads a session snapshot from the engine and decides between
// passing the request through, redirecting, or rendering a neutral loading
// response while the session is still unresolved.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement session logic itself — all decisions are delegated to
// Engine.State and the snapshot it returns.
//
// # What this package must NOT do
//
//   - Read or write the credential store (Engine handles I/O).
//   - Trigger network calls to the backend (rehydration is the shell's job).
//   - Make authorization decisions beyond the snapshot's Privileged check.
package middleware
