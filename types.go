package aerogate

import (
	"context"

	"github.com/aerodesk/aerogate/api"
	"github.com/aerodesk/aerogate/credstore"
)

// Wire types of the authentication collaborator, re-exported so consumers of
// the engine do not need to import the api package for the common path.
type (
	// Credentials is the transient login payload; never persisted.
	Credentials = api.Credentials
	// NewAccount is the registration payload.
	NewAccount = api.NewAccount
	// UserProfile is the backend's view of the authenticated user.
	UserProfile = api.UserProfile
)

// SessionStatus is the lifecycle state of the client session.
type SessionStatus uint8

const (
	// StatusUnknown is the initial state, observable only until the first
	// CheckAuth resolves. Guards must never treat it as authenticated and
	// must not treat it as a redirect decision either.
	StatusUnknown SessionStatus = iota
	// StatusAuthenticated is an exported constant or variable used by the session engine.
	StatusAuthenticated
	// StatusUnauthenticated is an exported constant or variable used by the session engine.
	StatusUnauthenticated
)

func (s SessionStatus) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// SessionState is a point-in-time snapshot of the session. Copies are
// handed out by [Engine.State]; mutating a snapshot has no effect on the
// engine.
//
// Invariant: Status == StatusAuthenticated implies User != nil.
type SessionState struct {
	Status  SessionStatus
	User    *UserProfile
	Loading bool
}

// Authenticated reports whether the session is in the authenticated state.
func (s SessionState) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// Privileged reports whether the session belongs to a staff or superuser
// account. False whenever the session is not authenticated.
func (s SessionState) Privileged() bool {
	return s.Status == StatusAuthenticated && s.User != nil &&
		(s.User.IsStaff || s.User.IsSuperuser)
}

// AuthAPI is the slice of the HTTP collaborator the engine depends on.
// [api.Client] implements it; tests substitute their own.
type AuthAPI interface {
	ExchangeToken(ctx context.Context, creds api.Credentials) (credstore.TokenPair, error)
	RegisterAccount(ctx context.Context, account api.NewAccount) error
	FetchProfile(ctx context.Context, access string) (*api.UserProfile, error)
}
