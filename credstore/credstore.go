package credstore

import (
	"context"
	"errors"
)

// Durable entry names for the two tokens.
const (
	AccessKey  = "access_token"
	RefreshKey = "refresh_token"
)

// ErrStoreUnavailable wraps driver-level failures (Redis down, file
// unreadable). Callers distinguish "no token stored" (zero-valued pair, nil
// error) from "could not find out".
var ErrStoreUnavailable = errors.New("credential store unavailable")

// TokenPair is the opaque bearer token pair issued by the token endpoint.
// Either field may be empty; a partial pair is representable and is the
// caller's problem to interpret.
type TokenPair struct {
	Access  string
	Refresh string
}

// HasAccess reports whether an access token is present. Presence is the only
// property the session engine ever reads off a pair.
func (p TokenPair) HasAccess() bool {
	return p.Access != ""
}

// Empty reports whether neither token is present.
func (p TokenPair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store is a process-wide durable slot for one TokenPair.
//
// Save overwrites both entries. Load returns whatever is stored, with absent
// entries as empty strings and a nil error. Clear removes both entries and is
// idempotent.
type Store interface {
	Save(ctx context.Context, pair TokenPair) error
	Load(ctx context.Context) (TokenPair, error)
	Clear(ctx context.Context) error
}
