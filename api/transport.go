package api

import (
	"context"
	"net/http"

	"github.com/aerodesk/aerogate/credstore"
)

// TokenSource supplies the current access token for outgoing requests.
// An empty token with a nil error means "send the request unauthenticated".
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// StoreTokenSource reads the access token from a credential store on every
// call, so a Logout takes effect on the next request without any plumbing.
type StoreTokenSource struct {
	Store credstore.Store
}

func (s StoreTokenSource) AccessToken(ctx context.Context) (string, error) {
	pair, err := s.Store.Load(ctx)
	if err != nil {
		return "", err
	}
	return pair.Access, nil
}

// BearerTransport injects "Authorization: Bearer <token>" into every request
// that does not already carry one. Requests are cloned before mutation.
type BearerTransport struct {
	Source TokenSource
	Base   http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Source == nil || req.Header.Get("Authorization") != "" {
		return base.RoundTrip(req)
	}

	token, err := t.Source.AccessToken(req.Context())
	if err != nil || token == "" {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clone)
}
