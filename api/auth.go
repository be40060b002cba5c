package api

import (
	"context"
	"net/http"

	"github.com/aerodesk/aerogate/credstore"
)

// ExchangeToken trades credentials for a token pair at the token endpoint.
// A non-2xx response means the credentials were rejected; the caller decides
// what that means for session state.
func (c *Client) ExchangeToken(ctx context.Context, creds Credentials) (credstore.TokenPair, error) {
	var body struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.postJSON(ctx, c.tokenPath, creds, &body); err != nil {
		return credstore.TokenPair{}, err
	}

	return credstore.TokenPair{Access: body.Access, Refresh: body.Refresh}, nil
}

// RegisterAccount creates a new account. Only the response status is
// consumed; registration does not log the user in.
func (c *Client) RegisterAccount(ctx context.Context, account NewAccount) error {
	return c.postJSON(ctx, c.registerPath, account, nil)
}

// FetchProfile retrieves the profile behind access. Any non-2xx response,
// 401 included, is reported as a [*StatusError] and is treated upstream as
// "session invalid".
func (c *Client) FetchProfile(ctx context.Context, access string) (*UserProfile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.profilePath, nil, nil, access)
	if err != nil {
		return nil, err
	}

	var profile UserProfile
	if err := c.do(req, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
