package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Default endpoint paths, matching the backend's URL layout.
const (
	DefaultTokenPath    = "/api/user/token/"
	DefaultRegisterPath = "/api/user/register/"
	DefaultProfilePath  = "/api/user/me/"
	DefaultAirportRoot  = "/api/airport/"
)

// Config carries the endpoints and transport for a [Client].
type Config struct {
	BaseURL      string
	TokenPath    string
	RegisterPath string
	ProfilePath  string
	AirportRoot  string

	// HTTPClient is the underlying transport. Timeout policy belongs here;
	// the session engine imposes none of its own.
	HTTPClient *http.Client
}

// Client is a typed HTTP client for the booking backend. A zero timeout on
// the underlying http.Client is respected as "no timeout".
type Client struct {
	base *url.URL
	http *http.Client

	tokenPath    string
	registerPath string
	profilePath  string
	airportRoot  string
}

// NewClient validates cfg and returns a ready [Client]. Construction is
// allocation-only; no request is made until the first call.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api: BaseURL required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("api: BaseURL must be absolute")
	}

	c := &Client{
		base:         base,
		http:         cfg.HTTPClient,
		tokenPath:    cfg.TokenPath,
		registerPath: cfg.RegisterPath,
		profilePath:  cfg.ProfilePath,
		airportRoot:  cfg.AirportRoot,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.tokenPath == "" {
		c.tokenPath = DefaultTokenPath
	}
	if c.registerPath == "" {
		c.registerPath = DefaultRegisterPath
	}
	if c.profilePath == "" {
		c.profilePath = DefaultProfilePath
	}
	if c.airportRoot == "" {
		c.airportRoot = DefaultAirportRoot
	}

	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any, bearer string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

// do executes req and decodes a 2xx JSON body into out (out may be nil).
// Failures are classified: *TransportError before a response exists,
// *StatusError for a non-2xx exchange.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Method: req.Method, Path: req.URL.Path, Err: err}
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body, "")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPut, path, nil, body, "")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
