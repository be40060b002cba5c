package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, srv
}

func TestExchangeToken(t *testing.T) {
	var gotBody Credentials
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != DefaultTokenPath {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("request is missing X-Request-ID")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "a-1", "refresh": "r-1"})
	}))

	pair, err := client.ExchangeToken(context.Background(), Credentials{Email: "x@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("ExchangeToken failed: %v", err)
	}
	if pair.Access != "a-1" || pair.Refresh != "r-1" {
		t.Fatalf("pair = %+v", pair)
	}
	if gotBody.Email != "x@example.com" {
		t.Fatalf("server saw credentials %+v", gotBody)
	}
}

func TestExchangeTokenRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"no active account"}`, http.StatusUnauthorized)
	}))

	_, err := client.ExchangeToken(context.Background(), Credentials{Email: "x@example.com", Password: "bad"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", statusErr.Code)
	}
}

func TestExchangeTokenTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections from now on

	client, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.ExchangeToken(context.Background(), Credentials{Email: "x@example.com", Password: "pw"})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if transportErr.Unwrap() == nil {
		t.Fatal("transport error must carry its cause")
	}
}

func TestRegisterAccount(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultRegisterPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	if err := client.RegisterAccount(context.Background(), NewAccount{Email: "n@example.com", Password: "secret"}); err != nil {
		t.Fatalf("RegisterAccount failed: %v", err)
	}
}

func TestFetchProfileSendsBearer(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultProfilePath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(UserProfile{ID: 3, Email: "p@example.com", IsStaff: true})
	}))

	profile, err := client.FetchProfile(context.Background(), "token-123")
	if err != nil {
		t.Fatalf("FetchProfile failed: %v", err)
	}
	if profile.ID != 3 || !profile.IsStaff {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("empty BaseURL must be rejected")
	}
	if _, err := NewClient(Config{BaseURL: "/relative"}); err == nil {
		t.Fatal("relative BaseURL must be rejected")
	}
}
