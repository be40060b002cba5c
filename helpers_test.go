package aerogate

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/aerodesk/aerogate/api"
	"github.com/aerodesk/aerogate/credstore"
)

// fakeAuthAPI scripts the three backend calls. Each func may be nil, in
// which case the call fails the test.
type fakeAuthAPI struct {
	t *testing.T

	exchangeFn func(ctx context.Context, creds api.Credentials) (credstore.TokenPair, error)
	registerFn func(ctx context.Context, account api.NewAccount) error
	profileFn  func(ctx context.Context, access string) (*api.UserProfile, error)

	exchangeCalls atomic.Int64
	registerCalls atomic.Int64
	profileCalls  atomic.Int64
}

func (f *fakeAuthAPI) ExchangeToken(ctx context.Context, creds api.Credentials) (credstore.TokenPair, error) {
	f.exchangeCalls.Add(1)
	if f.exchangeFn == nil {
		f.t.Fatal("unexpected ExchangeToken call")
	}
	return f.exchangeFn(ctx, creds)
}

func (f *fakeAuthAPI) RegisterAccount(ctx context.Context, account api.NewAccount) error {
	f.registerCalls.Add(1)
	if f.registerFn == nil {
		f.t.Fatal("unexpected RegisterAccount call")
	}
	return f.registerFn(ctx, account)
}

func (f *fakeAuthAPI) FetchProfile(ctx context.Context, access string) (*api.UserProfile, error) {
	f.profileCalls.Add(1)
	if f.profileFn == nil {
		f.t.Fatal("unexpected FetchProfile call")
	}
	return f.profileFn(ctx, access)
}

func testProfile() *api.UserProfile {
	return &api.UserProfile{
		ID:        7,
		Email:     "pilot@example.com",
		FirstName: "Petra",
		LastName:  "Pilot",
	}
}

func staffProfile() *api.UserProfile {
	p := testProfile()
	p.IsStaff = true
	return p
}

func testTokens() credstore.TokenPair {
	return credstore.TokenPair{Access: "access-1", Refresh: "refresh-1"}
}

func scriptedExchange(pair credstore.TokenPair, err error) func(context.Context, api.Credentials) (credstore.TokenPair, error) {
	return func(context.Context, api.Credentials) (credstore.TokenPair, error) {
		return pair, err
	}
}

func scriptedProfile(profile *api.UserProfile, err error) func(context.Context, string) (*api.UserProfile, error) {
	return func(context.Context, string) (*api.UserProfile, error) {
		return profile, err
	}
}

// failingStore wraps a working store and forces errors per operation.
type failingStore struct {
	inner    credstore.Store
	saveErr  error
	loadErr  error
	clearErr error
}

func (s *failingStore) Save(ctx context.Context, pair credstore.TokenPair) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.inner.Save(ctx, pair)
}

func (s *failingStore) Load(ctx context.Context) (credstore.TokenPair, error) {
	if s.loadErr != nil {
		return credstore.TokenPair{}, s.loadErr
	}
	return s.inner.Load(ctx)
}

func (s *failingStore) Clear(ctx context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.inner.Clear(ctx)
}

// hookStore runs a callback before delegating Save, for interleaving tests.
type hookStore struct {
	credstore.Store
	beforeSave func()
}

func (s *hookStore) Save(ctx context.Context, pair credstore.TokenPair) error {
	if s.beforeSave != nil {
		s.beforeSave()
	}
	return s.Store.Save(ctx, pair)
}

func newTestEngine(t *testing.T, fake *fakeAuthAPI, store credstore.Store) *Engine {
	t.Helper()

	if store == nil {
		store = credstore.NewMemoryStore()
	}

	engine, err := New().
		WithAuthAPI(fake).
		WithCredentialStore(store).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func mustLoad(t *testing.T, store credstore.Store) credstore.TokenPair {
	t.Helper()

	pair, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return pair
}
