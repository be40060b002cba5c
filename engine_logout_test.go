package aerogate

import (
	"context"
	"fmt"
	"testing"

	"github.com/aerodesk/aerogate/api"
	"github.com/aerodesk/aerogate/credstore"
)

func TestLogoutClearsEverything(t *testing.T) {
	store := credstore.NewMemoryStore()
	fake := &fakeAuthAPI{
		t:          t,
		exchangeFn: scriptedExchange(testTokens(), nil),
		profileFn:  scriptedProfile(testProfile(), nil),
	}
	engine := newTestEngine(t, fake, store)

	if _, err := engine.Login(context.Background(), Credentials{Email: "x@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	engine.Logout(context.Background())

	state := engine.State()
	if state.Status != StatusUnauthenticated {
		t.Fatalf("status = %v, want %v", state.Status, StatusUnauthenticated)
	}
	if state.User != nil {
		t.Fatal("logout must drop the user snapshot")
	}
	if !mustLoad(t, store).Empty() {
		t.Fatal("logout must clear the stored token pair")
	}
	if got := engine.MetricsSnapshot().Counters[MetricLogout]; got != 1 {
		t.Fatalf("logout counter = %d, want 1", got)
	}
}

func TestLogoutSucceedsWhenStoreClearFails(t *testing.T) {
	store := &failingStore{
		inner:    credstore.NewMemoryStore(),
		clearErr: fmt.Errorf("%w: write timeout", credstore.ErrStoreUnavailable),
	}
	fake := &fakeAuthAPI{t: t}
	engine := newTestEngine(t, fake, store)

	engine.Logout(context.Background())

	if engine.State().Status != StatusUnauthenticated {
		t.Fatal("logout must settle the session even when the store clear fails")
	}
}

func TestLogoutSupersedesSlowLogin(t *testing.T) {
	store := credstore.NewMemoryStore()
	gate := make(chan struct{})
	started := make(chan struct{})

	fake := &fakeAuthAPI{
		t:          t,
		exchangeFn: scriptedExchange(testTokens(), nil),
	}
	fake.profileFn = func(context.Context, string) (*api.UserProfile, error) {
		close(started)
		<-gate
		return testProfile(), nil
	}
	engine := newTestEngine(t, fake, store)

	done := make(chan error, 1)
	go func() {
		_, err := engine.Login(context.Background(), Credentials{Email: "x@example.com", Password: "pw"})
		done <- err
	}()

	<-started
	engine.Logout(context.Background())
	close(gate)

	if err := <-done; err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if engine.State().Status != StatusUnauthenticated {
		t.Fatal("a login that lost the race must not overwrite the logout")
	}
	if !mustLoad(t, store).Empty() {
		t.Fatal("the store must stay empty after the logout wins")
	}
	if got := engine.MetricsSnapshot().Counters[MetricCommitSuperseded]; got != 1 {
		t.Fatalf("superseded counter = %d, want 1", got)
	}
}

func TestLogoutDuringTokenSaveRollsBack(t *testing.T) {
	inner := credstore.NewMemoryStore()
	store := &hookStore{Store: inner}
	fake := &fakeAuthAPI{
		t:          t,
		exchangeFn: scriptedExchange(testTokens(), nil),
		profileFn:  scriptedProfile(testProfile(), nil),
	}
	engine := newTestEngine(t, fake, store)

	// The logout lands after the login's freshness check but before its
	// pair hits the store, so the pair is planted into an already ended
	// session and must be rolled back when the commit is discarded.
	store.beforeSave = func() {
		store.beforeSave = nil
		engine.Logout(context.Background())
	}

	if _, err := engine.Login(context.Background(), Credentials{Email: "x@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if engine.State().Status != StatusUnauthenticated {
		t.Fatal("the logout outcome must stand")
	}
	if !mustLoad(t, inner).Empty() {
		t.Fatal("a pair saved after a logout must be rolled back")
	}
	if got := engine.MetricsSnapshot().Counters[MetricCommitSuperseded]; got != 1 {
		t.Fatalf("superseded counter = %d, want 1", got)
	}
}
