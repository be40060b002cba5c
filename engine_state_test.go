package aerogate

import (
	"context"
	"testing"
)

func TestInitialStateIsUnknown(t *testing.T) {
	engine := newTestEngine(t, &fakeAuthAPI{t: t}, nil)

	state := engine.State()
	if state.Status != StatusUnknown {
		t.Fatalf("status = %v, want %v", state.Status, StatusUnknown)
	}
	if state.User != nil || state.Loading {
		t.Fatalf("zero-session snapshot carries data: %+v", state)
	}
}

func TestStateReturnsCopy(t *testing.T) {
	fake := &fakeAuthAPI{
		t:          t,
		exchangeFn: scriptedExchange(testTokens(), nil),
		profileFn:  scriptedProfile(testProfile(), nil),
	}
	engine := newTestEngine(t, fake, nil)

	if _, err := engine.Login(context.Background(), Credentials{Email: "x@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	first := engine.State()
	first.User.Email = "tampered@example.com"

	second := engine.State()
	if second.User.Email != "pilot@example.com" {
		t.Fatal("mutating a snapshot must not reach the engine's state")
	}
}

func TestAuthenticatedAndPrivileged(t *testing.T) {
	cases := []struct {
		name        string
		state       SessionState
		wantAuthed  bool
		wantPrivile bool
	}{
		{"unknown", SessionState{Status: StatusUnknown}, false, false},
		{"unauthenticated", SessionState{Status: StatusUnauthenticated}, false, false},
		{"authenticated plain", SessionState{Status: StatusAuthenticated, User: testProfile()}, true, false},
		{"authenticated staff", SessionState{Status: StatusAuthenticated, User: staffProfile()}, true, true},
		{"authenticated missing user", SessionState{Status: StatusAuthenticated}, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.Authenticated(); got != tc.wantAuthed {
				t.Fatalf("Authenticated() = %v, want %v", got, tc.wantAuthed)
			}
			if got := tc.state.Privileged(); got != tc.wantPrivile {
				t.Fatalf("Privileged() = %v, want %v", got, tc.wantPrivile)
			}
		})
	}
}

func TestSessionStatusString(t *testing.T) {
	if StatusUnknown.String() != "unknown" ||
		StatusAuthenticated.String() != "authenticated" ||
		StatusUnauthenticated.String() != "unauthenticated" {
		t.Fatal("unexpected status strings")
	}
}
