package aerogate

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestBuildRequiresCredentialStore(t *testing.T) {
	_, err := New().
		WithAuthAPI(&fakeAuthAPI{t: t}).
		Build()
	if err == nil || !strings.Contains(err.Error(), "credential store required") {
		t.Fatalf("err = %v, want credential store error", err)
	}
}

func TestBuildValidatesConfigWithoutExplicitAPI(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	_, err := New().
		WithRedis(rdb).
		Build()
	if err == nil || !strings.Contains(err.Error(), "BaseURL") {
		t.Fatalf("err = %v, want BaseURL validation error", err)
	}
}

func TestBuildWithRedisStore(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	fake := &fakeAuthAPI{
		t:          t,
		exchangeFn: scriptedExchange(testTokens(), nil),
		profileFn:  scriptedProfile(testProfile(), nil),
	}

	engine, err := New().
		WithAuthAPI(fake).
		WithRedis(rdb).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := engine.Login(context.Background(), Credentials{Email: "x@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if got, err := mr.Get("ag:access_token"); err != nil || got != "access-1" {
		t.Fatalf("redis access token = %q, %v; want access-1", got, err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().
		WithAuthAPI(&fakeAuthAPI{t: t}).
		WithCredentialStore(&failingStore{})

	if _, err := b.Build(); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if _, err := b.Build(); err == nil || !strings.Contains(err.Error(), "already used") {
		t.Fatalf("err = %v, want already-used error", err)
	}
}

func TestWithEventSinkEnablesEvents(t *testing.T) {
	sink := NewChannelSink(1)
	engine, err := New().
		WithAuthAPI(&fakeAuthAPI{t: t}).
		WithCredentialStore(&failingStore{}).
		WithEventSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if engine.events == nil {
		t.Fatal("WithEventSink must start the dispatcher")
	}
}
