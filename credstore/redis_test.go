package credstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisStore(client, "ag")
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	pair := TokenPair{Access: "a-token", Refresh: "r-token"}
	if err := store.Save(ctx, pair); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if got, err := mr.Get("ag:access_token"); err != nil || got != "a-token" {
		t.Fatalf("access entry = %q, %v", got, err)
	}
	if got, err := mr.Get("ag:refresh_token"); err != nil || got != "r-token" {
		t.Fatalf("refresh entry = %q, %v", got, err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != pair {
		t.Fatalf("loaded = %+v, want %+v", loaded, pair)
	}
}

func TestRedisStoreLoadEmpty(t *testing.T) {
	_, store := newTestStore(t)

	pair, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !pair.Empty() {
		t.Fatalf("empty store returned %+v", pair)
	}
}

func TestRedisStoreClear(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, TokenPair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if mr.Exists("ag:access_token") || mr.Exists("ag:refresh_token") {
		t.Fatal("Clear left entries behind")
	}

	// Clearing again is not an error.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, store := newTestStore(t)
	mr.Close()

	ctx := context.Background()

	if err := store.Save(ctx, TokenPair{Access: "a"}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Save err = %v, want ErrStoreUnavailable", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Load err = %v, want ErrStoreUnavailable", err)
	}
	if err := store.Clear(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Clear err = %v, want ErrStoreUnavailable", err)
	}
	if err := store.Ping(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("Ping err = %v, want ErrStoreUnavailable", err)
	}
}

func TestRedisStoreDefaultPrefix(t *testing.T) {
	store := NewRedisStore(nil, "")
	if store.accessKey() != "ag:access_token" {
		t.Fatalf("accessKey = %q, want ag:access_token", store.accessKey())
	}
}
