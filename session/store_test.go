package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSessionStoreTest(t *testing.T) (*Store, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(rdb, "", time.Hour)
	return store, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestSaveFindRoundTrip(t *testing.T) {
	store, mr, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	now := time.Date(2025, 1, 2, 3, 4, 5, 678901000, time.UTC)
	sess := NewRefreshSession("u-1", now, time.Hour)
	if err := store.Save(ctx, "tok-1", sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	if !mr.Exists("refresh_token:tok-1") {
		t.Fatal("expected key under default prefix")
	}
	if ttl := mr.TTL("refresh_token:tok-1"); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}

	got, err := store.Find(ctx, "tok-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.UserID != "u-1" {
		t.Fatalf("user id = %q", got.UserID)
	}
	if !got.CreatedAt.Equal(sess.CreatedAt) || !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Fatalf("timestamps lost precision: got %v/%v want %v/%v", got.CreatedAt, got.ExpiresAt, sess.CreatedAt, sess.ExpiresAt)
	}
}

func TestSaveResetsTTL(t *testing.T) {
	store, mr, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	sess := NewRefreshSession("u-1", time.Now(), time.Hour)
	if err := store.Save(ctx, "tok-1", sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(30 * time.Minute)
	if err := store.Save(ctx, "tok-1", sess); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if ttl := mr.TTL("refresh_token:tok-1"); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h after upsert", ttl)
	}
}

func TestFindMissingAndEvicted(t *testing.T) {
	store, mr, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	if _, err := store.Find(ctx, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	if err := store.Save(ctx, "tok-1", NewRefreshSession("u-1", time.Now(), time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(time.Hour + time.Second)
	if _, err := store.Find(ctx, "tok-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected TTL-evicted key to be not found, got %v", err)
	}
}

func TestFindCorruptBlob(t *testing.T) {
	store, mr, done := newSessionStoreTest(t)
	defer done()

	if err := mr.Set("refresh_token:tok-bad", "not-json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Find(context.Background(), "tok-bad"); !errors.Is(err, ErrSessionCorrupt) {
		t.Fatalf("expected ErrSessionCorrupt, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store, mr, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Save(ctx, "tok-1", NewRefreshSession("u-1", time.Now(), time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if mr.Exists("refresh_token:tok-1") {
		t.Fatal("key should be gone")
	}
}

func TestBackendFailureWrapsRedisUnavailable(t *testing.T) {
	store, mr, done := newSessionStoreTest(t)
	defer done()
	ctx := context.Background()

	mr.Close()

	if err := store.Save(ctx, "tok-1", NewRefreshSession("u-1", time.Now(), time.Hour)); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("save: expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := store.Find(ctx, "tok-1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("find: expected ErrRedisUnavailable, got %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("delete: expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := store.Ping(ctx); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("ping: expected ErrRedisUnavailable, got %v", err)
	}
}

func TestCustomPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewStore(rdb, "rt:", time.Minute)
	if err := store.Save(context.Background(), "abc", NewRefreshSession("u", time.Now(), time.Minute)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("rt:abc") {
		t.Fatal("expected custom prefix key")
	}
}
