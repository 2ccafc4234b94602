package session

import (
	"testing"
	"time"
)

func TestIsExpiredIsStrict(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := &RefreshSession{UserID: "u", CreatedAt: now.Add(-time.Hour), ExpiresAt: now}

	if sess.IsExpired(now) {
		t.Fatal("session expiring exactly now must not be expired")
	}
	if !sess.IsExpired(now.Add(time.Microsecond)) {
		t.Fatal("session must be expired one microsecond after expiresAt")
	}
	if sess.IsExpired(now.Add(-time.Microsecond)) {
		t.Fatal("session must be live before expiresAt")
	}
}

func TestNewRefreshSessionDuration(t *testing.T) {
	now := time.Now()
	sess := NewRefreshSession("u", now, 30*24*time.Hour)
	if got := sess.ExpiresAt.Sub(sess.CreatedAt); got != 30*24*time.Hour {
		t.Fatalf("expiresAt - createdAt = %v", got)
	}
}

func TestEncodeRejectsInvalidSessions(t *testing.T) {
	now := time.Now()
	if _, err := Encode(nil); err == nil {
		t.Fatal("expected error for nil session")
	}
	if _, err := Encode(&RefreshSession{CreatedAt: now, ExpiresAt: now}); err == nil {
		t.Fatal("expected error for missing user id")
	}
	if _, err := Encode(&RefreshSession{UserID: "u", CreatedAt: now, ExpiresAt: now.Add(-time.Second)}); err == nil {
		t.Fatal("expected error when expiry precedes creation")
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	if _, err := Decode([]byte(`{"v":9,"userId":"u","createdAt":"2025-01-01T00:00:00Z","expiresAt":"2025-01-02T00:00:00Z"}`)); err == nil {
		t.Fatal("expected version error")
	}
	if _, err := Decode([]byte(`{"v":1,"createdAt":"2025-01-01T00:00:00Z","expiresAt":"2025-01-02T00:00:00Z"}`)); err == nil {
		t.Fatal("expected missing user error")
	}
}
