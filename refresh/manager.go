package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/tokenAuth/internal"
	"github.com/MrEthical07/tokenAuth/session"
)

var (
	// ErrInvalidRefreshToken covers every id that cannot continue a session:
	// malformed, unknown, rotated, revoked, expired or corrupt.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrStorageUnavailable wraps backend failures of the session store.
	ErrStorageUnavailable = errors.New("refresh storage unavailable")
)

// Store is the persistence contract the Manager needs. *session.Store satisfies it.
type Store interface {
	Save(ctx context.Context, tokenID string, sess *session.RefreshSession) error
	Find(ctx context.Context, tokenID string) (*session.RefreshSession, error)
	Delete(ctx context.Context, tokenID string) error
}

// Manager owns the lifecycle of refresh sessions. Each token id moves from
// active to exactly one of rotated, revoked or expired and never comes back.
type Manager struct {
	store    Store
	duration time.Duration
	now      func() time.Time
	newID    func() (string, error)
}

// NewManager creates a Manager issuing sessions that live for duration.
// A nil now uses time.Now.
func NewManager(store Store, duration time.Duration, now func() time.Time) (*Manager, error) {
	if store == nil {
		return nil, errors.New("refresh store is required")
	}
	if duration <= 0 {
		return nil, errors.New("refresh duration must be > 0")
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:    store,
		duration: duration,
		now:      now,
		newID:    internal.NewTokenID,
	}, nil
}

// Duration returns the lifetime given to new sessions.
func (m *Manager) Duration() time.Duration {
	return m.duration
}

// CreateToken starts a new session for userID and returns its token id.
func (m *Manager) CreateToken(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", errors.New("refresh: empty user id")
	}
	id, err := m.newID()
	if err != nil {
		return "", fmt.Errorf("refresh: generate token id: %w", err)
	}

	sess := session.NewRefreshSession(userID, m.now(), m.duration)
	if err := m.store.Save(ctx, id, sess); err != nil {
		return "", storageError(err)
	}
	return id, nil
}

// GetToken loads the session for tokenID. Expiry is not checked here.
func (m *Manager) GetToken(ctx context.Context, tokenID string) (*session.RefreshSession, error) {
	if !internal.ValidTokenID(tokenID) {
		return nil, ErrInvalidRefreshToken
	}

	sess, err := m.store.Find(ctx, tokenID)
	if err != nil {
		return nil, storageError(err)
	}
	return sess, nil
}

// LiveToken is GetToken plus the expiry gate.
func (m *Manager) LiveToken(ctx context.Context, tokenID string) (*session.RefreshSession, error) {
	sess, err := m.GetToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired(m.now()) {
		return nil, ErrInvalidRefreshToken
	}
	return sess, nil
}

// RotateToken replaces tokenID with a new id for the same user.
// The new session is saved before the old one is deleted. A failed delete
// is reported as ErrStorageUnavailable even though the new id is live.
func (m *Manager) RotateToken(ctx context.Context, tokenID string) (string, error) {
	sess, err := m.LiveToken(ctx, tokenID)
	if err != nil {
		return "", err
	}

	next, err := m.CreateToken(ctx, sess.UserID)
	if err != nil {
		return "", err
	}

	if err := m.store.Delete(ctx, tokenID); err != nil {
		return "", storageError(err)
	}
	return next, nil
}

// RemoveToken deletes tokenID. Removing an unknown id is not an error.
func (m *Manager) RemoveToken(ctx context.Context, tokenID string) error {
	if !internal.ValidTokenID(tokenID) {
		return nil
	}
	if err := m.store.Delete(ctx, tokenID); err != nil {
		return storageError(err)
	}
	return nil
}

func storageError(err error) error {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionCorrupt):
		return ErrInvalidRefreshToken
	case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrStorageUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}
