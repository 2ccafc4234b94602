package session

import "time"

// RefreshSession is the server-held record behind one refresh token id.
// The id itself is the store key and never appears inside the record.
type RefreshSession struct {
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewRefreshSession builds a session for userID that expires ttl after now.
func NewRefreshSession(userID string, now time.Time, ttl time.Duration) *RefreshSession {
	return &RefreshSession{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether now is strictly after ExpiresAt. A session whose
// ExpiresAt equals now is still live.
func (s *RefreshSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
