package session

import (
	"encoding/json"
	"errors"
	"time"
)

const sessionFormatVersionCurrent = 1

type wireSession struct {
	Version   int       `json:"v"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Encode serializes s into the JSON blob stored in Redis. Timestamps keep
// nanosecond precision.
func Encode(s *RefreshSession) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}
	if s.UserID == "" {
		return nil, errors.New("session user id required")
	}
	if s.ExpiresAt.Before(s.CreatedAt) {
		return nil, errors.New("session expires before it was created")
	}
	return json.Marshal(wireSession{
		Version:   sessionFormatVersionCurrent,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
	})
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (*RefreshSession, error) {
	var w wireSession
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.Version != sessionFormatVersionCurrent {
		return nil, errors.New("invalid session version")
	}
	if w.UserID == "" {
		return nil, errors.New("session user id missing")
	}
	if w.ExpiresAt.IsZero() {
		return nil, errors.New("session expiry missing")
	}
	return &RefreshSession{
		UserID:    w.UserID,
		CreatedAt: w.CreatedAt,
		ExpiresAt: w.ExpiresAt,
	}, nil
}
