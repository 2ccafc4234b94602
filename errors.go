package tokenAuth

import (
	"errors"

	"github.com/MrEthical07/tokenAuth/refresh"
)

var (
	// ErrInvalidCredentials covers both an unknown handle and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateHandle is returned by Signup when the handle is taken.
	ErrDuplicateHandle = errors.New("handle already taken")
	// ErrInvalidRefreshToken is returned for unknown, rotated, revoked, expired
	// or foreign refresh token ids.
	ErrInvalidRefreshToken = refresh.ErrInvalidRefreshToken
	// ErrUserNotFound is returned by Refresh when the session owner no longer exists,
	// and by user stores for a missing row.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountNotActive is returned by Refresh for SUSPENDED or DELETED accounts.
	ErrAccountNotActive = errors.New("account not active")
	// ErrStorageUnavailable wraps refresh session backend failures.
	ErrStorageUnavailable = refresh.ErrStorageUnavailable
	// ErrUpstreamUnavailable wraps user store failures.
	ErrUpstreamUnavailable = errors.New("user store unavailable")
	// ErrEngineNotReady is returned when an Engine method is called on a nil or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
