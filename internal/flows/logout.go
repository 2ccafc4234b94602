package flows

import (
	"context"
	"errors"

	"github.com/MrEthical07/tokenAuth/refresh"
)

// LogoutFailureKind classifies logout failures for root-level mapping.
type LogoutFailureKind int

const (
	LogoutFailureNone LogoutFailureKind = iota
	LogoutFailureInvalidSession
	LogoutFailureBadAccessToken
	// LogoutFailureMismatch means the access token belongs to another user.
	// The session is left in place.
	LogoutFailureMismatch
	LogoutFailureStorage
)

// LogoutResult reports the session owner and, on mismatch, the token subject.
type LogoutResult struct {
	Failure LogoutFailureKind
	Err     error
	UserID  string
	Subject string
}

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	Tokens   Tokens
	Sessions SessionManager
}

// RunLogout revokes refreshTokenID after checking it belongs to the owner of accessToken.
func RunLogout(ctx context.Context, accessToken, refreshTokenID string, deps LogoutDeps) LogoutResult {
	sess, err := deps.Sessions.LiveToken(ctx, refreshTokenID)
	if err != nil {
		return LogoutResult{Failure: sessionFailure(err, LogoutFailureInvalidSession, LogoutFailureStorage), Err: err}
	}

	subject, err := deps.Tokens.SubjectOf(accessToken)
	if err != nil {
		return LogoutResult{Failure: LogoutFailureBadAccessToken, Err: err, UserID: sess.UserID}
	}
	if subject != sess.UserID {
		return LogoutResult{Failure: LogoutFailureMismatch, UserID: sess.UserID, Subject: subject}
	}

	if err := deps.Sessions.RemoveToken(ctx, refreshTokenID); err != nil {
		return LogoutResult{Failure: LogoutFailureStorage, Err: err, UserID: sess.UserID, Subject: subject}
	}
	return LogoutResult{UserID: sess.UserID, Subject: subject}
}

func sessionFailure[K ~int](err error, invalid, storage K) K {
	if errors.Is(err, refresh.ErrInvalidRefreshToken) {
		return invalid
	}
	return storage
}
