package flows

import (
	"context"
)

// RefreshFailureKind classifies refresh flow failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureInvalidSession
	RefreshFailureStorage
	RefreshFailureUserStore
	RefreshFailureUserNotFound
	RefreshFailureAccountNotActive
	RefreshFailureRotate
	RefreshFailureIssueAccess
)

// RefreshResult carries either the rotated pair or failure metadata.
type RefreshResult struct {
	Failure RefreshFailureKind
	Err     error
	UserID  string
	User    UserRecord
	// CleanupErr is set when deleting the session of a missing or
	// inactive user failed.
	CleanupErr     error
	AccessToken    string
	RefreshTokenID string
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	FindByID UserLookup
	Tokens   Tokens
	Sessions SessionManager
}

// RunRefresh rotates refreshTokenID and mints an access token with the user's
// current role. Sessions of missing or inactive users are deleted.
func RunRefresh(ctx context.Context, refreshTokenID string, deps RefreshDeps) RefreshResult {
	sess, err := deps.Sessions.LiveToken(ctx, refreshTokenID)
	if err != nil {
		return RefreshResult{Failure: sessionFailure(err, RefreshFailureInvalidSession, RefreshFailureStorage), Err: err}
	}

	user, found, err := deps.FindByID(ctx, sess.UserID)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureUserStore, Err: err, UserID: sess.UserID}
	}
	if !found {
		return RefreshResult{
			Failure:    RefreshFailureUserNotFound,
			UserID:     sess.UserID,
			CleanupErr: deps.Sessions.RemoveToken(ctx, refreshTokenID),
		}
	}
	if !user.Active {
		return RefreshResult{
			Failure:    RefreshFailureAccountNotActive,
			UserID:     sess.UserID,
			User:       user,
			CleanupErr: deps.Sessions.RemoveToken(ctx, refreshTokenID),
		}
	}

	next, err := deps.Sessions.RotateToken(ctx, refreshTokenID)
	if err != nil {
		return RefreshResult{
			Failure: sessionFailure(err, RefreshFailureInvalidSession, RefreshFailureRotate),
			Err:     err,
			UserID:  sess.UserID,
			User:    user,
		}
	}

	access, err := deps.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureIssueAccess, Err: err, UserID: sess.UserID, User: user}
	}

	return RefreshResult{
		UserID:         sess.UserID,
		User:           user,
		AccessToken:    access,
		RefreshTokenID: next,
	}
}
