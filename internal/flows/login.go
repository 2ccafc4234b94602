package flows

import (
	"context"
)

// LoginFailureKind classifies login failures for root-level mapping.
type LoginFailureKind int

const (
	LoginFailureNone LoginFailureKind = iota
	LoginFailureUnknownHandle
	LoginFailureBadPassword
	LoginFailureUserStore
	LoginFailureIssueAccess
	LoginFailureSession
)

// LoginResult carries either the user and its token pair or failure metadata.
type LoginResult struct {
	Failure        LoginFailureKind
	Err            error
	User           UserRecord
	AccessToken    string
	RefreshTokenID string
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	FindByHandle    UserLookup
	PasswordMatches func(plain, hash string) bool
	// DummyHash is compared against when the handle is unknown so both
	// failure paths cost one hash verification.
	DummyHash string
	Tokens    Tokens
	Sessions  SessionManager
}

// RunLogin verifies credentials and issues a fresh pair. It never deletes sessions.
// Account status is not checked here.
func RunLogin(ctx context.Context, handle, plainPassword string, deps LoginDeps) LoginResult {
	user, found, err := deps.FindByHandle(ctx, handle)
	if err != nil {
		return LoginResult{Failure: LoginFailureUserStore, Err: err}
	}
	if !found {
		if deps.DummyHash != "" {
			_ = deps.PasswordMatches(plainPassword, deps.DummyHash)
		}
		return LoginResult{Failure: LoginFailureUnknownHandle}
	}
	if !deps.PasswordMatches(plainPassword, user.PasswordHash) {
		return LoginResult{Failure: LoginFailureBadPassword, User: user}
	}

	pair := issuePair(ctx, user, deps.Tokens, deps.Sessions)
	if pair.err != nil {
		kind := LoginFailureSession
		if pair.accessFailed {
			kind = LoginFailureIssueAccess
		}
		return LoginResult{Failure: kind, Err: pair.err, User: user}
	}

	return LoginResult{
		User:           user,
		AccessToken:    pair.access,
		RefreshTokenID: pair.refresh,
	}
}
