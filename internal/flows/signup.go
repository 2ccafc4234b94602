package flows

import (
	"context"
)

// SignupFailureKind classifies signup failures for root-level mapping.
type SignupFailureKind int

const (
	SignupFailureNone SignupFailureKind = iota
	SignupFailureDuplicate
	SignupFailureUserStore
	SignupFailureHash
	SignupFailureIssueAccess
	SignupFailureSession
)

// SignupResult carries either the new user and its token pair or failure metadata.
type SignupResult struct {
	Failure        SignupFailureKind
	Err            error
	User           UserRecord
	AccessToken    string
	RefreshTokenID string
}

// SignupDeps captures signup flow dependencies.
type SignupDeps struct {
	ExistsByHandle func(ctx context.Context, handle string) (bool, error)
	CreateUser     func(ctx context.Context, in NewUser) (UserRecord, error)
	IsDuplicate    func(error) bool
	HashPassword   func(plain string) (string, error)
	Tokens         Tokens
	Sessions       SessionManager
}

// RunSignup registers a new account and logs it in. A handle that already
// exists fails before anything is written.
func RunSignup(ctx context.Context, in NewUser, plainPassword string, deps SignupDeps) SignupResult {
	exists, err := deps.ExistsByHandle(ctx, in.Handle)
	if err != nil {
		return SignupResult{Failure: SignupFailureUserStore, Err: err}
	}
	if exists {
		return SignupResult{Failure: SignupFailureDuplicate}
	}

	hash, err := deps.HashPassword(plainPassword)
	if err != nil {
		return SignupResult{Failure: SignupFailureHash, Err: err}
	}
	in.PasswordHash = hash
	if in.DisplayName == "" {
		in.DisplayName = in.Handle
	}

	user, err := deps.CreateUser(ctx, in)
	if err != nil {
		if deps.IsDuplicate != nil && deps.IsDuplicate(err) {
			return SignupResult{Failure: SignupFailureDuplicate, Err: err}
		}
		return SignupResult{Failure: SignupFailureUserStore, Err: err}
	}

	pair := issuePair(ctx, user, deps.Tokens, deps.Sessions)
	if pair.err != nil {
		kind := SignupFailureSession
		if pair.accessFailed {
			kind = SignupFailureIssueAccess
		}
		return SignupResult{Failure: kind, Err: pair.err, User: user}
	}

	return SignupResult{
		User:           user,
		AccessToken:    pair.access,
		RefreshTokenID: pair.refresh,
	}
}

type tokenPair struct {
	access       string
	refresh      string
	accessFailed bool
	err          error
}

func issuePair(ctx context.Context, user UserRecord, tokens Tokens, sessions SessionManager) tokenPair {
	access, err := tokens.Issue(user.ID, user.Role)
	if err != nil {
		return tokenPair{accessFailed: true, err: err}
	}
	refreshID, err := sessions.CreateToken(ctx, user.ID)
	if err != nil {
		return tokenPair{err: err}
	}
	return tokenPair{access: access, refresh: refreshID}
}
