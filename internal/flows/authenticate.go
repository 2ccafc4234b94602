package flows

import (
	"context"
)

// AuthenticateFailureKind classifies why a bearer token was not trusted.
type AuthenticateFailureKind int

const (
	AuthenticateFailureNone AuthenticateFailureKind = iota
	AuthenticateFailureInvalidToken
	AuthenticateFailureUserStore
	AuthenticateFailureUserNotFound
)

// AuthenticateResult carries the resolved user on success.
type AuthenticateResult struct {
	Failure AuthenticateFailureKind
	Err     error
	User    UserRecord
}

// AuthenticateDeps captures trust-decision dependencies.
type AuthenticateDeps struct {
	FindByID UserLookup
	Tokens   Tokens
}

// RunAuthenticate validates accessToken and resolves its subject. Inactive
// users are still returned; the caller decides what a locked or disabled
// principal may do.
func RunAuthenticate(ctx context.Context, accessToken string, deps AuthenticateDeps) AuthenticateResult {
	if accessToken == "" || !deps.Tokens.IsValid(accessToken) {
		return AuthenticateResult{Failure: AuthenticateFailureInvalidToken}
	}
	subject, err := deps.Tokens.SubjectOf(accessToken)
	if err != nil {
		return AuthenticateResult{Failure: AuthenticateFailureInvalidToken, Err: err}
	}

	user, found, err := deps.FindByID(ctx, subject)
	if err != nil {
		return AuthenticateResult{Failure: AuthenticateFailureUserStore, Err: err}
	}
	if !found {
		return AuthenticateResult{Failure: AuthenticateFailureUserNotFound}
	}
	return AuthenticateResult{User: user}
}
