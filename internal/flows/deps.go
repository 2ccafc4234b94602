package flows

import (
	"context"

	"github.com/MrEthical07/tokenAuth/session"
)

// Deps groups flow dependency sets. Root engine builds this once and delegates
// request methods to the matching flow implementation.
type Deps struct {
	Signup       SignupDeps
	Login        LoginDeps
	Logout       LogoutDeps
	Refresh      RefreshDeps
	Authenticate AuthenticateDeps
}

// UserRecord is the flow-local view of a stored user.
type UserRecord struct {
	ID           string
	Handle       string
	PasswordHash string
	DisplayName  string
	ProfileImage string
	Role         string
	Status       string
	Active       bool
}

// NewUser is what RunSignup asks the host to persist.
type NewUser struct {
	Handle       string
	PasswordHash string
	DisplayName  string
	Bio          string
	ProfileImage string
}

// SessionManager is satisfied by *refresh.Manager.
type SessionManager interface {
	CreateToken(ctx context.Context, userID string) (string, error)
	LiveToken(ctx context.Context, tokenID string) (*session.RefreshSession, error)
	RotateToken(ctx context.Context, tokenID string) (string, error)
	RemoveToken(ctx context.Context, tokenID string) error
}

// UserLookup fetches a user; found is false when no such user exists.
// err is reserved for backend failures.
type UserLookup func(ctx context.Context, key string) (user UserRecord, found bool, err error)

// Tokens is the access-token surface the flows need.
type Tokens struct {
	Issue     func(userID, role string) (string, error)
	SubjectOf func(token string) (string, error)
	IsValid   func(token string) bool
}
