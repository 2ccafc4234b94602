package tokenAuth

import (
	"context"
	"time"
)

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
	StatusDeleted   UserStatus = "DELETED"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

// Role is the coarse authorization level carried in access tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Authority returns the Spring-style authority string for r.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// User is the stored account record.
type User struct {
	ID           string
	Handle       string
	PasswordHash string
	DisplayName  string
	Bio          string
	ProfileImage string
	Status       UserStatus
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserStore is the account persistence contract the Engine depends on.
//
// FindByHandle and FindByID return [ErrUserNotFound] when no row matches.
// Create returns an error wrapping [ErrDuplicateHandle] for a unique-handle
// violation. Any other error is treated as the store being unavailable.
type UserStore interface {
	FindByHandle(ctx context.Context, handle string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
	Create(ctx context.Context, user *User) error
}

// Pinger is implemented by stores that can report their own readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PasswordHasher hashes and verifies passwords. Implementations live in package password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, hash string) bool
}

// SignupInput is the already-validated signup request.
type SignupInput struct {
	Handle       string
	Password     string
	DisplayName  string
	Bio          string
	ProfileImage string
}

// AuthResult is returned by Signup, Login and Refresh.
type AuthResult struct {
	RefreshTokenID string
	AccessToken    string
	UserID         string
	Handle         string
	DisplayName    string
	ProfileImage   string
}

// Principal is the identity attached to a trusted request.
type Principal struct {
	UserID      string
	Handle      string
	Role        Role
	Authorities []string
	// Enabled is true iff the account is ACTIVE.
	Enabled bool
	// Locked is true iff the account is SUSPENDED.
	Locked bool
}

// HasRole reports whether p carries role.
func (p Principal) HasRole(role Role) bool {
	return p.Role == role
}

// PrincipalFromUser maps a stored user to its request principal.
func PrincipalFromUser(u User) Principal {
	return Principal{
		UserID:      u.ID,
		Handle:      u.Handle,
		Role:        u.Role,
		Authorities: []string{u.Role.Authority()},
		Enabled:     u.Status == StatusActive,
		Locked:      u.Status == StatusSuspended,
	}
}
