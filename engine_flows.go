package tokenAuth

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/tokenAuth/internal/flows"
)

func (e *Engine) initFlowService() {
	tokens := flows.Tokens{
		Issue:     e.jwtManager.Encode,
		SubjectOf: e.jwtManager.SubjectOf,
		IsValid:   e.jwtManager.IsValid,
	}

	e.flow = flows.New(flows.Deps{
		Signup: flows.SignupDeps{
			ExistsByHandle: e.users.ExistsByHandle,
			CreateUser:     e.createUser,
			IsDuplicate:    func(err error) bool { return errors.Is(err, ErrDuplicateHandle) },
			HashPassword:   e.hasher.Hash,
			Tokens:         tokens,
			Sessions:       e.refresh,
		},
		Login: flows.LoginDeps{
			FindByHandle:    e.lookup(e.users.FindByHandle),
			PasswordMatches: e.hasher.Matches,
			DummyHash:       e.dummyHash,
			Tokens:          tokens,
			Sessions:        e.refresh,
		},
		Logout: flows.LogoutDeps{
			Tokens:   tokens,
			Sessions: e.refresh,
		},
		Refresh: flows.RefreshDeps{
			FindByID: e.lookup(e.users.FindByID),
			Tokens:   tokens,
			Sessions: e.refresh,
		},
		Authenticate: flows.AuthenticateDeps{
			FindByID: e.lookup(e.users.FindByID),
			Tokens:   tokens,
		},
	})
}

func (e *Engine) createUser(ctx context.Context, in flows.NewUser) (flows.UserRecord, error) {
	now := e.now().UTC()
	user := &User{
		Handle:       in.Handle,
		PasswordHash: in.PasswordHash,
		DisplayName:  in.DisplayName,
		Bio:          in.Bio,
		ProfileImage: in.ProfileImage,
		Status:       StatusActive,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := e.users.Create(ctx, user); err != nil {
		return flows.UserRecord{}, err
	}
	if user.ID == "" {
		return flows.UserRecord{}, errors.New("user store assigned no id")
	}
	return toUserRecord(user), nil
}

// lookup adapts a UserStore finder to the found/err split the flows use.
func (e *Engine) lookup(find func(context.Context, string) (*User, error)) flows.UserLookup {
	return func(ctx context.Context, key string) (flows.UserRecord, bool, error) {
		user, err := find(ctx, key)
		if errors.Is(err, ErrUserNotFound) {
			return flows.UserRecord{}, false, nil
		}
		if err != nil {
			return flows.UserRecord{}, false, err
		}
		if user == nil {
			return flows.UserRecord{}, false, nil
		}
		return toUserRecord(user), true, nil
	}
}

func toUserRecord(u *User) flows.UserRecord {
	return flows.UserRecord{
		ID:           u.ID,
		Handle:       u.Handle,
		PasswordHash: u.PasswordHash,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
		Role:         string(u.Role),
		Status:       string(u.Status),
		Active:       u.Status == StatusActive,
	}
}

func authResultFrom(user flows.UserRecord, access, refreshID string) AuthResult {
	return AuthResult{
		RefreshTokenID: refreshID,
		AccessToken:    access,
		UserID:         user.ID,
		Handle:         user.Handle,
		DisplayName:    user.DisplayName,
		ProfileImage:   user.ProfileImage,
	}
}

func upstreamError(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}

// sessionError maps refresh manager failures onto the public sentinels.
func sessionError(err error) error {
	if errors.Is(err, ErrInvalidRefreshToken) {
		return ErrInvalidRefreshToken
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
