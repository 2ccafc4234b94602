package flows

import (
	"context"
)

// Service is the centralized flow runner built once by the root engine.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Refresh.Sessions != nil && s.deps.Authenticate.FindByID != nil
}

func (s Service) Signup(ctx context.Context, in NewUser, plainPassword string) SignupResult {
	return RunSignup(ctx, in, plainPassword, s.deps.Signup)
}

func (s Service) Login(ctx context.Context, handle, plainPassword string) LoginResult {
	return RunLogin(ctx, handle, plainPassword, s.deps.Login)
}

func (s Service) Logout(ctx context.Context, accessToken, refreshTokenID string) LogoutResult {
	return RunLogout(ctx, accessToken, refreshTokenID, s.deps.Logout)
}

func (s Service) Refresh(ctx context.Context, refreshTokenID string) RefreshResult {
	return RunRefresh(ctx, refreshTokenID, s.deps.Refresh)
}

func (s Service) Authenticate(ctx context.Context, accessToken string) AuthenticateResult {
	return RunAuthenticate(ctx, accessToken, s.deps.Authenticate)
}
