package tokenAuth

import (
	"context"
	"fmt"
	"time"

	"github.com/MrEthical07/tokenAuth/internal/audit"
	"github.com/MrEthical07/tokenAuth/internal/flows"
	"github.com/MrEthical07/tokenAuth/jwt"
	"github.com/MrEthical07/tokenAuth/refresh"
	"github.com/MrEthical07/tokenAuth/session"
	"go.uber.org/zap"
)

// Engine runs the signup, login, logout, refresh and request-trust flows.
// It is safe for concurrent use once built.
type Engine struct {
	config       Config
	jwtManager   *jwt.Manager
	sessionStore *session.Store
	refresh      *refresh.Manager
	users        UserStore
	hasher       PasswordHasher
	logger       *zap.Logger
	audit        *audit.Dispatcher
	metrics      *Metrics
	flow         flows.Service
	now          func() time.Time
	dummyHash    string
}

func (e *Engine) ready() bool {
	return e != nil && e.flow.Initialized()
}

// Signup registers a new account and returns its first token pair.
func (e *Engine) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	if !e.ready() {
		return AuthResult{}, ErrEngineNotReady
	}

	res := e.flow.Signup(ctx, flows.NewUser{
		Handle:       in.Handle,
		DisplayName:  in.DisplayName,
		Bio:          in.Bio,
		ProfileImage: in.ProfileImage,
	}, in.Password)

	if res.Failure != flows.SignupFailureNone {
		var err error
		switch res.Failure {
		case flows.SignupFailureDuplicate:
			err = ErrDuplicateHandle
			e.metricInc(MetricSignupDuplicate)
			e.emitAudit(ctx, auditEventSignupDuplicate, false, "", in.Handle, err, nil)
			return AuthResult{}, err
		case flows.SignupFailureUserStore:
			err = upstreamError(res.Err)
			e.logger.Warn("signup: user store failure", zap.String("handle", in.Handle), zap.Error(res.Err))
		case flows.SignupFailureSession:
			err = sessionError(res.Err)
			e.logger.Warn("signup: session store failure", zap.String("user_id", res.User.ID), zap.Error(res.Err))
		case flows.SignupFailureHash:
			err = fmt.Errorf("hash password: %w", res.Err)
		default:
			err = fmt.Errorf("issue access token: %w", res.Err)
		}
		e.metricInc(MetricSignupFailure)
		e.emitAudit(ctx, auditEventSignupFailure, false, res.User.ID, in.Handle, err, nil)
		return AuthResult{}, err
	}

	e.metricInc(MetricSignupSuccess)
	e.metricInc(MetricSessionCreated)
	e.emitAudit(ctx, auditEventSignupSuccess, true, res.User.ID, res.User.Handle, nil, nil)
	e.logger.Info("signup", zap.String("user_id", res.User.ID), zap.String("handle", res.User.Handle))

	return authResultFrom(res.User, res.AccessToken, res.RefreshTokenID), nil
}

// Login verifies credentials and issues a fresh pair. Existing sessions are untouched.
func (e *Engine) Login(ctx context.Context, handle, password string) (AuthResult, error) {
	if !e.ready() {
		return AuthResult{}, ErrEngineNotReady
	}

	res := e.flow.Login(ctx, handle, password)
	if res.Failure != flows.LoginFailureNone {
		var err error
		switch res.Failure {
		case flows.LoginFailureUnknownHandle, flows.LoginFailureBadPassword:
			err = ErrInvalidCredentials
		case flows.LoginFailureUserStore:
			err = upstreamError(res.Err)
			e.logger.Warn("login: user store failure", zap.String("handle", handle), zap.Error(res.Err))
		case flows.LoginFailureSession:
			err = sessionError(res.Err)
			e.logger.Warn("login: session store failure", zap.String("user_id", res.User.ID), zap.Error(res.Err))
		default:
			err = fmt.Errorf("issue access token: %w", res.Err)
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, res.User.ID, handle, err, func() map[string]string {
			if res.Failure == flows.LoginFailureUnknownHandle {
				return map[string]string{"reason": "unknown_handle"}
			}
			return nil
		})
		return AuthResult{}, err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionCreated)
	e.emitAudit(ctx, auditEventLoginSuccess, true, res.User.ID, res.User.Handle, nil, nil)

	return authResultFrom(res.User, res.AccessToken, res.RefreshTokenID), nil
}

// Logout revokes refreshTokenID when it belongs to the subject of accessToken.
// A session owned by someone else is left in place and the attempt is logged
// as a security event.
func (e *Engine) Logout(ctx context.Context, accessToken, refreshTokenID string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}

	res := e.flow.Logout(ctx, accessToken, refreshTokenID)
	switch res.Failure {
	case flows.LogoutFailureNone:
		e.metricInc(MetricLogoutSuccess)
		e.metricInc(MetricSessionDeleted)
		e.emitAudit(ctx, auditEventLogoutSuccess, true, res.UserID, "", nil, nil)
		return nil
	case flows.LogoutFailureMismatch:
		e.metricInc(MetricLogoutMismatch)
		e.logger.Error("security: logout token mismatch",
			zap.String("access_subject", res.Subject),
			zap.String("session_user_id", res.UserID),
		)
		e.emitAudit(ctx, auditEventLogoutMismatch, false, res.Subject, "", ErrInvalidRefreshToken, func() map[string]string {
			return map[string]string{"session_user_id": res.UserID}
		})
		return ErrInvalidRefreshToken
	}

	var err error
	switch res.Failure {
	case flows.LogoutFailureStorage:
		err = sessionError(res.Err)
		e.logger.Warn("logout: session store failure", zap.Error(res.Err))
	default:
		err = ErrInvalidRefreshToken
	}
	e.metricInc(MetricLogoutFailure)
	e.emitAudit(ctx, auditEventLogoutFailure, false, res.UserID, "", err, nil)
	return err
}

// Refresh rotates refreshTokenID and returns a new pair carrying the user's current role.
func (e *Engine) Refresh(ctx context.Context, refreshTokenID string) (AuthResult, error) {
	if !e.ready() {
		return AuthResult{}, ErrEngineNotReady
	}

	start := time.Now()
	defer func() {
		e.metrics.Observe(MetricRefreshLatency, time.Since(start))
	}()

	res := e.flow.Refresh(ctx, refreshTokenID)
	if res.Failure != flows.RefreshFailureNone {
		var err error
		event := auditEventRefreshFailure
		switch res.Failure {
		case flows.RefreshFailureInvalidSession:
			err = ErrInvalidRefreshToken
		case flows.RefreshFailureStorage, flows.RefreshFailureRotate:
			err = sessionError(res.Err)
			e.logger.Warn("refresh: session store failure", zap.String("user_id", res.UserID), zap.Error(res.Err))
		case flows.RefreshFailureUserStore:
			err = upstreamError(res.Err)
			e.logger.Warn("refresh: user store failure", zap.String("user_id", res.UserID), zap.Error(res.Err))
		case flows.RefreshFailureUserNotFound:
			err = ErrUserNotFound
			e.metricInc(MetricSessionDeleted)
		case flows.RefreshFailureAccountNotActive:
			err = ErrAccountNotActive
			event = auditEventRefreshNotActive
			e.metricInc(MetricRefreshAccountInactive)
			e.metricInc(MetricSessionDeleted)
		default:
			err = fmt.Errorf("issue access token: %w", res.Err)
		}
		if res.CleanupErr != nil {
			e.logger.Warn("refresh: could not delete session of unusable account",
				zap.String("user_id", res.UserID), zap.Error(res.CleanupErr))
		}
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, event, false, res.UserID, res.User.Handle, err, func() map[string]string {
			if res.User.Status == "" {
				return nil
			}
			return map[string]string{"status": res.User.Status}
		})
		return AuthResult{}, err
	}

	e.metricInc(MetricRefreshSuccess)
	e.metricInc(MetricSessionCreated)
	e.metricInc(MetricSessionDeleted)
	e.emitAudit(ctx, auditEventRefreshSuccess, true, res.User.ID, res.User.Handle, nil, nil)

	return authResultFrom(res.User, res.AccessToken, res.RefreshTokenID), nil
}

// Authenticate resolves a bearer access token to a Principal. It reports false
// for invalid tokens and for lookups that fail or find nothing.
func (e *Engine) Authenticate(ctx context.Context, accessToken string) (Principal, bool) {
	if !e.ready() {
		return Principal{}, false
	}

	res := e.flow.Authenticate(ctx, accessToken)
	if res.Failure != flows.AuthenticateFailureNone {
		if res.Failure == flows.AuthenticateFailureUserStore {
			e.logger.Warn("authenticate: user store failure", zap.Error(res.Err))
		}
		e.metricInc(MetricAuthenticateFailure)
		return Principal{}, false
	}

	e.metricInc(MetricAuthenticateSuccess)
	return PrincipalFromUser(User{
		ID:     res.User.ID,
		Handle: res.User.Handle,
		Role:   Role(res.User.Role),
		Status: UserStatus(res.User.Status),
	}), true
}

// Config returns a copy of the configuration the engine was built with.
func (e *Engine) Config() Config {
	if e == nil {
		return Config{}
	}
	return cloneConfig(e.config)
}

// Ready pings Redis and, when it supports it, the user store.
func (e *Engine) Ready(ctx context.Context) error {
	if !e.ready() {
		return ErrEngineNotReady
	}
	if _, err := e.sessionStore.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if p, ok := e.users.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return upstreamError(err)
		}
	}
	return nil
}

// Close flushes pending audit events. The Redis client and user store belong
// to the caller and stay open.
func (e *Engine) Close() {
	if e == nil || e.audit == nil {
		return
	}
	e.audit.Close()
}

// AuditDropped reports how many audit events were dropped on a full buffer.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}, Histograms: map[MetricID][]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}
