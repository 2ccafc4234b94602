package tokenAuth

import (
	"context"
	"errors"
)

const (
	auditEventSignupSuccess    = "signup_success"
	auditEventSignupDuplicate  = "signup_duplicate"
	auditEventSignupFailure    = "signup_failure"
	auditEventLoginSuccess     = "login_success"
	auditEventLoginFailure     = "login_failure"
	auditEventLogoutSuccess    = "logout_success"
	auditEventLogoutFailure    = "logout_failure"
	auditEventLogoutMismatch   = "logout_mismatch"
	auditEventRefreshSuccess   = "refresh_success"
	auditEventRefreshFailure   = "refresh_failure"
	auditEventRefreshNotActive = "refresh_account_not_active"
)

// AuditErrorCode is the stable error label written into audit events.
type AuditErrorCode string

const (
	auditErrInvalidCredentials  AuditErrorCode = "invalid_credentials"
	auditErrDuplicate           AuditErrorCode = "duplicate"
	auditErrInvalidRefreshToken AuditErrorCode = "invalid_refresh_token"
	auditErrUserNotFound        AuditErrorCode = "user_not_found"
	auditErrAccountNotActive    AuditErrorCode = "account_not_active"
	auditErrUnavailable         AuditErrorCode = "backend_unavailable"
	auditErrInternal            AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	handle string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	meta := RequestMetaFrom(ctx)
	event := AuditEvent{
		Timestamp: e.now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Handle:    handle,
		IP:        meta.ClientIP,
		UserAgent: meta.UserAgent,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrDuplicateHandle):
		return auditErrDuplicate
	case errors.Is(err, ErrInvalidRefreshToken):
		return auditErrInvalidRefreshToken
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	case errors.Is(err, ErrAccountNotActive):
		return auditErrAccountNotActive
	case errors.Is(err, ErrStorageUnavailable),
		errors.Is(err, ErrUpstreamUnavailable):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
