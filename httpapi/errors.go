package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"go.uber.org/zap"
)

type errorResponse struct {
	Code    string       `json:"error_code"`
	Message string       `json:"error_message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type apiError struct {
	status  int
	code    string
	message string
}

var errorTable = []struct {
	target error
	apiError
}{
	{tokenAuth.ErrDuplicateHandle, apiError{http.StatusConflict, "DUPLICATE_HANDLE", "Handle already taken"}},
	{tokenAuth.ErrInvalidCredentials, apiError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid handle or password"}},
	{tokenAuth.ErrInvalidRefreshToken, apiError{http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token"}},
	{tokenAuth.ErrUserNotFound, apiError{http.StatusUnauthorized, "USER_NOT_FOUND", "User not found"}},
	{tokenAuth.ErrAccountNotActive, apiError{http.StatusForbidden, "ACCOUNT_NOT_ACTIVE", "Account is not active"}},
	{tokenAuth.ErrStorageUnavailable, apiError{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable"}},
	{tokenAuth.ErrUpstreamUnavailable, apiError{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable"}},
	{tokenAuth.ErrEngineNotReady, apiError{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable"}},
}

var internalError = apiError{http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"}

func classify(err error) apiError {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.apiError
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// fail writes the response for an engine error. Server-side failures are
// logged with the request path; client errors are logged at debug.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", e.status),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.String("error_code", e.code),
		)
	}
	writeError(w, e.status, e.code, e.message)
}
