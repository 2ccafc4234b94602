package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/MrEthical07/tokenAuth/middleware"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Engine is the part of *tokenAuth.Engine the transport uses.
type Engine interface {
	Signup(ctx context.Context, in tokenAuth.SignupInput) (tokenAuth.AuthResult, error)
	Login(ctx context.Context, handle, password string) (tokenAuth.AuthResult, error)
	Logout(ctx context.Context, accessToken, refreshTokenID string) error
	Refresh(ctx context.Context, refreshTokenID string) (tokenAuth.AuthResult, error)
	Authenticate(ctx context.Context, accessToken string) (tokenAuth.Principal, bool)
	Ready(ctx context.Context) error
	Config() tokenAuth.Config
}

type Handler struct {
	engine  Engine
	logger  *zap.Logger
	cookies cookieJar
	metrics http.Handler
}

type Option func(*Handler)

func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithMetricsHandler mounts handler at GET /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(h *Handler) { h.metrics = handler }
}

func New(engine Engine, opts ...Option) *Handler {
	cfg := engine.Config()
	h := &Handler{
		engine:  engine,
		logger:  zap.NewNop(),
		cookies: cookieJar{cfg: cfg.Cookie, ttl: cfg.Refresh.TTL},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.Named("http")
	return h
}

// Router returns the mux with every route mounted.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestMetadata)

	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.handleReady).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics).Methods(http.MethodGet)
	}

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/signup", h.handleSignup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.handleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/logout", h.handleLogout).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", h.handleRefresh).Methods(http.MethodPost)

	me := middleware.Authenticate(h.engine)(middleware.RequireAuthenticated(http.HandlerFunc(h.handleMe)))
	auth.Handle("/me", me).Methods(http.MethodGet)

	return r
}

// requestMetadata copies the caller's address and user agent into the
// context for audit events.
func (h *Handler) requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		ctx := tokenAuth.WithRequestMeta(r.Context(), tokenAuth.RequestMeta{
			ClientIP:  ip,
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	UserID       string `json:"userId"`
	Handle       string `json:"handle"`
	DisplayName  string `json:"displayName"`
	ProfileImage string `json:"profileImage"`
}

type principalResponse struct {
	UserID      string   `json:"userId"`
	Handle      string   `json:"handle"`
	Role        string   `json:"role"`
	Authorities []string `json:"authorities"`
}

func (h *Handler) writeAuth(w http.ResponseWriter, res tokenAuth.AuthResult) {
	h.cookies.set(w, res.RefreshTokenID)
	writeJSON(w, http.StatusOK, authResponse{
		AccessToken:  res.AccessToken,
		UserID:       res.UserID,
		Handle:       res.Handle,
		DisplayName:  res.DisplayName,
		ProfileImage: res.ProfileImage,
	})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return false
	}
	return true
}

func rejectInvalid(w http.ResponseWriter, fields []FieldError) bool {
	if len(fields) == 0 {
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    "VALIDATION_FAILED",
		Message: "Invalid request",
		Fields:  fields,
	})
	return true
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) || rejectInvalid(w, req.validate()) {
		return
	}

	res, err := h.engine.Signup(r.Context(), tokenAuth.SignupInput{
		Handle:       req.Handle,
		Password:     req.Password,
		DisplayName:  deref(req.DisplayName),
		Bio:          deref(req.Bio),
		ProfileImage: deref(req.ProfileImage),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeAuth(w, res)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) || rejectInvalid(w, req.validate()) {
		return
	}

	res, err := h.engine.Login(r.Context(), req.Handle, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeAuth(w, res)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	refreshID, ok := h.cookies.read(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_REFRESH_TOKEN", "Refresh token cookie is required")
		return
	}
	access, ok := middleware.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_ACCESS_TOKEN", "Bearer token is required")
		return
	}

	if err := h.engine.Logout(r.Context(), access, refreshID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshID, ok := h.cookies.read(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "MISSING_REFRESH_TOKEN", "Refresh token cookie is required")
		return
	}

	res, err := h.engine.Refresh(r.Context(), refreshID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeAuth(w, res)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, principalResponse{
		UserID:      p.UserID,
		Handle:      p.Handle,
		Role:        string(p.Role),
		Authorities: p.Authorities,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Ready(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
