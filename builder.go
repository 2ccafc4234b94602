package tokenAuth

import (
	"errors"
	"time"

	"github.com/MrEthical07/tokenAuth/internal/audit"
	"github.com/MrEthical07/tokenAuth/jwt"
	"github.com/MrEthical07/tokenAuth/password"
	"github.com/MrEthical07/tokenAuth/refresh"
	"github.com/MrEthical07/tokenAuth/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// dummyPassword is hashed once per Engine so unknown-handle logins pay the
// same verification cost as wrong-password logins.
const dummyPassword = "dummy-password-0"

// Builder assembles an [Engine]. It is single-use.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	userStore UserStore
	hasher    PasswordHasher
	logger    *zap.Logger
	auditSink AuditSink
	now       func() time.Time

	built bool
}

func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the client backing refresh sessions. Any go-redis client
// (single node, cluster, ring) works.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

func (b *Builder) WithUserStore(store UserStore) *Builder {
	b.userStore = store
	return b
}

// WithPasswordHasher overrides the hasher selected by Config.Password.
func (b *Builder) WithPasswordHasher(h PasswordHasher) *Builder {
	b.hasher = h
	return b
}

func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the audit destination. Events flow only when
// Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithClock injects the time source used for token and session timestamps.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.userStore == nil {
		return nil, errors.New("user store required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := b.now
	if now == nil {
		now = time.Now
	}
	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	hasher := b.hasher
	if hasher == nil {
		h, err := defaultHasher(cfg.Password)
		if err != nil {
			return nil, err
		}
		hasher = h
	}
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}

	jm, err := jwt.NewManager(jwt.Config{
		AccessTTL:     cfg.JWT.AccessTTL,
		SigningMethod: jwt.SigningMethod(cfg.JWT.SigningMethod),
		PrivateKey:    cloneBytes(cfg.JWT.PrivateKey),
		PublicKey:     cloneBytes(cfg.JWT.PublicKey),
		Issuer:        cfg.JWT.Issuer,
		KeyID:         cfg.JWT.KeyID,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}

	store := session.NewStore(b.redis, cfg.Refresh.RedisPrefix, cfg.Refresh.TTL)
	rm, err := refresh.NewManager(store, cfg.Refresh.TTL, now)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:       cloneConfig(cfg),
		jwtManager:   jm,
		sessionStore: store,
		refresh:      rm,
		users:        b.userStore,
		hasher:       hasher,
		logger:       logger.Named("tokenauth"),
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
		now:       now,
		dummyHash: dummyHash,
	}
	engine.initFlowService()

	b.built = true

	return engine, nil
}

func defaultHasher(cfg PasswordConfig) (PasswordHasher, error) {
	if cfg.Algorithm == "argon2id" {
		return password.NewArgon2(password.DefaultArgon2Params())
	}
	return password.NewBcrypt(cfg.BcryptCost)
}
