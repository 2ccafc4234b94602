// Command tokenauth-server serves the signup, login, logout and refresh API.
//
// Configuration comes from the environment and an optional .env file; see
// package internal/serverconfig for the recognized variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tokenAuth "github.com/MrEthical07/tokenAuth"
	"github.com/MrEthical07/tokenAuth/httpapi"
	"github.com/MrEthical07/tokenAuth/internal/serverconfig"
	"github.com/MrEthical07/tokenAuth/metrics/export/prometheus"
	"github.com/MrEthical07/tokenAuth/userstore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := serverconfig.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	users, closeUsers, err := openUserStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeUsers()

	builder := tokenAuth.New().
		WithConfig(cfg.Engine()).
		WithRedis(rdb).
		WithUserStore(users).
		WithLogger(logger)
	if cfg.AuditEnabled {
		builder.WithAuditSink(tokenAuth.NewZapSink(logger))
	}
	engine, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer engine.Close()

	api := httpapi.New(engine,
		httpapi.WithLogger(logger),
		httpapi.WithMetricsHandler(prometheus.NewExporter(engine).Handler()),
	)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("user_store", cfg.UserStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg.Build()
}

func openUserStore(ctx context.Context, cfg serverconfig.Config, logger *zap.Logger) (tokenAuth.UserStore, func(), error) {
	if cfg.UserStore != serverconfig.StorePostgres {
		logger.Warn("using in-memory user store; accounts are lost on restart")
		return userstore.NewMemory(), func() {}, nil
	}

	db, err := userstore.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := userstore.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return userstore.NewPostgres(db), func() { _ = db.Close() }, nil
}
