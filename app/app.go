// Package app assembles the stores, services and HTTP handler from a
// Configuration.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"loan-eligibility/auth"
	"loan-eligibility/config"
	httpLayer "loan-eligibility/http"
	"loan-eligibility/metrics"
	"loan-eligibility/repository"
	"loan-eligibility/service"
)

// App holds the wired components. Close releases them.
type App struct {
	Records  repository.RecordRepository
	Sessions repository.SessionRepository
	Loans    *service.LoanService
	Admin    *service.AdminService
	Metrics  *metrics.Recorder
	Logger   *zap.Logger

	closers []func() error
}

// New opens the configured record store and session backend and builds the
// services on top of them.
func New(ctx context.Context, conf *config.Configuration, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Logger: logger, Metrics: metrics.NewRecorder()}

	switch conf.Database.Driver {
	case config.DatabaseDriverMemory:
		a.Records = repository.NewRecordRepositoryMemory()
	default:
		store, err := repository.NewSQLiteRecordRepository(conf.Database.Path, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		if err := store.Migrate(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.Records = store
	}

	switch conf.Sessions.Backend {
	case config.SessionBackendRedis:
		rs := repository.NewRedisSessionRepository(conf.Sessions.RedisAddr, conf.Sessions.RedisPassword, conf.Sessions.RedisDB)
		a.closers = append(a.closers, rs.Close)
		if err := rs.Ping(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", conf.Sessions.RedisAddr, err)
		}
		a.Sessions = rs
	default:
		a.Sessions = repository.NewMemorySessionRepository()
	}

	secret := conf.Admin.TokenSecret
	if secret == "" {
		generated, err := randomSecret()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		secret = generated
		logger.Warn("admin.token_secret not set, using a per-process secret",
			zap.String("op", "app.New"),
		)
	}
	tokens, err := auth.NewTokenIssuer(secret, conf.Admin.Issuer, conf.Admin.TokenTTL)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if conf.Admin.PasswordHash == "" {
		logger.Warn("admin password not configured, admin login disabled",
			zap.String("op", "app.New"),
		)
	}

	a.Loans = service.NewLoanService(a.Records, logger, a.Metrics)
	a.Admin = service.NewAdminService(
		a.Records,
		auth.NewHashAuthenticator(conf.Admin.PasswordHash),
		tokens,
		a.Sessions,
		logger,
	)
	return a, nil
}

// Handler builds the HTTP router. The returned stop function ends the rate
// limiter's background eviction.
func (a *App) Handler(conf *config.Configuration) (http.Handler, func()) {
	limiter := httpLayer.NewRateLimiter(conf.RateLimit.Capacity, conf.RateLimit.Window)

	handler := httpLayer.NewRouter(httpLayer.RouterDeps{
		Loans:       httpLayer.NewLoanHandler(a.Loans, a.Logger),
		Admin:       httpLayer.NewAdminHandler(a.Admin, a.Logger, a.Metrics.RecordAdminOperation),
		Limiter:     limiter,
		Metrics:     a.Metrics.Handler(),
		OnRateLimit: a.Metrics.RecordRateLimited,
		Logger:      a.Logger,
	})
	return handler, limiter.Stop
}

// Close releases stores in reverse order of opening.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
