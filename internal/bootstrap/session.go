package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/labmall/storefront/config"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/session"
)

// SessionBackend is an opened session storage plus what it holds open.
type SessionBackend struct {
	Storage session.Storage
	// DB is set for the postgres driver so health checks can ping it.
	DB      *pgxpool.Pool
	closers []func() error
}

func (b *SessionBackend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenSessionStorage builds the storage selected by SESSION_DRIVER.
func OpenSessionStorage(ctx context.Context, cfg *config.Config) (*SessionBackend, error) {
	log := logging.NewLogger(ctx).With("driver", cfg.Session.Driver).With("profile", cfg.Session.Profile)

	switch cfg.Session.Driver {
	case "memory":
		log.LogInfo("session_storage", "using in-memory session storage")
		return &SessionBackend{Storage: session.NewMemoryStorage()}, nil

	case "sqlite":
		st, err := session.OpenSQLite(ctx, cfg.Session.SQLitePath, cfg.Session.Profile)
		if err != nil {
			return nil, fmt.Errorf("open sqlite session storage: %w", err)
		}
		log.LogInfof("session_storage", "using sqlite session storage at %s", cfg.Session.SQLitePath)
		return &SessionBackend{Storage: st, closers: []func() error{st.Close}}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		log.LogInfof("session_storage", "using redis session storage at %s", cfg.Redis.Addr)
		return &SessionBackend{
			Storage: session.NewRedisStorage(rdb, cfg.Session.Profile, cfg.Session.TTL),
			closers: []func() error{rdb.Close},
		}, nil

	case "postgres":
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.Session.DSN})
		if err != nil {
			return nil, err
		}
		st := session.NewPostgresStorage(pool, cfg.Session.Profile)
		if err := st.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		log.LogInfo("session_storage", "using postgres session storage")
		return &SessionBackend{
			Storage: st,
			DB:      pool,
			closers: []func() error{func() error { pool.Close(); return nil }},
		}, nil
	}

	return nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
}
