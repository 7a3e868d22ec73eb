package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolSettings carries the pgx pool tunables from the service config.
type PoolSettings struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

var (
	pool     *pgxpool.Pool
	poolMu   sync.RWMutex
	poolOnce sync.Once
)

// Connect opens the shared dispatch-database pool and verifies it with a
// ping. Only the first successful call creates a pool; a failed attempt
// resets so the caller can retry.
func Connect(ctx context.Context, connString string, settings PoolSettings) error {
	var initErr error
	poolOnce.Do(func() {
		poolCfg, err := pgxpool.ParseConfig(connString)
		if err != nil {
			initErr = fmt.Errorf("parse database config: %w", err)
			return
		}

		poolCfg.MaxConns = int32(settings.MaxConns)
		poolCfg.MinConns = int32(settings.MinConns)
		poolCfg.MaxConnLifetime = settings.MaxConnLifetime
		poolCfg.MaxConnIdleTime = settings.MaxConnIdleTime
		poolCfg.HealthCheckPeriod = 1 * time.Minute

		newPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			initErr = fmt.Errorf("create connection pool: %w", err)
			return
		}

		if err := newPool.Ping(ctx); err != nil {
			newPool.Close()
			initErr = fmt.Errorf("connect to dispatch database: %w", err)
			return
		}

		poolMu.Lock()
		pool = newPool
		poolMu.Unlock()
	})

	if initErr != nil {
		poolOnce = sync.Once{} // allow retry
		return initErr
	}
	return nil
}

// Close tears down the pool. Safe to call when never connected.
func Close() {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
	poolOnce = sync.Once{} // allow reconnection
}

// Pool returns the shared pool, or nil before Connect succeeds. Handlers
// must treat nil as "database not available" rather than dereferencing.
func Pool() *pgxpool.Pool {
	poolMu.RLock()
	defer poolMu.RUnlock()
	return pool
}

// Status pings the dispatch database.
func Status(ctx context.Context) error {
	poolMu.RLock()
	p := pool
	poolMu.RUnlock()

	if p == nil {
		return fmt.Errorf("database not initialized")
	}
	return p.Ping(ctx)
}

// Stats returns pool statistics for health reporting, nil when disconnected.
func Stats() *pgxpool.Stat {
	poolMu.RLock()
	defer poolMu.RUnlock()
	if pool == nil {
		return nil
	}
	return pool.Stat()
}
