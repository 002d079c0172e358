package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"golang.org/x/sync/singleflight"

	"github.com/phrazzld/rolodex-api/internal/config"
	"github.com/phrazzld/rolodex-api/internal/metrics"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/redact"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// ErrPoolClosed is returned by Get after Close has been called.
var ErrPoolClosed = errors.New("connection pool is closed")

// Opener establishes a verified connection pool. It must return a pool that
// has answered a ping, or an error and no pool.
type Opener func(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error)

// OpenPgx opens a pool through the pgx database/sql driver, applies the pool
// limits from cfg and pings the server before returning.
func OpenPgx(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// PoolManager owns the process-wide connection pool.
//
// The pool is opened lazily on the first Get. Concurrent first callers share
// one open attempt. A successful pool is kept until Close; a failed attempt is
// not remembered, so the next Get tries again.
type PoolManager struct {
	cfg     config.DatabaseConfig
	open    Opener
	logger  *slog.Logger
	metrics *metrics.Collector

	group singleflight.Group
	db    atomic.Pointer[sql.DB]

	mu     sync.Mutex
	closed bool
}

var _ store.PoolProvider = (*PoolManager)(nil)

// NewPoolManager creates a PoolManager. Nothing is opened until Get is called.
// A nil opener defaults to OpenPgx.
func NewPoolManager(
	cfg config.DatabaseConfig,
	open Opener,
	logger *slog.Logger,
	m *metrics.Collector,
) *PoolManager {
	if open == nil {
		open = OpenPgx
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PoolManager{
		cfg:     cfg,
		open:    open,
		logger:  logger.With(slog.String("component", "pool_manager")),
		metrics: m,
	}
}

// Get returns the shared pool, opening it if needed. If ctx ends while an open
// is in flight, Get returns early; the open itself continues so other waiters
// still get its result.
func (m *PoolManager) Get(ctx context.Context) (*sql.DB, error) {
	if db := m.db.Load(); db != nil {
		return db, nil
	}

	ch := m.group.DoChan("pool", func() (any, error) {
		return m.initialize(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*sql.DB), nil
	case <-ctx.Done():
		return nil, store.NewConnectionError("get pool", ctx.Err())
	}
}

func (m *PoolManager) initialize(ctx context.Context) (*sql.DB, error) {
	if db := m.db.Load(); db != nil {
		return db, nil
	}

	log := logger.FromContextOrDefault(ctx, m.logger)

	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, store.NewConnectionError("open pool", ErrPoolClosed)
	}

	// The open outlives the caller that triggered it.
	openCtx := context.WithoutCancel(ctx)
	if m.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		openCtx, cancel = context.WithTimeout(openCtx, m.cfg.ConnectTimeout)
		defer cancel()
	}

	start := time.Now()
	db, err := m.open(openCtx, m.cfg)
	if err != nil {
		m.metrics.RecordPoolInit("error")
		log.Error("failed to open connection pool",
			slog.String("error", redact.Error(err)),
			slog.Duration("duration", time.Since(start)))
		return nil, store.NewConnectionError("open pool", err)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = db.Close()
		return nil, store.NewConnectionError("open pool", ErrPoolClosed)
	}
	m.db.Store(db)
	m.mu.Unlock()

	m.metrics.RecordPoolInit("ok")
	m.metrics.RecordPoolStats(db.Stats())
	log.Info("connection pool established",
		slog.Int("max_open_conns", m.cfg.MaxOpenConns),
		slog.Duration("duration", time.Since(start)))
	return db, nil
}

// Ping checks that the store is reachable, opening the pool if needed.
func (m *PoolManager) Ping(ctx context.Context) error {
	db, err := m.Get(ctx)
	if err != nil {
		return err
	}

	if m.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		return store.NewConnectionError("ping", err)
	}
	m.metrics.RecordPoolStats(db.Stats())
	return nil
}

// Stats returns the pool statistics. ok is false when no pool is open.
func (m *PoolManager) Stats() (stats sql.DBStats, ok bool) {
	db := m.db.Load()
	if db == nil {
		return sql.DBStats{}, false
	}
	return db.Stats(), true
}

// StartHealthCheck pings the open pool every HealthCheckInterval until ctx is
// done. It never opens the pool itself. A zero interval disables the check.
func (m *PoolManager) StartHealthCheck(ctx context.Context) {
	interval := m.cfg.HealthCheckInterval
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.checkHealth(ctx)
			}
		}
	}()
}

func (m *PoolManager) checkHealth(ctx context.Context) {
	db := m.db.Load()
	if db == nil {
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, orDefault(m.cfg.ConnectTimeout, 5*time.Second))
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		m.logger.Warn("connection pool health check failed",
			slog.String("error", redact.Error(err)))
		return
	}

	stats := db.Stats()
	m.metrics.RecordPoolStats(stats)
	m.logger.Debug("connection pool healthy",
		slog.Int("open", stats.OpenConnections),
		slog.Int("in_use", stats.InUse),
		slog.Int("idle", stats.Idle))
}

// Close closes the pool if it was opened. Later calls to Get fail with
// ErrPoolClosed. Close is safe to call more than once.
func (m *PoolManager) Close() error {
	m.mu.Lock()
	m.closed = true
	db := m.db.Swap(nil)
	m.mu.Unlock()

	if db == nil {
		return nil
	}

	m.logger.Info("closing connection pool")
	return db.Close()
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
