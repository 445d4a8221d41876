package db

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Querier is the read surface every accessor depends on. Arguments are
// always sent as bound parameters.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PoolConfig describes how the shared pool is built.
type PoolConfig struct {
	DatabaseURL    string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
}

// Manager owns the process-wide connection pool. The pool is created on first
// use, shared by every caller, and recreated on demand after Close.
type Manager struct {
	cfg    PoolConfig
	logger zerolog.Logger

	// sem serializes pool creation and Close. Waiters give up when their
	// context ends.
	sem     chan struct{}
	pool    atomic.Pointer[pgxpool.Pool]
	closing atomic.Bool
}

func NewManager(cfg PoolConfig, logger zerolog.Logger) *Manager {
	return &Manager{cfg: cfg, logger: logger, sem: make(chan struct{}, 1)}
}

// Pool returns the shared pool, connecting on first call.
func (m *Manager) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if pool := m.pool.Load(); pool != nil {
		return pool, nil
	}

	select {
	case m.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for database pool: %w", ctx.Err())
	}
	defer func() { <-m.sem }()

	if pool := m.pool.Load(); pool != nil {
		return pool, nil
	}

	pool, err := m.newPool(ctx)
	if err != nil {
		return nil, err
	}
	m.pool.Store(pool)
	m.logger.Info().Int32("max_conns", m.cfg.MaxConns).Msg("database pool created")
	return pool, nil
}

func (m *Manager) newPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(m.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if m.cfg.MaxConns > 0 {
		cfg.MaxConns = m.cfg.MaxConns
	}
	cfg.MinConns = m.cfg.MinConns
	if m.cfg.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = m.cfg.ConnectTimeout
	}
	cfg.ConnConfig.Tracer = &queryTracer{logger: m.logger}
	cfg.BeforeClose = func(conn *pgx.Conn) {
		m.connClosed(conn.PgConn().PID(), conn.IsClosed())
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// connClosed logs a connection leaving the pool. Lifetime and idle expiry
// retire live connections; a connection that is already closed was lost.
func (m *Manager) connClosed(pid uint32, lost bool) {
	if lost && !m.closing.Load() {
		m.logger.Warn().Uint32("pid", pid).Msg("database connection lost")
		return
	}
	m.logger.Debug().Uint32("pid", pid).Msg("database connection retired")
}

// Query runs a parameterized statement on the shared pool.
func (m *Manager) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	pool, err := m.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Query(ctx, sql, args...)
}

// QueryRow runs a parameterized single-row statement on the shared pool.
func (m *Manager) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	pool, err := m.Pool(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return pool.QueryRow(ctx, sql, args...)
}

// Close drains and releases the pool. A later Pool call builds a new one.
func (m *Manager) Close() {
	m.sem <- struct{}{}
	defer func() { <-m.sem }()

	pool := m.pool.Swap(nil)
	if pool == nil {
		return
	}
	m.closing.Store(true)
	pool.Close()
	m.closing.Store(false)
	m.logger.Info().Msg("database pool closed")
}

// Open reports whether a pool currently exists.
func (m *Manager) Open() bool {
	return m.pool.Load() != nil
}

type errRow struct {
	err error
}

func (r errRow) Scan(...interface{}) error { return r.err }
