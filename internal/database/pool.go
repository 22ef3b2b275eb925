package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frahmantamala/moneymappr/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const driverName = "pgx"

// Opener establishes a verified connection.
type Opener func(ctx context.Context, cfg internal.DatabaseConfig) (*sqlx.DB, error)

// Dialector wraps an open connection for GORM.
type Dialector func(conn *sql.DB) gorm.Dialector

// Pool hands out one process-wide database handle. The connection is
// opened on the first Get. A failed attempt is not remembered, so the
// next Get tries again.
type Pool struct {
	cfg       internal.DatabaseConfig
	open      Opener
	dialector Dialector
	logger    *slog.Logger

	mu     sync.Mutex
	db     *sqlx.DB
	gormDB *gorm.DB
}

type Option func(*Pool)

func WithOpener(open Opener) Option {
	return func(p *Pool) { p.open = open }
}

func WithDialector(dialector Dialector) Option {
	return func(p *Pool) { p.dialector = dialector }
}

func NewPool(cfg internal.DatabaseConfig, logger *slog.Logger, opts ...Option) *Pool {
	p := &Pool{
		cfg:       cfg,
		open:      Open,
		dialector: PostgresDialector,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns the shared sqlx handle, connecting on first use.
func (p *Pool) Get(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	db, err := p.open(ctx, p.cfg)
	if err != nil {
		p.logger.Error("database connection failed", "error", err)
		return nil, err
	}

	p.db = db
	p.logger.Info("database connection established", "driver", db.DriverName())
	return p.db, nil
}

// Gorm returns a GORM handle that shares the Get connection.
func (p *Pool) Gorm(ctx context.Context) (*gorm.DB, error) {
	db, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gormDB != nil {
		return p.gormDB, nil
	}

	gormDB, err := gorm.Open(p.dialector(db.DB), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wrap connection for gorm: %w", err)
	}

	p.gormDB = gormDB
	return p.gormDB, nil
}

// Close releases the connection if one was opened.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	p.gormDB = nil
	return err
}

// Open connects with the pgx driver, applies the pool limits and pings.
func Open(ctx context.Context, cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func PostgresDialector(conn *sql.DB) gorm.Dialector {
	return postgres.New(postgres.Config{Conn: conn})
}
