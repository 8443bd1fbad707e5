package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/logging"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("storage: document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("storage: duplicate document")
)

// Handle owns the process-lifetime database connection. It connects on the
// first call to DB and can be closed and reopened.
type Handle struct {
	driver string
	dsn    string
	log    *slog.Logger

	mu sync.Mutex
	db *sqlx.DB
}

// NewHandle returns an unconnected handle for cfg.
func NewHandle(cfg config.DatabaseConfig, log *slog.Logger) *Handle {
	return &Handle{
		driver: cfg.Driver,
		dsn:    cfg.DSN,
		log:    logging.Component(log, "storage"),
	}
}

// NewHandleFromDB wraps an already open connection. No migrations are run.
func NewHandleFromDB(db *sqlx.DB, log *slog.Logger) *Handle {
	return &Handle{
		driver: db.DriverName(),
		db:     db,
		log:    logging.Component(log, "storage"),
	}
}

// Open connects and migrates immediately, like the lazy path would.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Handle, error) {
	h := NewHandle(cfg, log)
	if _, err := h.DB(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// DB returns the connection, opening and migrating it on first use.
// A failed attempt is not remembered; the next call tries again.
func (h *Handle) DB(ctx context.Context) (*sqlx.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}

	db, err := sqlx.Open(h.driver, h.dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if h.driver == "sqlite" {
		// An in-memory database lives in a single connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	h.log.Info("database connected", "driver", h.driver)
	h.db = db
	return db, nil
}

// Close releases the connection. A later DB call reconnects.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	h.log.Info("database disconnected")
	return err
}

// Builder returns a statement builder using the driver's placeholder style.
func (h *Handle) Builder() sq.StatementBuilderType {
	if h.driver == "postgres" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func migrate(ctx context.Context, db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			UNIQUE (user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			spent_on TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses (user_id, spent_on)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_category ON expenses (user_id, category)`,
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
