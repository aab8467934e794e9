// Package state persists the small set of facts that must survive across
// trigger invocations: addresses, subscriber credentials and lifecycle flags.
package state

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"lteman/internal/constants"
	"lteman/internal/errors"
	"lteman/internal/xdg"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Config represents state store configuration
type Config struct {
	// DSN is the SQLite data source name
	DSN string
	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int
	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int
	// ConnMaxLifetime is the maximum lifetime of a connection
	ConnMaxLifetime time.Duration
}

// getDefaultStatePath returns the XDG-compliant database path
func getDefaultStatePath() string {
	stateDir, err := xdg.StateDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".local", "state", "lteman", "state.db")
	}
	return filepath.Join(stateDir, "state.db")
}

// DefaultConfig returns a default SQLite configuration
func DefaultConfig() *Config {
	return &Config{
		DSN:             getDefaultStatePath(),
		MaxOpenConns:    constants.DefaultMaxOpenConnections,
		MaxIdleConns:    constants.DefaultMaxIdleConnections,
		ConnMaxLifetime: constants.DefaultConnectionTimeout,
	}
}

// Store wraps sqlx.DB with typed access to the persisted facts
type Store struct {
	db     *sqlx.DB
	config *Config
}

// New opens the state store, creating the backing file if needed
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.StateConnectionFailed(err)
	}

	db, err := sqlx.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, errors.StateConnectionFailed(err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.StateConnectionFailed(err)
	}

	return &Store{
		db:     db,
		config: cfg,
	}, nil
}

// Migrate runs state store schema migrations
func (s *Store) Migrate() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.StateMigrationFailed(err)
	}

	dbInstance, err := sqlite3.WithInstance(s.db.DB, &sqlite3.Config{})
	if err != nil {
		return errors.StateMigrationFailed(err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbInstance)
	if err != nil {
		return errors.StateMigrationFailed(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.StateMigrationFailed(err)
	}

	return nil
}

// Close closes the state store
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value persisted for key, with ok reporting presence
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM facts WHERE key = ?`

	err := s.db.GetContext(ctx, &value, query, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.StateQueryFailed(key, err)
	}
	return value, true, nil
}

// Set persists a value for key with last-write-wins semantics
func (s *Store) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO facts (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return errors.StateQueryFailed(key, err)
	}
	return nil
}

// Delete removes a key; deleting a missing key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM facts WHERE key = ?`, key); err != nil {
		return errors.StateQueryFailed(key, err)
	}
	return nil
}

// Reset clears all persisted facts. Used on full removal.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM facts`); err != nil {
		return errors.StateQueryFailed("*", err)
	}
	return nil
}

// HealthCheck performs a health check on the state store
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result int
	if err := s.db.GetContext(ctx, &result, "SELECT 1"); err != nil {
		return errors.StateConnectionFailed(err)
	}
	return nil
}
