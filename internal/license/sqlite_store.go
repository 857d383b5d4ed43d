package license

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tartampluch/showtime/internal/config"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS licenses (
	key        TEXT PRIMARY KEY,
	is_active  INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`

// SQLiteStore keeps license keys in a local SQLite database. It backs the
// self-hosted license server.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(config.ErrStorePath)
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	// One writer at a time; readers and writers queue on the pool.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrStorePing, err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrStoreMigrate, err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Issue mints n new active keys and returns them.
func (s *SQLiteStore) Issue(ctx context.Context, n int) ([]string, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	keys := make([]string, 0, n)
	for range n {
		key := uuid.NewString()
		if _, err := tx.ExecContext(ctx, `INSERT INTO licenses (key) VALUES (?)`, key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Put stores key with the given state, replacing any existing row.
func (s *SQLiteStore) Put(ctx context.Context, key string, rec Record) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO licenses (key, is_active) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET is_active = excluded.is_active`,
		key, rec.Active)
	return err
}

// Lookup implements Store.
func (s *SQLiteStore) Lookup(ctx context.Context, key string) (Record, bool, error) {
	if err := ValidateKey(key); err != nil {
		return Record{}, false, err
	}
	var active bool
	err := s.sqlDB.QueryRowContext(ctx, `SELECT is_active FROM licenses WHERE key = ?`, key).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("%s: %w", config.ErrLicenseLookup, err)
	}
	return Record{Active: active}, true, nil
}

// Delete implements Store. Deleting a missing key succeeds.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM licenses WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%s: %w", config.ErrLicenseDelete, err)
	}
	return nil
}

// Count returns the number of stored keys.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM licenses`).Scan(&n)
	return n, err
}
