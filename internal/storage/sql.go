package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQL is a KeyValue backend over a single key/value table. It works with
// both SQLite (local file, the default) and PostgreSQL.
type SQL struct {
	db *sqlx.DB
}

// OpenSQL connects to the database selected by dbType ("sqlite" or
// "postgres") and creates the schema if it is missing. For SQLite the parent
// directory of sqlitePath is created as needed.
func OpenSQL(dbType, sqlitePath, postgresURL string) (*SQL, error) {
	switch dbType {
	case "", "sqlite", "sqlite3":
		if dir := filepath.Dir(sqlitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		return open("sqlite3", sqlitePath)
	case "postgres":
		return open("postgres", postgresURL)
	default:
		return nil, fmt.Errorf("unsupported database type: %q", dbType)
	}
}

func open(driver, dsn string) (*SQL, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}

	return &SQL{db: db}, nil
}

// Get returns the value under key, or (nil, nil) when absent.
func (s *SQL) Get(key string) ([]byte, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM kv_store WHERE key = $1", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set stores value under key, replacing any previous value.
func (s *SQL) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value under key.
func (s *SQL) Remove(key string) error {
	_, err := s.db.Exec("DELETE FROM kv_store WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}
