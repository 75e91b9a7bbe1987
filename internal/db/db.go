package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBPair holds separate read and write connections for optimal SQLite concurrency.
// With WAL mode, readers don't block writers and vice versa.
// Using separate pools allows concurrent reads while serializing writes.
type DBPair struct {
	reader *sql.DB // Multiple connections for concurrent reads
	writer *sql.DB // Single connection for serialized writes
}

// Reader returns the read-only database connection pool.
func (p *DBPair) Reader() *sql.DB { return p.reader }

// Writer returns the read-write database connection pool.
func (p *DBPair) Writer() *sql.DB { return p.writer }

// Close closes both database connections.
func (p *DBPair) Close() error {
	var errs []error
	if err := p.reader.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close reader: %w", err))
	}
	if err := p.writer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close writer: %w", err))
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS settings (
	setting_key TEXT PRIMARY KEY,
	value_json  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// Init opens the SQLite database with optimal connection pooling for concurrency.
// Returns a DBPair with separate reader and writer pools.
func Init(dbPath string) (*DBPair, error) {
	if dbPath == "" {
		return nil, errors.New("db path is required")
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	// Writer: single connection, handles all writes.
	// - _journal=WAL: write-ahead logging for concurrent reads
	// - _busy_timeout=5000: wait up to 5 seconds for locks
	writerConnStr := fmt.Sprintf("%s?_journal=WAL&_busy_timeout=5000&cache=shared&mode=rwc", dbPath)
	writer, err := sql.Open("sqlite3", writerConnStr)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1) // SQLite serializes writes anyway
	writer.SetMaxIdleConns(1)
	writer.SetConnMaxLifetime(time.Hour)

	if _, err := writer.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		writer.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	if _, err := writer.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		writer.Close()
		return nil, fmt.Errorf("set foreign_keys: %w", err)
	}

	// Reader: multiple connections for concurrent reads.
	readerConnStr := fmt.Sprintf("%s?_journal=WAL&_busy_timeout=5000&cache=shared", dbPath)
	reader, err := sql.Open("sqlite3", readerConnStr)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(4)
	reader.SetMaxIdleConns(2)
	reader.SetConnMaxLifetime(time.Hour)

	// Apply schema using writer
	if _, err := writer.Exec(schemaSQL); err != nil {
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DBPair{reader: reader, writer: writer}, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
