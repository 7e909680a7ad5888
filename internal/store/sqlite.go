package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements DocumentStore on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite-backed document store.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode keeps concurrent request handlers from tripping over writes.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		doc_id TEXT NOT NULL,
		data TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL,
		PRIMARY KEY (collection, doc_id)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_expires ON documents(expires_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Get retrieves a live document by collection and id.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	query := `
		SELECT data FROM documents
		WHERE collection = ? AND doc_id = ? AND expires_at > ?`

	var data string
	err := s.db.QueryRowContext(ctx, query, collection, id, time.Now().Unix()).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("scan document row: %w", err)
	}
	return json.RawMessage(data), true, nil
}

// Set creates or fully overwrites a document.
func (s *SQLiteStore) Set(ctx context.Context, collection, id string, doc json.RawMessage, expiresAt time.Time) error {
	query := `
	INSERT INTO documents (collection, doc_id, data, updated_at, expires_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(collection, doc_id) DO UPDATE SET
		data = excluded.data,
		updated_at = excluded.updated_at,
		expires_at = excluded.expires_at`

	_, err := s.db.ExecContext(ctx, query,
		collection, id, string(doc), time.Now().Unix(), expiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// DeleteExpired removes documents whose expiry has passed.
func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired documents: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
