package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gapscan/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS gap_up_result (
	id          TEXT PRIMARY KEY,
	ticker      TEXT NOT NULL,
	result_json TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_gap_up_result_ticker ON gap_up_result (ticker);
`

// SQLiteStore persists result tables as JSON rows in a SQLite database.
// Every Put appends a new run row; Get returns the latest run for the
// ticker.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, table *model.ResultTable) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding result table: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO gap_up_result (id, ticker, result_json, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), table.Ticker, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting result for %s: %w", table.Ticker, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, ticker string) (*model.ResultTable, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT result_json FROM gap_up_result WHERE ticker = ? ORDER BY created_at DESC LIMIT 1`,
		ticker).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying result for %s: %w", ticker, err)
	}

	var table model.ResultTable
	if err := json.Unmarshal([]byte(payload), &table); err != nil {
		return nil, fmt.Errorf("decoding result table: %w", err)
	}
	return &table, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
