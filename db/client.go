package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Client is a thin wrapper around a sql.DB connected to the build history
// SQLite database. Use NewClient to construct it.
//
// The driver is modernc.org/sqlite (no CGO). MaxOpenConns is 1; the CLI is
// the only writer.
type Client struct {
	DB   *sql.DB
	Path string
}

// NewClient opens the database at path, verifies the connection and creates
// the schema if needed.
func NewClient(path string) (*Client, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	c := &Client{DB: db, Path: path}
	if err := c.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying sql.DB. Safe to call multiple times or on a nil client.
func (c *Client) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func (c *Client) migrate() error {
	_, err := c.DB.Exec(`
CREATE TABLE IF NOT EXISTS builds (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT    NOT NULL,
	part        TEXT    NOT NULL,
	file        TEXT    NOT NULL,
	params_hash TEXT    NOT NULL,
	sha256      TEXT    NOT NULL,
	triangles   INTEGER NOT NULL,
	volume      REAL    NOT NULL,
	resolution  REAL    NOT NULL,
	search_iters INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS builds_part_params ON builds (part, params_hash);
`)
	if err != nil {
		return fmt.Errorf("create builds table: %w", err)
	}

	// Databases created before search_iters was recorded.
	var n int
	err = c.DB.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('builds') WHERE name = 'search_iters'`).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspect builds table: %w", err)
	}
	if n == 0 {
		if _, err := c.DB.Exec(`ALTER TABLE builds ADD COLUMN search_iters INTEGER NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add search_iters column: %w", err)
		}
	}
	return nil
}
