// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the active search session in SQLite so the
// two-phase flow can run across separate CLI invocations: search saves a
// partial result, a later analyze loads it, finalizes, and saves again.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

const dbFile = "techdata.db"

// Store manages the session database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the session database at dataDir/techdata.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			active_index INTEGER NOT NULL,
			search_method TEXT,
			search_status TEXT,
			status_message TEXT,
			min_consistent_sources INTEGER,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			article_number TEXT,
			product_name TEXT NOT NULL,
			search_pending INTEGER NOT NULL DEFAULT 0,
			properties TEXT,
			meta_sources TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS raw_content (
			position INTEGER PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT,
			content TEXT,
			content_length INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			method TEXT NOT NULL,
			product_count INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveSession replaces the persisted session with the given result and
// selection. The previous session rows are dropped in the same
// transaction, mirroring the engine's replace-not-patch semantics.
func (s *Store) SaveSession(ctx context.Context, res types.Result, active int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"session", "products", "raw_content"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO session (id, active_index, search_method, search_status, status_message, min_consistent_sources, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?)`,
		active, string(res.SearchMethod), string(res.SearchStatus), res.StatusMessage,
		res.MinConsistentSources, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	for i, p := range res.Products {
		props, err := json.Marshal(p.Properties)
		if err != nil {
			return fmt.Errorf("marshaling properties of product %d: %w", i, err)
		}
		metaSources, err := json.Marshal(p.Meta.Sources)
		if err != nil {
			return fmt.Errorf("marshaling sources of product %d: %w", i, err)
		}
		pending := 0
		if p.Meta.SearchPending {
			pending = 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO products (position, id, article_number, product_name, search_pending, properties, meta_sources)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, p.ID, p.ArticleNumber, p.ProductName, pending, string(props), string(metaSources))
		if err != nil {
			return fmt.Errorf("inserting product %d: %w", i, err)
		}
	}

	for i, rc := range res.RawContent {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO raw_content (position, url, title, content, content_length)
			 VALUES (?, ?, ?, ?, ?)`,
			i, rc.URL, rc.Title, rc.Content, rc.ContentLength)
		if err != nil {
			return fmt.Errorf("inserting raw content %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadSession reads the persisted session. The third return value is
// false when no session is stored.
func (s *Store) LoadSession(ctx context.Context) (types.Result, int, bool, error) {
	var (
		res                     types.Result
		active                  int
		method, status, message string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT active_index, search_method, search_status, status_message, min_consistent_sources
		 FROM session WHERE id = 1`).
		Scan(&active, &method, &status, &message, &res.MinConsistentSources)
	if err == sql.ErrNoRows {
		return types.Result{}, -1, false, nil
	}
	if err != nil {
		return types.Result{}, -1, false, fmt.Errorf("reading session: %w", err)
	}
	res.SearchMethod = types.SearchMethod(method)
	res.SearchStatus = types.SearchStatus(status)
	res.StatusMessage = message

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, article_number, product_name, search_pending, properties, meta_sources
		 FROM products ORDER BY position`)
	if err != nil {
		return types.Result{}, -1, false, fmt.Errorf("reading products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p                  types.Product
			pending            int
			props, metaSources string
		)
		if err := rows.Scan(&p.ID, &p.ArticleNumber, &p.ProductName, &pending, &props, &metaSources); err != nil {
			return types.Result{}, -1, false, fmt.Errorf("scanning product: %w", err)
		}
		p.Meta.SearchPending = pending != 0
		if props != "" && props != "null" {
			if err := json.Unmarshal([]byte(props), &p.Properties); err != nil {
				return types.Result{}, -1, false, fmt.Errorf("parsing properties of %s: %w", p.ID, err)
			}
		}
		if metaSources != "" && metaSources != "null" {
			if err := json.Unmarshal([]byte(metaSources), &p.Meta.Sources); err != nil {
				return types.Result{}, -1, false, fmt.Errorf("parsing sources of %s: %w", p.ID, err)
			}
		}
		res.Products = append(res.Products, p)
	}
	if err := rows.Err(); err != nil {
		return types.Result{}, -1, false, fmt.Errorf("iterating products: %w", err)
	}

	rcRows, err := s.db.QueryContext(ctx,
		`SELECT url, title, content, content_length FROM raw_content ORDER BY position`)
	if err != nil {
		return types.Result{}, -1, false, fmt.Errorf("reading raw content: %w", err)
	}
	defer rcRows.Close()
	for rcRows.Next() {
		var rc types.RawContentEntry
		if err := rcRows.Scan(&rc.URL, &rc.Title, &rc.Content, &rc.ContentLength); err != nil {
			return types.Result{}, -1, false, fmt.Errorf("scanning raw content: %w", err)
		}
		res.RawContent = append(res.RawContent, rc)
	}
	if err := rcRows.Err(); err != nil {
		return types.Result{}, -1, false, fmt.Errorf("iterating raw content: %w", err)
	}

	return res, active, true, nil
}

// ClearSession drops the persisted session, e.g. when the user deletes
// the last product or explicitly clears the search.
func (s *Store) ClearSession(ctx context.Context) error {
	for _, table := range []string{"session", "products", "raw_content"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// HistoryEntry is one past search.
type HistoryEntry struct {
	Query        string
	Method       types.SearchMethod
	ProductCount int
	CreatedAt    time.Time
}

// AppendHistory records a completed search.
func (s *Store) AppendHistory(ctx context.Context, query string, method types.SearchMethod, productCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (query, method, product_count, created_at) VALUES (?, ?, ?, ?)`,
		query, string(method), productCount, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting history: %w", err)
	}
	return nil
}

// History returns the most recent searches, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT query, method, product_count, created_at FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e  HistoryEntry
			m  string
			ts string
		)
		if err := rows.Scan(&e.Query, &m, &e.ProductCount, &ts); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.Method = types.SearchMethod(m)
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
