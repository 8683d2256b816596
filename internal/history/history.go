// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists search runs and generated papers to a local
// SQLite database so past sessions can be browsed later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fakepaperia/fakepaperia/pkg/types"
)

const dbFile = "fakepaperia.db"

// SearchRecord is one recorded search run.
type SearchRecord struct {
	ID         int64     `json:"id"`
	Query      string    `json:"query"`
	Keywords   []string  `json:"keywords"`
	PaperCount int       `json:"paper_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaperRecord is one generated paper with its reaction.
type PaperRecord struct {
	ID        int64                `json:"id"`
	Query     string               `json:"query"`
	Paper     types.GeneratedPaper `json:"paper"`
	Reaction  string               `json:"reaction"`
	GifURL    string               `json:"gif_url"`
	CreatedAt time.Time            `json:"created_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dir/fakepaperia.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			keywords TEXT NOT NULL,
			paper_count INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			title TEXT NOT NULL,
			abstract TEXT,
			introduction TEXT,
			background TEXT,
			method TEXT,
			results TEXT,
			conclusion TEXT,
			refs TEXT,
			reaction TEXT,
			gif_url TEXT,
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

// RecordSearch stores a completed search run.
func (s *Store) RecordSearch(ctx context.Context, query string, keywords []string, paperCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (query, keywords, paper_count, created_at) VALUES (?, ?, ?, ?)`,
		query, strings.Join(keywords, ","), paperCount, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// RecordPaper stores a generated paper along with its reaction and GIF.
func (s *Store) RecordPaper(ctx context.Context, query string, paper types.GeneratedPaper, reaction, gifURL string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (query, title, abstract, introduction, background,
			method, results, conclusion, refs, reaction, gif_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		query, paper.Title, paper.Abstract, paper.Introduction, paper.Background,
		paper.Method, paper.Results, paper.Conclusion, paper.References,
		reaction, gifURL, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording paper: %w", err)
	}
	return nil
}

// RecentSearches returns up to n search runs, newest first.
func (s *Store) RecentSearches(ctx context.Context, n int) ([]SearchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, keywords, paper_count, created_at
		 FROM searches ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var rec SearchRecord
		var keywords, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Query, &keywords, &rec.PaperCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		if keywords != "" {
			rec.Keywords = strings.Split(keywords, ",")
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecentPapers returns up to n generated papers, newest first.
func (s *Store) RecentPapers(ctx context.Context, n int) ([]PaperRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, title, abstract, introduction, background,
			method, results, conclusion, refs, reaction, gif_url, created_at
		 FROM papers ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var records []PaperRecord
	for rows.Next() {
		var rec PaperRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Paper.Title, &rec.Paper.Abstract,
			&rec.Paper.Introduction, &rec.Paper.Background, &rec.Paper.Method,
			&rec.Paper.Results, &rec.Paper.Conclusion, &rec.Paper.References,
			&rec.Reaction, &rec.GifURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}
