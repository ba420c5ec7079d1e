package discogs

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore writes releases and their tracklists to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens path and creates the tables if needed. Use ":memory:"
// for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS music_release (
		release_id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		status TEXT,
		data_quality TEXT,
		date TEXT,
		country TEXT
	);

	CREATE TABLE IF NOT EXISTS tracklist (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		release_id INTEGER NOT NULL,
		position TEXT,
		title TEXT NOT NULL,
		FOREIGN KEY(release_id) REFERENCES music_release(release_id) ON DELETE CASCADE
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Insert stores rel and its tracklist in one transaction.
func (s *SQLiteStore) Insert(ctx context.Context, rel *Release) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO music_release (release_id, title, status, data_quality, date, country)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rel.ID, rel.Title, rel.Status, rel.DataQuality, nullable(rel.Released), nullable(rel.Country),
	); err != nil {
		return fmt.Errorf("failed to insert release: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tracklist (release_id, position, title) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare tracklist insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range rel.Tracklist {
		if _, err := stmt.ExecContext(ctx, rel.ID, t.Position, t.Title); err != nil {
			return fmt.Errorf("failed to insert track %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit release: %w", err)
	}
	return nil
}

// Counts returns the number of stored releases and tracks.
func (s *SQLiteStore) Counts(ctx context.Context) (releases, tracks int, err error) {
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM music_release").Scan(&releases); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tracklist").Scan(&tracks); err != nil {
		return 0, 0, err
	}
	return releases, tracks, nil
}

// Tracklist returns the track titles of a release in insertion order.
func (s *SQLiteStore) Tracklist(ctx context.Context, releaseID int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title FROM tracklist WHERE release_id = ? ORDER BY id", releaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
