package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/thomaskoefod/hackerfeed/pkg/models"
)

// InsertStarred stores a starred item unless its id is already present.
// It reports whether a row was added.
func (db *DB) InsertStarred(item models.StarredItem) (bool, error) {
	result, err := db.Exec(
		"INSERT OR IGNORE INTO starred_items (id, title, url, by_user, domain, starred_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, item.Title, item.URL, item.By, item.Domain, item.StarredAt,
	)
	if err != nil {
		return false, fmt.Errorf("inserting starred item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteStarred removes a starred item
func (db *DB) DeleteStarred(id int64) error {
	if _, err := db.Exec("DELETE FROM starred_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting starred item: %w", err)
	}
	return nil
}

// GetStarred retrieves all starred items in the order they were starred
func (db *DB) GetStarred() ([]models.StarredItem, error) {
	rows, err := db.Query("SELECT id, title, url, by_user, domain, starred_at FROM starred_items ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying starred items: %w", err)
	}
	defer rows.Close()

	var items []models.StarredItem
	for rows.Next() {
		var s models.StarredItem
		if err := rows.Scan(&s.ID, &s.Title, &s.URL, &s.By, &s.Domain, &s.StarredAt); err != nil {
			return nil, fmt.Errorf("scanning starred item: %w", err)
		}
		items = append(items, s)
	}

	return items, rows.Err()
}

// IsStarred reports whether id is in the starred set
func (db *DB) IsStarred(id int64) (bool, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(1) FROM starred_items WHERE id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("querying starred item: %w", err)
	}
	return n > 0, nil
}

// ReplaceItems swaps the cached feed snapshot for items, keeping their order
func (db *DB) ReplaceItems(items []models.Item, fetchedAt time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items"); err != nil {
		return fmt.Errorf("clearing cached items: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO items (id, rank, title, by_user, url, score, time, descendants, type, text, fetched_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	for rank, item := range items {
		var descendants sql.NullInt64
		if item.Descendants != nil {
			descendants = sql.NullInt64{Int64: int64(*item.Descendants), Valid: true}
		}
		if _, err := stmt.Exec(
			item.ID, rank, item.Title, item.By, item.URL, item.Score, item.Time, descendants, item.Type, item.Text, fetchedAt.Unix(),
		); err != nil {
			return fmt.Errorf("inserting item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}

// GetCachedItems retrieves the cached snapshot in feed order, or nothing when
// it is older than maxAge
func (db *DB) GetCachedItems(maxAge time.Duration) ([]models.Item, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	rows, err := db.Query(
		"SELECT id, title, by_user, url, score, time, descendants, type, text FROM items WHERE fetched_at >= ? ORDER BY rank",
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cached items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var descendants sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Title, &item.By, &item.URL, &item.Score, &item.Time, &descendants, &item.Type, &item.Text); err != nil {
			return nil, fmt.Errorf("scanning cached item: %w", err)
		}
		if descendants.Valid {
			n := int(descendants.Int64)
			item.Descendants = &n
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
