package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zjrosen/quill/internal/dictionary"
)

// wordRepository implements dictionary.Repository using SQLite.
type wordRepository struct {
	db  *sql.DB
	now func() time.Time
}

func newWordRepository(db *sql.DB) *wordRepository {
	return &wordRepository{db: db, now: time.Now}
}

var _ dictionary.Repository = (*wordRepository)(nil)

// Add inserts word. Adding a word that differs only in case replaces the
// stored spelling.
func (r *wordRepository) Add(ctx context.Context, word string) error {
	m := toWordModel(word, r.now())
	if m.Word == "" {
		return fmt.Errorf("empty word")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO custom_words (word, word_lower, added_at) VALUES (?, ?, ?)
		ON CONFLICT (word_lower) DO UPDATE SET word = excluded.word`,
		m.Word, m.WordLower, m.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert word: %w", err)
	}
	return nil
}

// Remove deletes word, ignoring case.
func (r *wordRepository) Remove(ctx context.Context, word string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM custom_words WHERE word_lower = ?`,
		strings.ToLower(strings.TrimSpace(word)),
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// List returns every word, oldest first.
func (r *wordRepository) List(ctx context.Context) ([]dictionary.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, word, word_lower, added_at FROM custom_words ORDER BY added_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []dictionary.Entry
	for rows.Next() {
		var m WordModel
		if err := rows.Scan(&m.ID, &m.Word, &m.WordLower, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		out = append(out, m.toEntry())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate words: %w", err)
	}
	return out, nil
}
