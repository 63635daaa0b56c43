package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"lingo/internal/domain"
)

// Dialect selects the placeholder style of the SQL driver
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// WordSetRepo implements repository.WordSetRepository on a SQL database
type WordSetRepo struct {
	db      *sql.DB
	dialect Dialect
}

// NewWordSetRepo creates a new word set repository
func NewWordSetRepo(db *sql.DB, dialect Dialect) *WordSetRepo {
	return &WordSetRepo{db: db, dialect: dialect}
}

// ListWordSets returns every stored word set in insertion order
func (r *WordSetRepo) ListWordSets(ctx context.Context) ([]domain.WordSet, error) {
	query := `
		SELECT category, native_language, foreign_language, native_word, foreign_word
		FROM word_sets
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query word sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.WordSet
	for rows.Next() {
		var ws domain.WordSet
		if err := rows.Scan(&ws.Category, &ws.NativeLanguage, &ws.ForeignLanguage, &ws.NativeWord, &ws.ForeignWord); err != nil {
			return nil, fmt.Errorf("scan word set: %w", err)
		}
		sets = append(sets, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// SaveWordSets replaces the stored vocabulary in a single transaction
func (r *WordSetRepo) SaveWordSets(ctx context.Context, sets []domain.WordSet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_sets`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear word sets: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO word_sets (category, native_language, foreign_language, native_word, foreign_word)
		VALUES (%s, %s, %s, %s, %s)
	`, r.placeholder(1), r.placeholder(2), r.placeholder(3), r.placeholder(4), r.placeholder(5))

	for _, ws := range sets {
		if _, err := tx.ExecContext(ctx, query, ws.Category, ws.NativeLanguage, ws.ForeignLanguage, ws.NativeWord, ws.ForeignWord); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert word set %q: %w", ws.NativeWord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit word sets: %w", err)
	}
	return nil
}

func (r *WordSetRepo) placeholder(n int) string {
	if r.dialect == SQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}
