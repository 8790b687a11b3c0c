package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface checks.
var (
	_ domain.HistoryRecorder = (*SQLiteHistory)(nil)
	_ domain.HistoryReader   = (*SQLiteHistory)(nil)
)

const selectColumns = `SELECT id, recipe_id, recipe_title, cooked_on, meal_slot, total_minutes, recorded_at
		FROM cook_history`

// SQLiteHistory persists history entries in SQLite.
type SQLiteHistory struct {
	db  *sql.DB
	log *logger.Logger
}

// Open connects to (or creates) the history database at path and applies the schema.
func Open(ctx context.Context, path string, log *logger.Logger) (*SQLiteHistory, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	h := NewSQLiteHistory(db, log)
	if err := h.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug("history database ready at %s", path)
	return h, nil
}

// NewSQLiteHistory wraps an open database. The schema is not applied.
func NewSQLiteHistory(db *sql.DB, log *logger.Logger) *SQLiteHistory {
	return &SQLiteHistory{db: db, log: log}
}

// Migrate creates the history table if it does not exist.
func (h *SQLiteHistory) Migrate(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (h *SQLiteHistory) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Record inserts an entry.
func (h *SQLiteHistory) Record(ctx context.Context, entry domain.HistoryEntry) error {
	e, err := prepare(entry)
	if err != nil {
		return err
	}

	_, err = h.db.ExecContext(ctx,
		`INSERT INTO cook_history (id, recipe_id, recipe_title, cooked_on, meal_slot, total_minutes, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.RecipeID,
		e.RecipeTitle,
		e.Date,
		string(e.MealSlot),
		e.TotalMinutes,
		e.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	h.log.Debug("recorded %s as %s on %s", e.RecipeID, e.MealSlot, e.Date)
	return nil
}

// ForDate returns the entries cooked on a YYYY-MM-DD date.
func (h *SQLiteHistory) ForDate(ctx context.Context, date string) ([]domain.HistoryEntry, error) {
	return h.query(ctx, selectColumns+` WHERE cooked_on = ? ORDER BY recorded_at`, date)
}

// ForRecipe returns every entry for a recipe, oldest first.
func (h *SQLiteHistory) ForRecipe(ctx context.Context, recipeID string) ([]domain.HistoryEntry, error) {
	return h.query(ctx, selectColumns+` WHERE recipe_id = ? ORDER BY recorded_at`, recipeID)
}

// All returns every entry, oldest first.
func (h *SQLiteHistory) All(ctx context.Context) ([]domain.HistoryEntry, error) {
	return h.query(ctx, selectColumns+` ORDER BY recorded_at`)
}

func (h *SQLiteHistory) query(ctx context.Context, q string, args ...any) ([]domain.HistoryEntry, error) {
	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var (
			e          domain.HistoryEntry
			slot       string
			recordedAt string
		)
		if err := rows.Scan(&e.ID, &e.RecipeID, &e.RecipeTitle, &e.Date, &slot, &e.TotalMinutes, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.MealSlot = domain.MealSlot(slot)
		if t, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			e.RecordedAt = t
		} else {
			h.log.Warn("history entry %s: bad recorded_at %q", e.ID, recordedAt)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}
