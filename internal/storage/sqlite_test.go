package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestSQLiteRecord_Insert(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	h := NewSQLiteHistory(db, logger.New(logger.LevelOff, nil))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cook_history`)).
		WithArgs(sqlmock.AnyArg(), "shakshuka", "Shakshuka", "2026-05-02", "lunch", 30, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := domain.NewHistoryEntry("shakshuka", "Shakshuka", time.Date(2026, 5, 2, 12, 15, 0, 0, time.Local), 30)
	if err := h.Record(ctx(t), entry); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteRecord_DBError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	h := NewSQLiteHistory(db, logger.New(logger.LevelOff, nil))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cook_history`)).
		WillReturnError(errors.New("database is locked"))

	entry := domain.NewHistoryEntry("shakshuka", "Shakshuka", time.Now(), 30)
	if err := h.Record(ctx(t), entry); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteRecord_InvalidSkipsDB(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	h := NewSQLiteHistory(db, logger.New(logger.LevelOff, nil))
	if err := h.Record(ctx(t), domain.HistoryEntry{}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteForDate_Scan(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	h := NewSQLiteHistory(db, logger.New(logger.LevelOff, nil))

	recorded := time.Date(2026, 5, 2, 19, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "recipe_id", "recipe_title", "cooked_on", "meal_slot", "total_minutes", "recorded_at"}).
		AddRow("a1", "weeknight-spaghetti", "Weeknight Spaghetti", "2026-05-02", "dinner", 14, recorded.Format(time.RFC3339Nano))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM cook_history WHERE cooked_on = ?`)).
		WithArgs("2026-05-02").
		WillReturnRows(rows)

	got, err := h.ForDate(ctx(t), "2026-05-02")
	if err != nil {
		t.Fatalf("for date: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	e := got[0]
	if e.ID != "a1" || e.MealSlot != domain.MealDinner || e.TotalMinutes != 14 || !e.RecordedAt.Equal(recorded) {
		t.Fatalf("unexpected entry %+v", e)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteForRecipe_QueryError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	h := NewSQLiteHistory(db, logger.New(logger.LevelOff, nil))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM cook_history WHERE recipe_id = ?`)).
		WithArgs("x").
		WillReturnError(sql.ErrConnDone)

	if _, err := h.ForRecipe(ctx(t), "x"); !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected wrapped ErrConnDone, got %v", err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "data", "history.db")

	h, err := Open(ctx(t), path, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	day := time.Date(2026, 5, 2, 7, 45, 0, 0, time.Local)
	if err := h.Record(ctx(t), domain.NewHistoryEntry("shakshuka", "Shakshuka", day, 31)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Record(ctx(t), domain.NewHistoryEntry("weeknight-spaghetti", "Weeknight Spaghetti", day.Add(10*time.Hour), 12)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen to make sure entries survive and the schema is reused.
	h, err = Open(ctx(t), path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer h.Close()

	onDay, err := h.ForDate(ctx(t), "2026-05-02")
	if err != nil {
		t.Fatalf("for date: %v", err)
	}
	if len(onDay) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(onDay))
	}
	if onDay[0].RecipeID != "shakshuka" || onDay[0].MealSlot != domain.MealBreakfast {
		t.Fatalf("unexpected first entry %+v", onDay[0])
	}
	if onDay[1].MealSlot != domain.MealDinner {
		t.Fatalf("expected dinner, got %s", onDay[1].MealSlot)
	}

	all, err := h.All(ctx(t))
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries total, got %d", len(all))
	}
}
