// Package storage provides history recorder implementations.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// ErrInvalidEntry is returned when a history entry is missing required fields.
var ErrInvalidEntry = errors.New("invalid history entry")

// prepare validates an entry and fills in the ID and timestamp.
func prepare(e domain.HistoryEntry) (domain.HistoryEntry, error) {
	if e.RecipeID == "" {
		return e, fmt.Errorf("%w: missing recipe id", ErrInvalidEntry)
	}
	if _, err := time.Parse(domain.DateLayout, e.Date); err != nil {
		return e, fmt.Errorf("%w: date %q", ErrInvalidEntry, e.Date)
	}
	if _, ok := domain.ParseMealSlot(string(e.MealSlot)); !ok {
		return e, fmt.Errorf("%w: meal slot %q", ErrInvalidEntry, e.MealSlot)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	e.RecordedAt = e.RecordedAt.UTC()
	return e, nil
}
