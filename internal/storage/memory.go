package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.HistoryRecorder = (*MemoryHistory)(nil)
	_ domain.HistoryReader   = (*MemoryHistory)(nil)
)

// MemoryHistory is an in-memory history log. Safe for concurrent access.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
	log     *logger.Logger
}

// NewMemoryHistory creates an empty in-memory history.
func NewMemoryHistory(log *logger.Logger) *MemoryHistory {
	return &MemoryHistory{log: log}
}

// Record appends an entry.
func (h *MemoryHistory) Record(ctx context.Context, entry domain.HistoryEntry) error {
	e, err := prepare(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, e)
	h.log.Debug("recorded %s as %s on %s", e.RecipeID, e.MealSlot, e.Date)
	return nil
}

// ForDate returns the entries cooked on a YYYY-MM-DD date.
func (h *MemoryHistory) ForDate(ctx context.Context, date string) ([]domain.HistoryEntry, error) {
	return h.filter(func(e domain.HistoryEntry) bool { return e.Date == date }), nil
}

// ForRecipe returns every entry for a recipe.
func (h *MemoryHistory) ForRecipe(ctx context.Context, recipeID string) ([]domain.HistoryEntry, error) {
	return h.filter(func(e domain.HistoryEntry) bool { return e.RecipeID == recipeID }), nil
}

// All returns every entry in recording order.
func (h *MemoryHistory) All(ctx context.Context) ([]domain.HistoryEntry, error) {
	return h.filter(func(domain.HistoryEntry) bool { return true }), nil
}

func (h *MemoryHistory) filter(keep func(domain.HistoryEntry) bool) []domain.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []domain.HistoryEntry
	for _, e := range h.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
