package domain

import "time"

// DateLayout is the calendar date format used for history entries.
const DateLayout = "2006-01-02"

// MealSlot classifies when a recipe was cooked.
type MealSlot string

const (
	MealBreakfast MealSlot = "breakfast"
	MealLunch     MealSlot = "lunch"
	MealDinner    MealSlot = "dinner"
	MealSnack     MealSlot = "snack"
)

// MealSlots lists every slot in calendar order.
var MealSlots = []MealSlot{MealBreakfast, MealLunch, MealDinner, MealSnack}

// MealSlotAt infers the meal slot from the wall-clock hour of t.
func MealSlotAt(t time.Time) MealSlot {
	switch h := t.Hour(); {
	case h < 11:
		return MealBreakfast
	case h < 16:
		return MealLunch
	case h < 20:
		return MealDinner
	default:
		return MealSnack
	}
}

// ParseMealSlot converts a stored slot name back to a MealSlot.
func ParseMealSlot(s string) (MealSlot, bool) {
	for _, m := range MealSlots {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// HistoryEntry records one finished cooking session.
type HistoryEntry struct {
	ID           string
	RecipeID     string
	RecipeTitle  string
	Date         string // YYYY-MM-DD
	MealSlot     MealSlot
	TotalMinutes int
	RecordedAt   time.Time
}

// NewHistoryEntry builds the completion record for a session finished at t.
func NewHistoryEntry(recipeID, recipeTitle string, t time.Time, totalMinutes int) HistoryEntry {
	return HistoryEntry{
		RecipeID:     recipeID,
		RecipeTitle:  recipeTitle,
		Date:         t.Format(DateLayout),
		MealSlot:     MealSlotAt(t),
		TotalMinutes: totalMinutes,
		RecordedAt:   t,
	}
}
