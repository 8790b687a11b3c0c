package domain

import (
	"context"
	"time"
)

// Clock supplies the current instant. Tests inject a fake.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// RecipeSource provides recipes. Implementations can be in-memory (built-in)
// or file-backed.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// HistoryRecorder durably logs finished cooking sessions. The session only
// emits entries; storage format belongs to the implementation.
type HistoryRecorder interface {
	Record(ctx context.Context, entry HistoryEntry) error
}

// HistoryReader reads back recorded sessions.
type HistoryReader interface {
	ForDate(ctx context.Context, date string) ([]HistoryEntry, error)
	ForRecipe(ctx context.Context, recipeID string) ([]HistoryEntry, error)
	All(ctx context.Context) ([]HistoryEntry, error)
}

// Notifier delivers messages to the user. Implementations can write to
// the terminal, push to a phone, or play a sound.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// SessionObserver receives cooking session lifecycle events. Callbacks run
// outside the session's lock and may call read-only session methods.
type SessionObserver interface {
	SessionStarted(ctx context.Context, snap SessionSnapshot)
	StepAdvanced(ctx context.Context, index int, elapsed time.Duration)
	SessionFinished(ctx context.Context, summary Summary)
	ElapsedTick(elapsed time.Duration)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string, snap *SessionSnapshot) (*Intent, error)
}
