// Package domain defines the core types and interfaces for the cookbook.
// All other packages depend on domain; domain depends on nothing.
package domain

import "time"

// Recipe represents a complete recipe. The cooking session borrows it
// read-only; nothing in the core mutates a loaded recipe.
type Recipe struct {
	ID          string
	Title       string
	Category    string
	Difficulty  string
	Servings    int
	PrepTime    string // free text, e.g. "15 mins" or "1 hour"
	CookTime    string
	VideoURL    string
	Image       string
	Ingredients []string
	Steps       []Step
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID        string
	Title     string
	Category  string
	PrepTime  string
	CookTime  string
	StepCount int
}

// Step represents a single instruction unit of a recipe.
type Step struct {
	Order        int // 1-based
	Title        string
	Description  string
	Tip          string
	Video        *VideoWindow // nil when the step has no video timing
	TimerMinutes int          // suggested wait, 0 if none
	Image        string
}

// HasTimer reports whether the step suggests a countdown.
func (s Step) HasTimer() bool {
	return s.TimerMinutes > 0
}

// VideoWindow is the part of the recipe video that belongs to a step.
type VideoWindow struct {
	Start  time.Duration
	End    time.Duration
	HasEnd bool
}

// StartSeconds returns the window start in whole seconds.
func (w VideoWindow) StartSeconds() int {
	return int(w.Start / time.Second)
}

// EndSeconds returns the window end in whole seconds, or 0 when the window is open-ended.
func (w VideoWindow) EndSeconds() int {
	if !w.HasEnd {
		return 0
	}
	return int(w.End / time.Second)
}
