// Package summary derives the performance summary of a finished cooking
// session. Everything here is a pure function of session fields.
package summary

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Compute builds the summary for a recipe cooked between startedAt and
// finishedAt, given the per-step durations in step order.
func Compute(recipe *domain.Recipe, startedAt, finishedAt time.Time, stepDurations []time.Duration) domain.Summary {
	s := domain.Summary{
		TotalMinutes: roundMinutes(finishedAt.Sub(startedAt)),
		Steps:        make([]domain.StepTiming, len(stepDurations)),
	}

	if recipe != nil {
		s.RecipeID = recipe.ID
		s.RecipeTitle = recipe.Title
		s.ExpectedMinutes = ExpectedMinutes(recipe)
	}

	for i, d := range stepDurations {
		title := ""
		if recipe != nil && i < len(recipe.Steps) {
			title = recipe.Steps[i].Title
		}
		s.Steps[i] = domain.StepTiming{
			Title:          title,
			ElapsedSeconds: roundSeconds(d),
		}
	}

	if s.ExpectedMinutes > 0 {
		s.Delta = s.TotalMinutes - s.ExpectedMinutes
		switch {
		case s.Delta < 0:
			s.Pace = domain.PaceFaster
		case s.Delta > 0:
			s.Pace = domain.PaceSlower
		default:
			s.Pace = domain.PaceOnTime
		}
	}
	return s
}

// ExpectedMinutes is the recipe's declared prep plus cook time.
func ExpectedMinutes(recipe *domain.Recipe) int {
	return ParseMinutes(recipe.PrepTime) + ParseMinutes(recipe.CookTime)
}

// ParseMinutes reads a free-text duration such as "15 mins" or "1 hour".
// Only the leading integer is used; text mentioning "hour" is scaled by 60.
// Anything without a leading integer yields 0.
func ParseMinutes(text string) int {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)

	n, digits := 0, 0
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}

	if strings.Contains(strings.ToLower(text), "hour") {
		return n * 60
	}
	return n
}

func roundMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Minutes()))
}

func roundSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds()))
}
