// Package recipe provides recipe source implementations.
package recipe

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*MemorySource)(nil)

// MemorySource holds recipes in memory. Safe for concurrent reads.
type MemorySource struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	log     *logger.Logger
}

// NewMemorySource creates a recipe source preloaded with built-in recipes.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		recipes: make(map[string]*domain.Recipe),
		log:     log,
	}
	src.seed()
	return src
}

// LoadFile merges the recipes in a JSON document into the source. Recipes
// from the file replace built-ins with the same ID. Returns the number added.
func (s *MemorySource) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading recipes: %w", err)
	}
	recipes, err := Decode(data)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", path, err)
	}
	s.Add(recipes...)
	s.log.Info("loaded %d recipes from %s", len(recipes), path)
	return len(recipes), nil
}

// Add inserts or replaces recipes by ID.
func (s *MemorySource) Add(recipes ...*domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recipes {
		s.recipes[r.ID] = r
	}
}

// List returns summaries of all available recipes.
func (s *MemorySource) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, summarize(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Get returns a recipe by ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// Search returns recipes whose title, category or ingredients contain the query.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		if s.matches(r, q) {
			out = append(out, summarize(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *MemorySource) matches(r *domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Category), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			return true
		}
	}
	return false
}

func summarize(r *domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:        r.ID,
		Title:     r.Title,
		Category:  r.Category,
		PrepTime:  r.PrepTime,
		CookTime:  r.CookTime,
		StepCount: len(r.Steps),
	}
}

func (s *MemorySource) seed() {
	recipes := []*domain.Recipe{
		weeknightSpaghetti(),
		shakshuka(),
	}
	for _, r := range recipes {
		s.recipes[r.ID] = r
	}
	s.log.Debug("seeded %d recipes", len(recipes))
}

func weeknightSpaghetti() *domain.Recipe {
	return &domain.Recipe{
		ID:         "weeknight-spaghetti",
		Title:      "Weeknight Spaghetti",
		Category:   "pasta",
		Difficulty: "easy",
		Servings:   2,
		PrepTime:   "5 mins",
		CookTime:   "10 mins",
		VideoURL:   "https://www.youtube.com/watch?v=bJUiWdM__Qw",
		Ingredients: []string{
			"200 g spaghetti",
			"2 tbsp olive oil",
			"3 cloves garlic",
			"1 pinch chili flakes",
			"salt",
		},
		Steps: []domain.Step{
			{
				Order:        1,
				Title:        "Boil water",
				Description:  "Bring a large pot of well-salted water to a rolling boil.",
				Tip:          "It should taste like the sea.",
				Video:        NewVideoWindow("00:15", "01:10"),
				TimerMinutes: 8,
			},
			{
				Order:        2,
				Title:        "Add pasta",
				Description:  "Drop the spaghetti in and stir for the first minute so it doesn't stick.",
				Video:        NewVideoWindow("01:10", "02:40"),
				TimerMinutes: 9,
			},
			{
				Order:       3,
				Title:       "Drain",
				Description: "Reserve a cup of pasta water, then drain and toss with the garlic oil.",
				Tip:         "Loosen with pasta water if it looks dry.",
				Video:       NewVideoWindow("02:40", ""),
			},
		},
	}
}

func shakshuka() *domain.Recipe {
	return &domain.Recipe{
		ID:         "shakshuka",
		Title:      "Shakshuka",
		Category:   "breakfast",
		Difficulty: "medium",
		Servings:   3,
		PrepTime:   "10 mins",
		CookTime:   "25 mins",
		Ingredients: []string{
			"1 onion",
			"1 red bell pepper",
			"2 cloves garlic",
			"1 can crushed tomatoes",
			"1 tsp cumin",
			"1 tsp paprika",
			"5 eggs",
			"feta and parsley to serve",
		},
		Steps: []domain.Step{
			{
				Order:        1,
				Title:        "Soften the vegetables",
				Description:  "Cook the onion and pepper in olive oil over medium heat until soft.",
				TimerMinutes: 6,
			},
			{
				Order:       2,
				Title:       "Bloom the spices",
				Description: "Add garlic, cumin and paprika and stir for a minute until fragrant.",
				Tip:         "Keep it moving, burnt garlic turns bitter.",
			},
			{
				Order:        3,
				Title:        "Simmer the sauce",
				Description:  "Pour in the tomatoes, season, and simmer until slightly thickened.",
				TimerMinutes: 10,
			},
			{
				Order:        4,
				Title:        "Poach the eggs",
				Description:  "Make wells in the sauce, crack in the eggs, cover and cook until the whites set.",
				TimerMinutes: 7,
			},
			{
				Order:       5,
				Title:       "Serve",
				Description: "Crumble feta and scatter parsley over the top. Serve from the pan.",
			},
		},
	}
}
