package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// isInteractive reports whether f is a terminal the page can take over.
func isInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// recipeOptions turns the recipe list into picker options keyed by ID.
func recipeOptions(items []domain.RecipeSummary) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(items))
	for _, r := range items {
		steps := fmt.Sprintf("%d steps", r.StepCount)
		if r.StepCount == 1 {
			steps = "1 step"
		}
		label := fmt.Sprintf("%s (%s)", r.Title, steps)
		if r.Category != "" {
			label = fmt.Sprintf("%s · %s (%s)", r.Title, r.Category, steps)
		}
		options = append(options, huh.NewOption(label, r.ID))
	}
	return options
}

// pickRecipe asks which recipe to cook. Aborting the form cancels the command.
func pickRecipe(ctx context.Context, src domain.RecipeSource) (string, error) {
	items, err := src.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list recipes: %w", err)
	}
	if len(items) == 0 {
		return "", fmt.Errorf("no recipes to cook: %w", domain.ErrNotFound)
	}

	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What are we cooking?").
				Options(recipeOptions(items)...).
				Value(&id),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", context.Canceled
		}
		return "", fmt.Errorf("pick recipe: %w", err)
	}
	return id, nil
}
