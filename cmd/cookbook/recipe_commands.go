package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/recipe"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available recipes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ctx.recipes()
			if err != nil {
				return err
			}

			var items []domain.RecipeSummary
			if q := strings.TrimSpace(query); q != "" {
				items, err = src.Search(cmd.Context(), q)
			} else {
				items, err = src.List(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("list recipes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No recipes found.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, r := range items {
				rows = append(rows, []string{
					r.ID,
					truncateStr(r.Title, 40),
					r.Category,
					strconv.Itoa(r.StepCount),
					dash(r.PrepTime),
					dash(r.CookTime),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{title: "ID"},
				{title: "Title"},
				{title: "Category"},
				{title: "Steps", right: true},
				{title: "Prep"},
				{title: "Cook"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "Filter by title, category, or ingredient")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe>",
		Short: "Show a recipe's ingredients and steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ctx.recipes()
			if err != nil {
				return err
			}
			r, err := resolveRecipe(cmd.Context(), src, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRecipe(r))
			return nil
		},
	}
}

// renderRecipe formats a recipe for the terminal.
func renderRecipe(r *domain.Recipe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", r.Title, r.ID)
	var meta []string
	if r.Category != "" {
		meta = append(meta, r.Category)
	}
	if r.PrepTime != "" {
		meta = append(meta, "prep "+r.PrepTime)
	}
	if r.CookTime != "" {
		meta = append(meta, "cook "+r.CookTime)
	}
	if r.Servings > 0 {
		meta = append(meta, fmt.Sprintf("serves %d", r.Servings))
	}
	if r.Difficulty != "" {
		meta = append(meta, r.Difficulty)
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " · "))
		b.WriteByte('\n')
	}
	if r.VideoURL != "" {
		fmt.Fprintf(&b, "Video: %s\n", r.VideoURL)
	}

	if len(r.Ingredients) > 0 {
		b.WriteString("\nIngredients:\n")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&b, "  - %s\n", ing)
		}
	}

	rows := make([][]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		timerCol := ""
		if s.HasTimer() {
			timerCol = fmt.Sprintf("%d min", s.TimerMinutes)
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Order),
			truncateStr(s.Title, 50),
			timerCol,
			videoWindow(s.Video),
		})
	}
	b.WriteByte('\n')
	b.WriteString(renderTable([]column{
		{title: "#", right: true},
		{title: "Step"},
		{title: "Timer", right: true},
		{title: "Video"},
	}, rows))
	b.WriteByte('\n')
	return b.String()
}

// videoWindow renders a step's part of the recipe video as "1:30-2:15".
func videoWindow(w *domain.VideoWindow) string {
	if w == nil {
		return ""
	}
	if !w.HasEnd {
		return recipe.FormatTimestamp(w.Start) + "-"
	}
	return recipe.FormatTimestamp(w.Start) + "-" + recipe.FormatTimestamp(w.End)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
