package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var date string
	var recipeID string
	var today bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished cooking sessions by date and meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if today {
				date = time.Now().Format(domain.DateLayout)
			}
			date = strings.TrimSpace(date)
			if date != "" {
				if _, err := time.Parse(domain.DateLayout, date); err != nil {
					return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
				}
			}

			store, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []domain.HistoryEntry
			switch {
			case date != "":
				entries, err = store.ForDate(cmd.Context(), date)
			case recipeID != "":
				entries, err = store.ForRecipe(cmd.Context(), recipeID)
			default:
				entries, err = store.All(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if date != "" && recipeID != "" {
				entries = filterRecipe(entries, recipeID)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Nothing cooked yet.")
				return nil
			}
			fmt.Fprintln(out, renderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Only show this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&today, "today", false, "Only show today")
	cmd.Flags().StringVarP(&recipeID, "recipe", "r", "", "Only show this recipe ID")
	return cmd
}

func filterRecipe(entries []domain.HistoryEntry, recipeID string) []domain.HistoryEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.RecipeID == recipeID {
			kept = append(kept, e)
		}
	}
	return kept
}

// renderHistory lists entries newest date first, meals in calendar order.
func renderHistory(entries []domain.HistoryEntry) string {
	sorted := append([]domain.HistoryEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if sa, sb := slotRank(a.MealSlot), slotRank(b.MealSlot); sa != sb {
			return sa < sb
		}
		return a.RecordedAt.Before(b.RecordedAt)
	})

	rows := make([][]string, 0, len(sorted))
	prevDate := ""
	for _, e := range sorted {
		day := e.Date
		if day == prevDate {
			day = ""
		}
		prevDate = e.Date
		rows = append(rows, []string{
			day,
			string(e.MealSlot),
			truncateStr(e.RecipeTitle, 40),
			strconv.Itoa(e.TotalMinutes),
		})
	}
	return renderTable([]column{
		{title: "Date"},
		{title: "Meal"},
		{title: "Recipe"},
		{title: "Minutes", right: true},
	}, rows)
}

func slotRank(m domain.MealSlot) int {
	for i, s := range domain.MealSlots {
		if s == m {
			return i
		}
	}
	return len(domain.MealSlots)
}
