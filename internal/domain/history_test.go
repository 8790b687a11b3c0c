package domain

import (
	"testing"
	"time"
)

func TestMealSlotAt(t *testing.T) {
	tests := []struct {
		hour, min int
		want      MealSlot
	}{
		{0, 0, MealBreakfast},
		{7, 0, MealBreakfast},
		{10, 59, MealBreakfast},
		{11, 0, MealLunch},
		{15, 59, MealLunch},
		{16, 0, MealDinner},
		{19, 59, MealDinner},
		{20, 0, MealSnack},
		{21, 0, MealSnack},
		{23, 59, MealSnack},
	}

	for _, tt := range tests {
		at := time.Date(2026, 3, 14, tt.hour, tt.min, 0, 0, time.Local)
		if got := MealSlotAt(at); got != tt.want {
			t.Errorf("%02d:%02d: got %s, want %s", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestNewHistoryEntry(t *testing.T) {
	at := time.Date(2026, 3, 14, 7, 30, 0, 0, time.Local)
	e := NewHistoryEntry("pasta", "Pasta", at, 11)

	if e.Date != "2026-03-14" {
		t.Fatalf("expected date 2026-03-14, got %s", e.Date)
	}
	if e.MealSlot != MealBreakfast {
		t.Fatalf("expected breakfast, got %s", e.MealSlot)
	}
	if e.RecipeID != "pasta" || e.TotalMinutes != 11 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestParseMealSlot(t *testing.T) {
	if m, ok := ParseMealSlot("dinner"); !ok || m != MealDinner {
		t.Fatalf("expected dinner, got %q ok=%v", m, ok)
	}
	if _, ok := ParseMealSlot("brunch"); ok {
		t.Fatal("expected brunch to be rejected")
	}
}
