package recipe

import (
	"errors"
	"testing"
)

const singleRecipe = `{
  "title": "Garlic Butter Pasta",
  "prepTime": "5 mins",
  "cookTime": "10 mins",
  "servings": "2 people",
  "videoUrl": "https://youtu.be/dQw4w9WgXcQ",
  "steps": [
    {"step": 1, "title": "Boil water", "description": "Salt it well.", "startTime": "01:30", "endTime": "02:00", "timerMinutes": 8},
    {"step": 2, "title": "Add pasta", "startTime": 150},
    {"title": "Drain", "tip": "Keep a cup of pasta water."}
  ]
}`

func TestDecodeSingle(t *testing.T) {
	recipes, err := Decode([]byte(singleRecipe))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}

	r := recipes[0]
	if r.ID != "garlic-butter-pasta" {
		t.Fatalf("expected slug id, got %q", r.ID)
	}
	if r.Servings != 2 {
		t.Fatalf("expected 2 servings, got %d", r.Servings)
	}
	if len(r.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(r.Steps))
	}

	first := r.Steps[0]
	if first.Video == nil || first.Video.StartSeconds() != 90 || first.Video.EndSeconds() != 120 {
		t.Fatalf("expected window [90,120], got %+v", first.Video)
	}
	if first.TimerMinutes != 8 {
		t.Fatalf("expected 8 timer minutes, got %d", first.TimerMinutes)
	}

	second := r.Steps[1]
	if second.Video == nil || second.Video.StartSeconds() != 150 || second.Video.HasEnd {
		t.Fatalf("expected open window at 150, got %+v", second.Video)
	}

	third := r.Steps[2]
	if third.Order != 3 || third.Video != nil || third.Tip == "" {
		t.Fatalf("unexpected third step: %+v", third)
	}
}

func TestDecodeShapes(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    int
		wantErr error
	}{
		{"array", `[{"title":"A","steps":[{"title":"x"}]},{"title":"B"}]`, 2, nil},
		{"wrapped", `{"recipes":[{"title":"A"}]}`, 1, nil},
		{"missing title", `[{"title":"A"},{"category":"x"}]`, 0, ErrMissingTitle},
		{"unknown object", `{"name":"A"}`, 0, ErrInvalidFormat},
		{"scalar", `42`, 0, ErrInvalidFormat},
		{"empty", ``, 0, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := Decode([]byte(tt.doc))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(recipes) != tt.want {
				t.Fatalf("expected %d recipes, got %d", tt.want, len(recipes))
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Garlic Butter Pasta":  "garlic-butter-pasta",
		"  Mom's   Chili! ":    "mom-s-chili",
		"Pad Thai (quick)":     "pad-thai-quick",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
