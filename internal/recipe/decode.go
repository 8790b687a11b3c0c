package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

var (
	// ErrInvalidFormat means the document is neither a recipe, a list of
	// recipes, nor an object with a "recipes" list.
	ErrInvalidFormat = errors.New("expected recipe object or array of recipes")
	// ErrMissingTitle means at least one recipe has no title.
	ErrMissingTitle = errors.New("recipe is missing a title")
)

type recipeDoc struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	Servings    flexInt   `json:"servings"`
	PrepTime    string    `json:"prepTime"`
	CookTime    string    `json:"cookTime"`
	VideoURL    string    `json:"videoUrl"`
	Image       string    `json:"image"`
	Ingredients []string  `json:"ingredients"`
	Steps       []stepDoc `json:"steps"`
}

type stepDoc struct {
	Step         int       `json:"step"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tip          string    `json:"tip"`
	StartTime    *flexTime `json:"startTime"`
	EndTime      *flexTime `json:"endTime"`
	TimerMinutes float64   `json:"timerMinutes"`
	Image        string    `json:"image"`
}

// flexTime accepts a timestamp written as a JSON string or a number of seconds.
type flexTime string

func (f *flexTime) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexTime(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("timestamp must be a string or number: %w", err)
	}
	*f = flexTime(strconv.Itoa(int(n)))
	return nil
}

// flexInt accepts an integer written as a JSON number or a numeric string
// ("4" or "4 people").
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexInt(leadingInt(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(int(n))
	return nil
}

// Decode parses a recipe document. Three shapes are accepted: an array of
// recipes, an object with a "recipes" array, or a single recipe object.
func Decode(data []byte) ([]*domain.Recipe, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrInvalidFormat
	}

	var docs []recipeDoc
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("decoding recipe list: %w", err)
		}
	case '{':
		var probe struct {
			Recipes json.RawMessage `json:"recipes"`
			Title   string          `json:"title"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("decoding recipe document: %w", err)
		}
		switch {
		case len(probe.Recipes) > 0 && probe.Recipes[0] == '[':
			if err := json.Unmarshal(probe.Recipes, &docs); err != nil {
				return nil, fmt.Errorf("decoding recipes: %w", err)
			}
		case probe.Title != "":
			var doc recipeDoc
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("decoding recipe: %w", err)
			}
			docs = []recipeDoc{doc}
		default:
			return nil, ErrInvalidFormat
		}
	default:
		return nil, ErrInvalidFormat
	}

	missing := 0
	for _, d := range docs {
		if strings.TrimSpace(d.Title) == "" {
			missing++
		}
	}
	if missing > 0 {
		return nil, fmt.Errorf("%d recipe(s): %w", missing, ErrMissingTitle)
	}

	out := make([]*domain.Recipe, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (d recipeDoc) toDomain() *domain.Recipe {
	r := &domain.Recipe{
		ID:          strings.TrimSpace(d.ID),
		Title:       strings.TrimSpace(d.Title),
		Category:    d.Category,
		Difficulty:  d.Difficulty,
		Servings:    int(d.Servings),
		PrepTime:    d.PrepTime,
		CookTime:    d.CookTime,
		VideoURL:    d.VideoURL,
		Image:       d.Image,
		Ingredients: d.Ingredients,
		Steps:       make([]domain.Step, 0, len(d.Steps)),
	}
	if r.ID == "" {
		r.ID = Slug(r.Title)
	}

	for i, sd := range d.Steps {
		order := sd.Step
		if order <= 0 {
			order = i + 1
		}
		step := domain.Step{
			Order:        order,
			Title:        sd.Title,
			Description:  sd.Description,
			Tip:          sd.Tip,
			TimerMinutes: int(math.Round(sd.TimerMinutes)),
			Image:        sd.Image,
		}
		if sd.StartTime != nil {
			end := ""
			if sd.EndTime != nil {
				end = string(*sd.EndTime)
			}
			step.Video = NewVideoWindow(string(*sd.StartTime), end)
		}
		r.Steps = append(r.Steps, step)
	}
	return r
}

// Slug lowercases a title and joins its words with dashes.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
