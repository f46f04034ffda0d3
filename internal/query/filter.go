// Package query filters and paginates recipe collections. Filters are
// a conjunction applied in a fixed order; each is optional.
package query

import (
	"strconv"
	"strings"

	"github.com/receptar-app/backend/internal/model"
)

// Params carries the optional filters plus pagination. Zero values
// mean "not set" for the string filters; pointer fields distinguish
// unset from zero for the numeric ones.
type Params struct {
	Category    string
	Ingredients []string
	Popularity  *float64
	Difficulty  string
	Search      string
	MaxPrepTime *int
	Page        int
	Limit       int
}

// Result is the paginated outcome. Total counts matches before the
// page slice is taken.
type Result struct {
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Recipes []model.Recipe `json:"recipes"`
}

// Filter applies the filters in order (category, ingredients,
// popularity, difficulty, name search, max prep time), then paginates.
// An out-of-range page yields an empty slice, not an error.
func Filter(recipes []model.Recipe, p Params) Result {
	matched := recipes

	if p.Category != "" {
		matched = keep(matched, func(r model.Recipe) bool {
			return r.Category == p.Category
		})
	}

	if len(p.Ingredients) > 0 {
		wanted := make([]string, 0, len(p.Ingredients))
		for _, ing := range p.Ingredients {
			if trimmed := strings.ToLower(strings.TrimSpace(ing)); trimmed != "" {
				wanted = append(wanted, trimmed)
			}
		}
		matched = keep(matched, func(r model.Recipe) bool {
			return hasAllIngredients(r, wanted)
		})
	}

	if p.Popularity != nil {
		matched = keep(matched, func(r model.Recipe) bool {
			return r.Popularity >= *p.Popularity
		})
	}

	if p.Difficulty != "" {
		matched = keep(matched, func(r model.Recipe) bool {
			return r.Difficulty == p.Difficulty
		})
	}

	if p.Search != "" {
		keyword := strings.ToLower(p.Search)
		matched = keep(matched, func(r model.Recipe) bool {
			return strings.Contains(strings.ToLower(r.Name), keyword)
		})
	}

	if p.MaxPrepTime != nil {
		matched = keep(matched, func(r model.Recipe) bool {
			minutes, ok := PrepMinutes(r.PrepTime)
			return ok && minutes <= *p.MaxPrepTime
		})
	}

	page, limit := p.Page, p.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	start := (page - 1) * limit
	end := page * limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Result{
		Total:   len(matched),
		Page:    page,
		Limit:   limit,
		Recipes: matched[start:end],
	}
}

// PrepMinutes parses the leading whitespace-delimited token of a
// prepTime string ("10 min" -> 10). Reports false when the token is
// not an integer; such recipes never match a max-prep-time filter.
func PrepMinutes(prepTime string) (int, bool) {
	fields := strings.Fields(prepTime)
	if len(fields) == 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return minutes, true
}

func hasAllIngredients(r model.Recipe, wanted []string) bool {
	for _, ing := range wanted {
		found := false
		for _, have := range r.Ingredients {
			if strings.Contains(strings.ToLower(have), ing) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func keep(recipes []model.Recipe, pred func(model.Recipe) bool) []model.Recipe {
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
