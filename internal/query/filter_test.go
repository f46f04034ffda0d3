package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptar-app/backend/internal/model"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func sampleRecipes() []model.Recipe {
	return []model.Recipe{
		{ID: "r1", Name: "Kuracia polievka", Category: "Polievky", Difficulty: "Jednoduchá",
			Ingredients: []string{"Kura", "Mrkva"}, PrepTime: "90 min", Popularity: 4.5},
		{ID: "r2", Name: "Bryndzové halušky", Category: "Hlavné jedlá", Difficulty: "Stredná",
			Ingredients: []string{"Zemiaky", "Bryndza"}, PrepTime: "45 min", Popularity: 4.8},
		{ID: "r3", Name: "Zemiaková polievka", Category: "Polievky", Difficulty: "Jednoduchá",
			Ingredients: []string{"Zemiaky", "Majorán"}, PrepTime: "40 min", Popularity: 3.2},
		{ID: "r4", Name: "Šúľance", Category: "Dezerty", Difficulty: "Stredná",
			Ingredients: []string{"Zemiaky", "Mak"}, PrepTime: "asi hodinu", Popularity: 0},
	}
}

func ids(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestFilterNoParamsReturnsAll(t *testing.T) {
	res := Filter(sampleRecipes(), Params{})
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)
	assert.Len(t, res.Recipes, 4)
}

func TestFilterByCategory(t *testing.T) {
	res := Filter(sampleRecipes(), Params{Category: "Polievky"})
	assert.Equal(t, []string{"r1", "r3"}, ids(res.Recipes))
}

func TestFilterByIngredientsAllMustMatch(t *testing.T) {
	// case-insensitive substring match against each recipe ingredient
	res := Filter(sampleRecipes(), Params{Ingredients: []string{" zemiak ", "MAK"}})
	assert.Equal(t, []string{"r4"}, ids(res.Recipes))

	res = Filter(sampleRecipes(), Params{Ingredients: []string{"zemiak"}})
	assert.Equal(t, []string{"r2", "r3", "r4"}, ids(res.Recipes))
}

func TestFilterByMinimumPopularity(t *testing.T) {
	res := Filter(sampleRecipes(), Params{Popularity: fptr(4.5)})
	assert.Equal(t, []string{"r1", "r2"}, ids(res.Recipes))
}

func TestFilterByDifficulty(t *testing.T) {
	res := Filter(sampleRecipes(), Params{Difficulty: "Stredná"})
	assert.Equal(t, []string{"r2", "r4"}, ids(res.Recipes))
}

func TestFilterBySearchKeyword(t *testing.T) {
	res := Filter(sampleRecipes(), Params{Search: "POLIEVKA"})
	assert.Equal(t, []string{"r1", "r3"}, ids(res.Recipes))
}

func TestFilterByMaxPrepTime(t *testing.T) {
	// r4's prepTime has no leading integer and never matches
	res := Filter(sampleRecipes(), Params{MaxPrepTime: iptr(45)})
	assert.Equal(t, []string{"r2", "r3"}, ids(res.Recipes))
}

func TestFilterConjunction(t *testing.T) {
	res := Filter(sampleRecipes(), Params{Category: "Polievky", MaxPrepTime: iptr(60)})
	assert.Equal(t, []string{"r3"}, ids(res.Recipes))
}

func TestPaginationBoundaries(t *testing.T) {
	recipes := make([]model.Recipe, 0, 25)
	for i := 0; i < 25; i++ {
		recipes = append(recipes, model.Recipe{ID: fmt.Sprintf("r%02d", i), Name: "Recept"})
	}

	res := Filter(recipes, Params{Page: 1, Limit: 10})
	assert.Equal(t, 25, res.Total)
	require.Len(t, res.Recipes, 10)
	assert.Equal(t, "r00", res.Recipes[0].ID)

	res = Filter(recipes, Params{Page: 3, Limit: 10})
	require.Len(t, res.Recipes, 5)
	assert.Equal(t, "r20", res.Recipes[0].ID)

	// out-of-range page yields an empty slice, not an error
	res = Filter(recipes, Params{Page: 4, Limit: 10})
	assert.Equal(t, 25, res.Total)
	assert.Empty(t, res.Recipes)
}

func TestPaginationDefaults(t *testing.T) {
	res := Filter(sampleRecipes(), Params{Page: 0, Limit: 0})
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)
}

func TestPrepMinutes(t *testing.T) {
	minutes, ok := PrepMinutes("10 min")
	assert.True(t, ok)
	assert.Equal(t, 10, minutes)

	_, ok = PrepMinutes("asi hodinu")
	assert.False(t, ok)

	_, ok = PrepMinutes("")
	assert.False(t, ok)
}
