package model

// Recipe categories and difficulties are fixed enums; the schema package
// rejects anything outside of them.
var (
	Categories   = []string{"Polievky", "Hlavné jedlá", "Dezerty"}
	Difficulties = []string{"Jednoduchá", "Stredná", "Ťažká"}
)

// Rating is a single user's rating of a recipe.
type Rating struct {
	UserID string  `json:"userId"`
	Rating float64 `json:"rating"`
}

// Recipe is the central entity. Popularity is derived: once ratings
// exist it is the arithmetic mean of all ratings rounded to 2 decimals.
// PrepTime is free text; only its leading integer token is interpreted,
// and only when filtering by maximum preparation time.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepTime    string   `json:"prepTime"`
	Difficulty  string   `json:"difficulty"`
	Popularity  float64  `json:"popularity"`
	Image       string   `json:"image,omitempty"`
	Ratings     []Rating `json:"ratings,omitempty"`
}
