package model

import "time"

// Comment references a user and a recipe. CreatedAt is assigned by the
// server at creation time.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RecipeID  string    `json:"recipeId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
