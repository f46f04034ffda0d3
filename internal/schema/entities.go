package schema

import "github.com/receptar-app/backend/internal/model"

func ptr(f float64) *float64 { return &f }

// Recipe is the full write schema for recipe creation.
var Recipe = &Schema{
	Name: "recipe",
	Fields: map[string]Rule{
		"name":        {Type: String, MinLength: 3},
		"category":    {Type: String, Enum: model.Categories},
		"ingredients": {Type: StringArray, MinItems: 1},
		"steps":       {Type: StringArray, MinItems: 1},
		"prepTime":    {Type: String},
		"difficulty":  {Type: String, Enum: model.Difficulties},
		"popularity":  {Type: Number, Min: ptr(0), Max: ptr(5)},
		"image":       {Type: String},
	},
	Required: []string{"name", "category", "ingredients", "steps", "prepTime", "difficulty"},
}

// User is the full write schema for user creation.
var User = &Schema{
	Name: "user",
	Fields: map[string]Rule{
		"name":      {Type: String, MinLength: 3},
		"email":     {Type: String, Format: "email"},
		"favorites": {Type: StringArray},
	},
	Required: []string{"name", "email"},
}

// Comment is the full write schema for comment creation.
var Comment = &Schema{
	Name: "comment",
	Fields: map[string]Rule{
		"userId":   {Type: String, MinLength: 1},
		"recipeId": {Type: String, MinLength: 1},
		"text":     {Type: String, MinLength: 1},
	},
	Required: []string{"userId", "recipeId", "text"},
}

// Partial variants keep per-field constraints for shallow-merge updates.
var (
	RecipePartial  = Recipe.Partial()
	UserPartial    = User.Partial()
	CommentPartial = Comment.Partial()
)
