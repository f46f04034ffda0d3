package model

// User owns a favorites set of recipe ids, kept insertion-ordered and
// deduplicated.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Favorites []string `json:"favorites"`
}

// HasFavorite reports whether the recipe id is already in the set.
func (u *User) HasFavorite(recipeID string) bool {
	for _, id := range u.Favorites {
		if id == recipeID {
			return true
		}
	}
	return false
}
