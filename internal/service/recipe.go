package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/query"
	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/schema"
)

const (
	statsCacheKey = "receptar:stats:recipes"
	statsCacheTTL = 30 * time.Second
)

// Stats summarizes the recipe collection.
type Stats struct {
	TotalRecipes      int            `json:"totalRecipes"`
	ByCategory        map[string]int `json:"byCategory"`
	AveragePopularity float64        `json:"averagePopularity"`
}

// RecipeService handles recipe operations, including the rating and
// favorites aggregation that spans the user collection.
type RecipeService struct {
	recipes *repo.Recipes
	users   *repo.Users
	cache   *redis.Client // nil disables stats caching
	log     logrus.FieldLogger
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(recipes *repo.Recipes, users *repo.Users, cache *redis.Client, log logrus.FieldLogger) *RecipeService {
	return &RecipeService{recipes: recipes, users: users, cache: cache, log: log}
}

// Create validates the payload against the full recipe schema and
// stores a new recipe under a generated id.
func (s *RecipeService) Create(ctx context.Context, payload []byte) (model.Recipe, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return model.Recipe{}, invalidPayload()
	}
	if errs := schema.Recipe.Validate(fields); len(errs) > 0 {
		return model.Recipe{}, &ValidationError{Errors: errs}
	}

	var recipe model.Recipe
	if err := json.Unmarshal(payload, &recipe); err != nil {
		return model.Recipe{}, invalidPayload()
	}

	created, err := s.recipes.Create(ctx, recipe)
	if err != nil {
		return model.Recipe{}, err
	}
	s.invalidateStats(ctx)
	return created, nil
}

// List returns all recipes.
func (s *RecipeService) List() []model.Recipe {
	return s.recipes.List()
}

// Get returns one recipe by id.
func (s *RecipeService) Get(id string) (model.Recipe, error) {
	return s.recipes.Get(id)
}

// Update validates the payload against the partial recipe schema and
// shallow-merges it over the stored recipe.
func (s *RecipeService) Update(ctx context.Context, id string, payload []byte) (model.Recipe, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return model.Recipe{}, invalidPayload()
	}
	if errs := schema.RecipePartial.Validate(fields); len(errs) > 0 {
		return model.Recipe{}, &ValidationError{Errors: errs}
	}

	updated, err := s.recipes.Update(ctx, id, payload)
	if err != nil {
		return model.Recipe{}, err
	}
	s.invalidateStats(ctx)
	return updated, nil
}

// Delete removes the recipe and cascades: the id is stripped from
// every user's favorites. The two saves are sequential, not
// transactional; if the second fails the first has already taken
// effect.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.users.StripFavorite(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// Filter applies the query filters and paginates.
func (s *RecipeService) Filter(p query.Params) query.Result {
	return query.Filter(s.recipes.List(), p)
}

// Rate appends a rating and recomputes popularity as the mean of all
// ratings rounded to 2 decimals. The range check runs before the
// recipe lookup: an out-of-range rating reports invalid_rating even
// when the recipe does not exist.
func (s *RecipeService) Rate(ctx context.Context, recipeID, userID string, rating float64) (model.Recipe, error) {
	if rating < 0 || rating > 5 {
		return model.Recipe{}, ErrInvalidRating
	}

	recipe, err := s.recipes.Get(recipeID)
	if err != nil {
		return model.Recipe{}, ErrRecipeNotFound
	}

	ratings := make([]model.Rating, 0, len(recipe.Ratings)+1)
	ratings = append(ratings, recipe.Ratings...)
	ratings = append(ratings, model.Rating{UserID: userID, Rating: rating})

	sum := 0.0
	for _, r := range ratings {
		sum += r.Rating
	}
	recipe.Ratings = ratings
	recipe.Popularity = round2(sum / float64(len(ratings)))

	if err := s.recipes.Replace(ctx, recipe); err != nil {
		return model.Recipe{}, err
	}
	s.invalidateStats(ctx)
	return recipe, nil
}

// AddFavorite inserts the recipe id into the user's favorites set.
// Idempotent: a second call with the same pair persists nothing.
func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID string) error {
	user, err := s.users.Get(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if _, err := s.recipes.Get(recipeID); err != nil {
		return ErrRecipeNotFound
	}
	if user.HasFavorite(recipeID) {
		return nil
	}
	user.Favorites = append(user.Favorites, recipeID)
	return s.users.Replace(ctx, user)
}

// ListFavorites returns the recipes in the user's favorites set.
func (s *RecipeService) ListFavorites(userID string) ([]model.Recipe, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	favorites := make([]model.Recipe, 0, len(user.Favorites))
	for _, recipe := range s.recipes.List() {
		if user.HasFavorite(recipe.ID) {
			favorites = append(favorites, recipe)
		}
	}
	return favorites, nil
}

// GetStats summarizes the collection, serving from the Redis cache
// when available. Cache failures are logged and ignored.
func (s *RecipeService) GetStats(ctx context.Context) Stats {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats Stats
			if json.Unmarshal(cached, &stats) == nil {
				return stats
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Warn("stats cache read failed")
		}
	}

	stats := s.computeStats()

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
				s.log.WithError(err).Warn("stats cache write failed")
			}
		}
	}
	return stats
}

func (s *RecipeService) computeStats() Stats {
	recipes := s.recipes.List()
	stats := Stats{
		TotalRecipes: len(recipes),
		ByCategory:   make(map[string]int),
	}
	sum := 0.0
	for _, r := range recipes {
		stats.ByCategory[r.Category]++
		sum += r.Popularity
	}
	if len(recipes) > 0 {
		stats.AveragePopularity = round2(sum / float64(len(recipes)))
	}
	return stats
}

func (s *RecipeService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.log.WithError(err).Warn("stats cache invalidation failed")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
