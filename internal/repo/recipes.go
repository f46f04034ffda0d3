package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/store"
)

// Recipes is the recipe repository.
type Recipes struct {
	mu    sync.Mutex
	store store.Store
	items []model.Recipe
}

// NewRecipes loads the recipe collection from the store.
func NewRecipes(ctx context.Context, st store.Store) (*Recipes, error) {
	docs, err := st.Load(ctx, store.Recipes)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.Recipe](docs)
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	return &Recipes{store: st, items: items}, nil
}

// List returns a copy of the collection.
func (r *Recipes) List() []model.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Recipe, len(r.items))
	copy(out, r.items)
	return out
}

// Get returns the recipe with the given id.
func (r *Recipes) Get(id string) (model.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			return r.items[i], nil
		}
	}
	return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
}

// Create assigns a fresh id, appends and persists.
func (r *Recipes) Create(ctx context.Context, recipe model.Recipe) (model.Recipe, error) {
	recipe.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, recipe)
	if err := r.persist(ctx); err != nil {
		r.items = r.items[:len(r.items)-1]
		return model.Recipe{}, err
	}
	return recipe, nil
}

// Update shallow-merges the patch over the stored recipe and persists.
func (r *Recipes) Update(ctx context.Context, id string, patch []byte) (model.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		merged, err := merge(r.items[i], patch)
		if err != nil {
			return model.Recipe{}, err
		}
		merged.ID = id
		previous := r.items[i]
		r.items[i] = merged
		if err := r.persist(ctx); err != nil {
			r.items[i] = previous
			return model.Recipe{}, err
		}
		return merged, nil
	}
	return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
}

// Replace swaps the stored recipe for the given one and persists. Used
// by the rating aggregator, which recomputes derived fields itself.
func (r *Recipes) Replace(ctx context.Context, recipe model.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID != recipe.ID {
			continue
		}
		previous := r.items[i]
		r.items[i] = recipe
		if err := r.persist(ctx); err != nil {
			r.items[i] = previous
			return err
		}
		return nil
	}
	return fmt.Errorf("recipe %s: %w", recipe.ID, ErrNotFound)
}

// Delete removes the recipe and persists.
func (r *Recipes) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		previous := r.items
		r.items = append(append([]model.Recipe{}, r.items[:i]...), r.items[i+1:]...)
		if err := r.persist(ctx); err != nil {
			r.items = previous
			return err
		}
		return nil
	}
	return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
}

func (r *Recipes) persist(ctx context.Context) error {
	docs, err := encodeAll(r.items)
	if err != nil {
		return err
	}
	return r.store.Save(ctx, store.Recipes, docs)
}
