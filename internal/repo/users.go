package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/store"
)

// Users is the user repository.
type Users struct {
	mu    sync.Mutex
	store store.Store
	items []model.User
}

// NewUsers loads the user collection from the store.
func NewUsers(ctx context.Context, st store.Store) (*Users, error) {
	docs, err := st.Load(ctx, store.Users)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.User](docs)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return &Users{store: st, items: items}, nil
}

// List returns a copy of the collection.
func (u *Users) List() []model.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]model.User, len(u.items))
	copy(out, u.items)
	return out
}

// Get returns the user with the given id.
func (u *Users) Get(id string) (model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.items {
		if u.items[i].ID == id {
			return u.items[i], nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// Create assigns a fresh id, deduplicates favorites, appends and
// persists.
func (u *Users) Create(ctx context.Context, user model.User) (model.User, error) {
	user.ID = uuid.NewString()
	user.Favorites = dedupe(user.Favorites)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.items = append(u.items, user)
	if err := u.persist(ctx); err != nil {
		u.items = u.items[:len(u.items)-1]
		return model.User{}, err
	}
	return user, nil
}

// Update shallow-merges the patch over the stored user. Favorites are
// the exception to plain overwrite semantics: ids supplied in the
// patch are unioned into the existing set, never replacing it.
func (u *Users) Update(ctx context.Context, id string, patch []byte) (model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.items {
		if u.items[i].ID != id {
			continue
		}
		existing := append([]string(nil), u.items[i].Favorites...)

		merged, err := merge(u.items[i], patch)
		if err != nil {
			return model.User{}, err
		}
		merged.ID = id

		var probe struct {
			Favorites []string `json:"favorites"`
		}
		if err := json.Unmarshal(patch, &probe); err == nil && probe.Favorites != nil {
			merged.Favorites = dedupe(append(existing, probe.Favorites...))
		}

		previous := u.items[i]
		u.items[i] = merged
		if err := u.persist(ctx); err != nil {
			u.items[i] = previous
			return model.User{}, err
		}
		return merged, nil
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// Replace swaps the stored user for the given one and persists.
func (u *Users) Replace(ctx context.Context, user model.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.items {
		if u.items[i].ID != user.ID {
			continue
		}
		previous := u.items[i]
		u.items[i] = user
		if err := u.persist(ctx); err != nil {
			u.items[i] = previous
			return err
		}
		return nil
	}
	return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
}

// Delete removes the user and persists.
func (u *Users) Delete(ctx context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.items {
		if u.items[i].ID != id {
			continue
		}
		previous := u.items
		u.items = append(append([]model.User{}, u.items[:i]...), u.items[i+1:]...)
		if err := u.persist(ctx); err != nil {
			u.items = previous
			return err
		}
		return nil
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// StripFavorite removes the recipe id from every user's favorites,
// persisting only when something actually changed. Called when a
// recipe is deleted.
func (u *Users) StripFavorite(ctx context.Context, recipeID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	changed := false
	previous := make([]model.User, len(u.items))
	copy(previous, u.items)

	for i := range u.items {
		kept := u.items[i].Favorites[:0:0]
		for _, id := range u.items[i].Favorites {
			if id != recipeID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(u.items[i].Favorites) {
			u.items[i].Favorites = kept
			changed = true
		}
	}

	if !changed {
		return nil
	}
	if err := u.persist(ctx); err != nil {
		u.items = previous
		return err
	}
	return nil
}

func (u *Users) persist(ctx context.Context) error {
	docs, err := encodeAll(u.items)
	if err != nil {
		return err
	}
	return u.store.Save(ctx, store.Users, docs)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
