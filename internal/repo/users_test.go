package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/store"
)

func newUsers(t *testing.T) *Users {
	t.Helper()
	u, err := NewUsers(context.Background(), store.NewMemory())
	require.NoError(t, err)
	return u
}

func TestUsersCreateDeduplicatesFavorites(t *testing.T) {
	u := newUsers(t)

	created, err := u.Create(context.Background(), model.User{
		Name:      "Jana",
		Email:     "jana@example.com",
		Favorites: []string{"r1", "r2", "r1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, created.Favorites)
}

func TestUsersUpdateUnionsFavorites(t *testing.T) {
	u := newUsers(t)
	ctx := context.Background()

	created, err := u.Create(ctx, model.User{Name: "Jana", Email: "jana@example.com", Favorites: []string{"r1"}})
	require.NoError(t, err)

	updated, err := u.Update(ctx, created.ID, []byte(`{"favorites":["r2","r1","r3"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, updated.Favorites)
	assert.Equal(t, "Jana", updated.Name)
}

func TestUsersUpdateRollbackPreservesFavorites(t *testing.T) {
	ctx := context.Background()
	st := &failingStore{Store: store.NewMemory()}
	u, err := NewUsers(ctx, st)
	require.NoError(t, err)

	created, err := u.Create(ctx, model.User{Name: "Jana", Email: "jana@example.com", Favorites: []string{"r1"}})
	require.NoError(t, err)

	st.fail = true
	_, err = u.Update(ctx, created.ID, []byte(`{"favorites":["r2"]}`))
	require.Error(t, err)

	got, err := u.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, got.Favorites)
}

func TestUsersUpdateShallowMergeRetainsEmail(t *testing.T) {
	u := newUsers(t)
	ctx := context.Background()

	created, err := u.Create(ctx, model.User{Name: "Jana", Email: "jana@example.com"})
	require.NoError(t, err)

	updated, err := u.Update(ctx, created.ID, []byte(`{"name":"Jana Nová"}`))
	require.NoError(t, err)
	assert.Equal(t, "Jana Nová", updated.Name)
	assert.Equal(t, "jana@example.com", updated.Email)
}

func TestUsersStripFavorite(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	u, err := NewUsers(ctx, st)
	require.NoError(t, err)

	first, err := u.Create(ctx, model.User{Name: "Jana", Email: "jana@example.com", Favorites: []string{"r1", "r2"}})
	require.NoError(t, err)
	second, err := u.Create(ctx, model.User{Name: "Peter", Email: "peter@example.com", Favorites: []string{"r2"}})
	require.NoError(t, err)

	require.NoError(t, u.StripFavorite(ctx, "r2"))

	got, err := u.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, got.Favorites)

	got, err = u.Get(second.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Favorites)

	// no-op when nothing references the id
	require.NoError(t, u.StripFavorite(ctx, "r2"))
}

func TestUsersDeleteNotFound(t *testing.T) {
	u := newUsers(t)
	assert.ErrorIs(t, u.Delete(context.Background(), "missing"), ErrNotFound)
}
