package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptar-app/backend/internal/model"
	"github.com/receptar-app/backend/internal/store"
)

func TestCommentsCreateSetsTimestamp(t *testing.T) {
	ctx := context.Background()
	c, err := NewComments(ctx, store.NewMemory())
	require.NoError(t, err)

	created, err := c.Create(ctx, model.Comment{UserID: "u1", RecipeID: "r1", Text: "chutné"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCommentsUpdateKeepsTimestampAndID(t *testing.T) {
	ctx := context.Background()
	c, err := NewComments(ctx, store.NewMemory())
	require.NoError(t, err)

	created, err := c.Create(ctx, model.Comment{UserID: "u1", RecipeID: "r1", Text: "chutné"})
	require.NoError(t, err)

	updated, err := c.Update(ctx, created.ID, []byte(`{"text":"výborné"}`))
	require.NoError(t, err)
	assert.Equal(t, "výborné", updated.Text)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "u1", updated.UserID)
}

func TestCommentsDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	c, err := NewComments(ctx, store.NewMemory())
	require.NoError(t, err)

	assert.ErrorIs(t, c.Delete(ctx, "missing"), ErrNotFound)
}
