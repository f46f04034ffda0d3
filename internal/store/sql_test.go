package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *SQL {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	st, err := NewSQL(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLLoadMissingSnapshot(t *testing.T) {
	st := newSQLiteStore(t)

	docs, err := st.Load(context.Background(), Recipes)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSQLRoundTripPreservesOrder(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	docs := []json.RawMessage{
		json.RawMessage(`{"id":"z","name":"last alphabetically, first inserted"}`),
		json.RawMessage(`{"id":"a","name":"first alphabetically, second inserted"}`),
	}
	require.NoError(t, st.Save(ctx, Recipes, docs))

	loaded, err := st.Load(ctx, Recipes)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.JSONEq(t, string(docs[0]), string(loaded[0]))
	assert.JSONEq(t, string(docs[1]), string(loaded[1]))
}

func TestSQLSaveReplacesSnapshot(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, Users, []json.RawMessage{
		json.RawMessage(`{"id":"a"}`),
		json.RawMessage(`{"id":"b"}`),
	}))
	require.NoError(t, st.Save(ctx, Users, []json.RawMessage{}))

	docs, err := st.Load(ctx, Users)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSQLCollectionsAreIndependent(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, Recipes, []json.RawMessage{json.RawMessage(`{"id":"r"}`)}))
	require.NoError(t, st.Save(ctx, Users, []json.RawMessage{json.RawMessage(`{"id":"u"}`)}))
	require.NoError(t, st.Save(ctx, Recipes, []json.RawMessage{}))

	users, err := st.Load(ctx, Users)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
