package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyValueRepository_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewKeyValueRepository(db)

	_, ok, err := repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Set(ctx, "auth_token", "old"))
	require.NoError(t, repo.Set(ctx, "auth_token", "new"))

	v, ok, err := repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "new", v)

	require.NoError(t, repo.Delete(ctx, "auth_token"))
	require.NoError(t, repo.Delete(ctx, "auth_token"))

	_, ok, err = repo.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpen_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "panel.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewKeyValueRepository(db).Set(ctx, "k", "v"))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, ok, err := NewKeyValueRepository(db).Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}
