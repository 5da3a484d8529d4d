package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/deskboard/internal/database"
	"github.com/jask/deskboard/internal/database/repository"
	"github.com/jask/deskboard/internal/layout"
)

func openTestDB(t *testing.T) *repository.KVRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	// a second run is a no-op
	require.NoError(t, database.RunMigrations(dbPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewKVRepo(db)
}

func TestKVRepoCRUD(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	repo := openTestDB(t)

	_, ok, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Set(ctx, "a", "1"))
	require.NoError(t, repo.Set(ctx, "a", "2"))
	require.NoError(t, repo.Set(ctx, "b", "x"))

	v, ok, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", v)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a", entries[0].Key)
	require.False(t, entries[0].UpdatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, "a"))
	_, ok, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKVRepoBacksLayoutStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := openTestDB(t)

	store := layout.Load(ctx, repo, "dashboard-layout", nil)
	require.True(t, store.Layout().Equal(layout.Default()))

	moved, ok := layout.Move(store.Layout(), "widget-3", "widget-1", layout.SideLeft)
	require.True(t, ok)
	require.NoError(t, store.Replace(ctx, moved))

	reloaded := layout.Load(ctx, repo, "dashboard-layout", nil)
	require.Equal(t, []string{"widget-3", "widget-1", "widget-2", "widget-4"}, reloaded.Layout().IDs())

	require.NoError(t, repo.Set(ctx, "dashboard-layout", "[{broken"))
	require.True(t, layout.Load(ctx, repo, "dashboard-layout", nil).Layout().Equal(layout.Default()))
}
