package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/deskboard/internal/layout"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.Equal(t, path, s.Path())

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "other", "v2"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))
	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = s.Get(ctx, "dashboard-layout")
	require.Error(t, err)
	require.True(t, layout.Load(ctx, s, "dashboard-layout", nil).Layout().Equal(layout.Default()))

	require.NoError(t, s.Set(ctx, "dashboard-layout", "[]"))
	v, ok, err := s.Get(ctx, "dashboard-layout")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", v)
}
