package layout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const testKey = "dashboard-layout"

type failingStorage struct {
	*MemoryStorage
	getErr error
	setErr error
}

func (f failingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryStorage.Get(ctx, key)
}

func (f failingStorage) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStorage.Set(ctx, key, value)
}

func TestLoadFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	cases := map[string]func(*MemoryStorage){
		"absent":     func(*MemoryStorage) {},
		"garbage":    func(m *MemoryStorage) { _ = m.Set(ctx, testKey, "{not json") },
		"null":       func(m *MemoryStorage) { _ = m.Set(ctx, testKey, "null") },
		"wrong kind": func(m *MemoryStorage) { _ = m.Set(ctx, testKey, `{"id":"x"}`) },
	}
	for name, seed := range cases {
		t.Run(name, func(t *testing.T) {
			mem := NewMemoryStorage()
			seed(mem)
			s := Load(ctx, mem, testKey, nil)
			require.True(t, s.Layout().Equal(Default()))
		})
	}

	s := Load(ctx, failingStorage{MemoryStorage: NewMemoryStorage(), getErr: errors.New("disk gone")}, testKey, nil)
	require.True(t, s.Layout().Equal(Default()))
}

func TestReplaceRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	s := Load(ctx, mem, testKey, nil)

	next, ok := Move(s.Layout(), "widget-1", "widget-4", SideRight)
	require.True(t, ok)
	require.NoError(t, s.Replace(ctx, next))

	reloaded := Load(ctx, mem, testKey, nil)
	require.Equal(t, next, reloaded.Layout())
	require.Equal(t, []string{"widget-2", "widget-3", "widget-4", "widget-1"}, reloaded.Layout().IDs())
	require.Equal(t, Default()[3].Text, reloaded.Layout()[2].Text)
}

func TestUnknownTypeSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	require.NoError(t, mem.Set(ctx, testKey, `[{"id":"widget-9","type":"foo"},{"id":"widget-2","type":"clock"}]`))

	s := Load(ctx, mem, testKey, nil)
	require.Equal(t, Type("foo"), s.Layout()[0].Type)
	require.NoError(t, s.Replace(ctx, s.Layout()))

	raw, ok, err := mem.Get(ctx, testKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"widget-9","type":"foo"},{"id":"widget-2","type":"clock"}]`, raw)
}

func TestResetRestoresDefault(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStorage()
	s := Load(ctx, mem, testKey, nil)

	moved, _ := Move(s.Layout(), "widget-4", "widget-1", SideLeft)
	require.NoError(t, s.Replace(ctx, moved))
	require.False(t, s.Layout().Equal(Default()))

	require.NoError(t, s.Reset(ctx))
	require.True(t, s.Layout().Equal(Default()))
	require.True(t, Load(ctx, mem, testKey, nil).Layout().Equal(Default()))
}

func TestLayoutReturnsCopy(t *testing.T) {
	s := Load(context.Background(), NewMemoryStorage(), testKey, nil)
	l := s.Layout()
	l[0].ID = "patched"
	require.Equal(t, "widget-1", s.Layout()[0].ID)
}

func TestReplaceKeepsValueWhenWriteFails(t *testing.T) {
	ctx := context.Background()
	store := failingStorage{MemoryStorage: NewMemoryStorage(), setErr: errors.New("read-only")}
	s := Load(ctx, store, testKey, nil)

	moved, _ := Move(s.Layout(), "widget-1", "widget-2", SideRight)
	err := s.Replace(ctx, moved)
	require.ErrorContains(t, err, "read-only")
	require.Equal(t, moved, s.Layout())
}
