package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/deskboard/internal/config"
	"github.com/jask/deskboard/internal/layout"
	"github.com/jask/deskboard/internal/prefs"
)

func writeConfig(t *testing.T, driver string) (cfgPath, storePath string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "config.toml")
	storePath = filepath.Join(dir, "store")
	body := fmt.Sprintf(`[storage]
driver = %q
path = %q

[log]
path = %q
level = "debug"
`, driver, storePath, filepath.Join(dir, "deskboard.log"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))
	return cfgPath, storePath
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestLayoutCommandsWithFileStorage(t *testing.T) {
	cfgPath, storePath := writeConfig(t, "file")

	out := run(t, "--config", cfgPath, "layout", "show")
	require.Contains(t, out, `"widget-1"`)
	require.Contains(t, out, `"weather"`)

	run(t, "--config", cfgPath, "layout", "reset")
	fs, err := prefs.NewFileStore(storePath)
	require.NoError(t, err)
	raw, ok, err := fs.Get(context.Background(), "dashboard-layout")
	require.NoError(t, err)
	require.True(t, ok)
	l, err := layout.Decode(raw)
	require.NoError(t, err)
	require.True(t, layout.Default().Equal(l))

	run(t, "--config", cfgPath, "layout", "clear")
	_, ok, err = fs.Get(context.Background(), "dashboard-layout")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLayoutShowWithSQLite(t *testing.T) {
	cfgPath, _ := writeConfig(t, "sqlite")

	run(t, "--config", cfgPath, "layout", "reset")
	out := run(t, "--config", cfgPath, "layout", "show")
	require.Contains(t, out, "Welcome to your dashboard!")
}

func TestConfigInitWritesLoadableFile(t *testing.T) {
	cfgPath, storePath := writeConfig(t, "memory")

	out := run(t, "--config", cfgPath, "config", "init")
	require.Contains(t, out, cfgPath)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, storePath, cfg.Storage.Path)
	require.Equal(t, 2, cfg.UI.Columns)
}

func TestUnknownDriverFails(t *testing.T) {
	cfgPath, _ := writeConfig(t, "redis")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "layout", "show"})
	require.ErrorContains(t, cmd.Execute(), "storage.driver")
}

func TestStoreListShowsLayoutSlot(t *testing.T) {
	cfgPath, _ := writeConfig(t, "sqlite")

	run(t, "--config", cfgPath, "layout", "reset")
	out := run(t, "--config", cfgPath, "store", "list")
	require.Contains(t, out, "dashboard-layout\t")
	require.Contains(t, out, "bytes")
}

func TestStoreListNeedsSQLite(t *testing.T) {
	cfgPath, _ := writeConfig(t, "file")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "store", "list"})
	require.ErrorContains(t, cmd.Execute(), "cannot list entries")
}

func TestLayoutShowWarnsAboutUnknownTypes(t *testing.T) {
	cfgPath, storePath := writeConfig(t, "file")
	fs, err := prefs.NewFileStore(storePath)
	require.NoError(t, err)
	raw, err := layout.Encode(layout.Layout{
		{ID: "widget-1", Type: layout.TypeClock},
		{ID: "widget-2", Type: "clok"},
	})
	require.NoError(t, err)
	require.NoError(t, fs.Set(context.Background(), "dashboard-layout", raw))

	out := run(t, "--config", cfgPath, "layout", "show")
	require.Contains(t, out, `widget-2 has unknown type "clok"`)
	require.Contains(t, out, `did you mean "clock"`)
	require.NotContains(t, out, "widget-1 has unknown type")
}
