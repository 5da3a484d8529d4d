package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DESKBOARD_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, "dashboard-layout", cfg.Storage.LayoutKey)
	require.Equal(t, 2, cfg.UI.Columns)
	require.True(t, cfg.UI.EditGate)
	require.Equal(t, time.Second, cfg.Clock.Interval)
	require.Equal(t, 10*time.Second, cfg.Weather.Interval)
	require.Equal(t, 5, cfg.Weather.MinTemp)
	require.Equal(t, 34, cfg.Weather.MaxTemp)
	require.Equal(t, "Stockholm", cfg.Weather.Location)
	require.Equal(t, 50*time.Millisecond, cfg.Drag.LeaveDebounce)
	require.Equal(t, "info", cfg.Log.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ui]
columns = 3
edit_gate = false
timezone = "UTC"

[weather]
location = "Melbourne"
interval = "2s"
`), 0o600))
	t.Setenv("DESKBOARD_STORAGE_DRIVER", "file")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.UI.Columns)
	require.False(t, cfg.UI.EditGate)
	require.Equal(t, "Melbourne", cfg.Weather.Location)
	require.Equal(t, 2*time.Second, cfg.Weather.Interval)
	require.Equal(t, "file", cfg.Storage.Driver)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DESKBOARD_STORAGE_DRIVER", "postgres")
	_, err := Load("")
	require.ErrorContains(t, err, "storage.driver")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.UI.Columns = 4
	cfg.Weather.Location = "Oslo"
	cfg.Drag.LeaveDebounce = 80 * time.Millisecond

	path := filepath.Join(t.TempDir(), "deskboard", "config.toml")
	require.NoError(t, Save(cfg, path))

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestLocationBadZone(t *testing.T) {
	cfg := Config{UI: UIConfig{Timezone: "Mars/Olympus"}}
	loc, err := cfg.Location()
	require.Error(t, err)
	require.Equal(t, time.Local, loc)
}
