package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/hookspec/packages/logging"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "chrome", cfg.Driver)
	assert.Equal(t, HostPlatform(), cfg.Platform)
	assert.Equal(t, []string{"console"}, cfg.Reporters)
	assert.False(t, cfg.GetParallel())
	assert.False(t, cfg.GetResetRetries())
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestGetBoolDefaults(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.GetParallel())
	assert.False(t, cfg.GetBail())
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetNoColor())

	cfg.Bail = BoolPtr(true)
	assert.True(t, cfg.GetBail())
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Driver, cfg.Driver)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		content := `{"driver": "ie11", "platform": "windows", "parallel": true, "log": {"level": "debug"}}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hookspec.config.json"), []byte(content), 0644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "ie11", cfg.Driver)
		assert.Equal(t, "windows", cfg.Platform)
		assert.True(t, cfg.GetParallel())
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hookspecrc"), []byte("{"), 0644))
		_, err := FindAndLoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "hookspec.config.json"), []byte(`{"reporters": ["pdf"]}`), 0644))
		_, err := FindAndLoadConfig(dir)
		assert.ErrorContains(t, err, "unknown reporter")
	})
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{
		Driver:      "safari",
		Concurrency: 8,
		Bail:        BoolPtr(true),
		Log:         &logging.Config{Output: logging.OutputFile, FilePath: "hookspec.log"},
	}

	merged := base.Merge(other)
	assert.Equal(t, "safari", merged.Driver)
	assert.Equal(t, base.Platform, merged.Platform)
	assert.Equal(t, 8, merged.Concurrency)
	assert.True(t, merged.GetBail())
	assert.False(t, merged.GetParallel())
	assert.Equal(t, "warn", merged.Log.Level)
	assert.Equal(t, logging.OutputFile, merged.Log.Output)
	assert.Equal(t, "hookspec.log", merged.Log.FilePath)

	// The receiver is not modified.
	assert.Equal(t, "chrome", base.Driver)
	assert.Equal(t, logging.OutputConsole, base.Log.Output)

	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hookspec.config.json")
	cfg := DefaultConfig()
	cfg.RemoteURL = "http://grid:4444"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://grid:4444", loaded.RemoteURL)
}
