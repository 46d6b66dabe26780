package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.IsDefault())
	assert.True(t, cfg.GetHeadless())
	assert.False(t, cfg.GetFullPage())
	assert.Equal(t, "test result: ", cfg.DoneMarker)
}

func TestFindAndLoadConfig_NoFile(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsDefault())
}

func TestFindAndLoadConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	content := `{"browser": "firefox", "headless": false, "timeout": 5000}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".browsertest.json"), []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "firefox", cfg.Browser)
	assert.False(t, cfg.GetHeadless())
	assert.Equal(t, 5000, cfg.Timeout)
	assert.Equal(t, "test result: ", cfg.DoneMarker, "unset fields keep defaults")
}

func TestFindAndLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	content := "browser: webkit\nscreenshotRoot: out\nfullPage: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".browsertest.yml"), []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "webkit", cfg.Browser)
	assert.Equal(t, "out", cfg.ScreenshotRoot)
	assert.True(t, cfg.GetFullPage())
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()

	t.Run("nil other", func(t *testing.T) {
		assert.Same(t, base, base.Merge(nil))
	})

	t.Run("other takes precedence", func(t *testing.T) {
		merged := base.Merge(&Config{
			Browser:  "firefox",
			Timeout:  1000,
			Headless: BoolPtr(false),
		})
		assert.Equal(t, "firefox", merged.Browser)
		assert.Equal(t, 1000, merged.Timeout)
		assert.False(t, merged.GetHeadless())
		assert.Equal(t, base.DoneMarker, merged.DoneMarker)
		assert.Equal(t, "chromium", base.Browser, "base is not modified")
	})

	t.Run("unset bools do not override", func(t *testing.T) {
		withNoColor := base.Merge(&Config{NoColor: BoolPtr(true)})
		merged := withNoColor.Merge(&Config{Browser: "webkit"})
		assert.True(t, merged.GetNoColor())
	})

	t.Run("port zero overrides default", func(t *testing.T) {
		assert.Equal(t, 8000, base.GetPort())

		merged := base.Merge(&Config{Port: IntPtr(0)})
		assert.Equal(t, 0, merged.GetPort())

		assert.Equal(t, 0, merged.Merge(&Config{Browser: "webkit"}).GetPort(), "unset port does not override")
	})
}

func TestFindAndLoadConfig_PortZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".browsertest.yml"), []byte("port: 0\n"), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.GetPort())
	assert.False(t, cfg.IsDefault())
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig().Merge(&Config{Browser: "firefox", Verbose: BoolPtr(true)})

	for _, name := range []string{"browsertest.json", ".browsertest.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.SaveConfig(path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "firefox", loaded.Browser, name)
		assert.True(t, loaded.GetVerbose(), name)
	}
}
