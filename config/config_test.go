package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, NewDefaultConfig().Validate())
}

func TestLoadOverridesDefaultsAndExpandsEnv(t *testing.T) {
	t.Setenv("SONG_DIR", "/tmp/songs")
	path := writeConfig(t, "log_level: debug\ncodec:\n  timebase: 960\nwatch:\n  dir: ${SONG_DIR}\n  debounce: 2s\n")

	cfg := NewDefaultConfig()
	require.NoError(t, Load(path, cfg))

	assert := assert.New(t)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal(960, cfg.Codec.Timebase)
	assert.Equal("output.mid", cfg.Codec.Output)
	assert.Equal("/tmp/songs", cfg.Watch.Dir)
	assert.Equal(2*time.Second, cfg.Watch.Debounce)
	assert.Equal(8080, cfg.Server.Port)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"timebase":  "codec:\n  timebase: 40000\n",
		"port":      "server:\n  port: 70000\n",
		"log level": "log_level: loud\n",
		"debounce":  "watch:\n  debounce: -1s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			assert.Error(t, Load(writeConfig(t, body), cfg))
		})
	}
}

func TestLoadOptional(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, LoadOptional("", cfg))
	require.NoError(t, LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), cfg))
	assert.Equal(t, 480, cfg.Codec.Timebase)

	require.NoError(t, LoadOptional(writeConfig(t, "codec:\n  timebase: 96\n"), cfg))
	assert.Equal(t, 96, cfg.Codec.Timebase)
}

func TestServerAddress(t *testing.T) {
	c := ServerConfig{Port: 9000}
	assert.Equal(t, ":9000", c.Address())
}
