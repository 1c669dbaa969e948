package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/algoscope/pkg/playback"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "algoscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, playback.DefaultSpeeds(), cfg.Speeds)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg, err := Load(write(t, `
log_level: debug
speeds:
  - {label: slow, delay: 2s}
  - {label: fast, delay: 50ms}
default_speed: fast
server:
  port: 9090
redis:
  addr: localhost:6379
  ttl: 1h
  prefix: "lab:"
workspaces:
  dir: ./ws
scenarios:
  dir: ./scenarios
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []playback.Speed{{Label: "slow", Delay: 2 * time.Second}, {Label: "fast", Delay: 50 * time.Millisecond}}, cfg.Speeds)
	assert.Equal(t, "fast", cfg.DefaultSpeed)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "lab:", cfg.Redis.Prefix)
	assert.Equal(t, "./ws", cfg.Workspaces.Dir)
	assert.Equal(t, "./scenarios", cfg.Scenarios.Dir)
}

func TestLoad_PartialKeepsSpeedMenu(t *testing.T) {
	cfg, err := Load(write(t, "default_speed: 2x\n"))
	require.NoError(t, err)
	assert.Equal(t, "2x", cfg.DefaultSpeed)
	assert.Len(t, cfg.Speeds, 5)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "speeds: ["},
		{"unknown default speed", "default_speed: 9x\n"},
		{"duplicate label", "speeds: [{label: a, delay: 1s}, {label: a, delay: 2s}]\ndefault_speed: a\n"},
		{"negative delay", "speeds: [{label: a, delay: -1s}]\ndefault_speed: a\n"},
		{"bad level", "log_level: loud\n"},
		{"bad port", "server: {port: 70000}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestPlaybackOptions(t *testing.T) {
	cfg := Default()
	cfg.DefaultSpeed = "3x"
	d := playback.New(cfg.PlaybackOptions()...)
	assert.Equal(t, "3x", d.Speed().Label)
}
