package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "newt", cfg.Hostname)
	assert.Equal(t, 1, cfg.Cores)
	assert.Equal(t, 512, cfg.MemoryMB)
	assert.Equal(t, 0, cfg.SwapMB)
	assert.Equal(t, 8, cfg.DiskGB)
	assert.Equal(t, "debian-12-standard", cfg.TemplatePattern)
	assert.Equal(t, "vmbr0", cfg.DefaultBridge)
	assert.Equal(t, 30, cfg.ProbeAttempts)
	assert.Equal(t, time.Second, cfg.ProbeInterval)
	assert.Equal(t, 5*time.Second, cfg.SettleDelay)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Hostname, cfg.Hostname)
}

func TestLoadFromPath_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
hostname: tunnel
memory_mb: 1024
template_pattern: debian-13-standard
probe_host: 9.9.9.9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "tunnel", cfg.Hostname)
	assert.Equal(t, 1024, cfg.MemoryMB)
	assert.Equal(t, "debian-13-standard", cfg.TemplatePattern)
	assert.Equal(t, "9.9.9.9", cfg.ProbeHost)
	// Untouched fields keep defaults.
	assert.Equal(t, 8, cfg.DiskGB)
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hostname: [unclosed"), 0o644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NEWTBOX_HOSTNAME", "edge-01")
	t.Setenv("NEWTBOX_BRIDGE", "vmbr2")
	t.Setenv("NEWTBOX_STORAGE", "tank")
	t.Setenv("NEWTBOX_MEMORY", "2048")
	t.Setenv("NEWTBOX_DISK", "16")

	cfg := Default()
	require.NoError(t, applyEnvOverrides(cfg))

	assert.Equal(t, "edge-01", cfg.Hostname)
	assert.Equal(t, "vmbr2", cfg.Bridge)
	assert.Equal(t, "tank", cfg.Storage)
	assert.Equal(t, 2048, cfg.MemoryMB)
	assert.Equal(t, 16, cfg.DiskGB)

	assert.True(t, cfg.Seeded("hostname"))
	assert.True(t, cfg.Seeded("bridge"))
	assert.True(t, cfg.Seeded("storage"))
	assert.False(t, cfg.Seeded("template_storage"))
}

func TestApplyEnvOverrides_InvalidInteger(t *testing.T) {
	t.Setenv("NEWTBOX_MEMORY", "lots")

	cfg := Default()
	err := applyEnvOverrides(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEWTBOX_MEMORY")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty hostname", func(c *Config) { c.Hostname = "" }},
		{"zero cores", func(c *Config) { c.Cores = 0 }},
		{"tiny memory", func(c *Config) { c.MemoryMB = 8 }},
		{"negative swap", func(c *Config) { c.SwapMB = -1 }},
		{"zero disk", func(c *Config) { c.DiskGB = 0 }},
		{"empty pattern", func(c *Config) { c.TemplatePattern = "" }},
		{"zero attempts", func(c *Config) { c.ProbeAttempts = 0 }},
		{"empty installer url", func(c *Config) { c.InstallerURL = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
