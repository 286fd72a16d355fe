package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where host-wide configuration lives. The file is
// optional; defaults cover a stock Proxmox install.
const DefaultPath = "/etc/newtbox/config.yaml"

// Config holds every tunable of the provisioning procedure. The resource
// shape is deliberately not exposed as CLI flags: the procedure itself
// stays non-configurable at invocation time, matching the original tool.
type Config struct {
	// Hostname is the default container hostname offered at the prompt.
	Hostname string `yaml:"hostname"`

	// Resource shape for the created container.
	Cores    int `yaml:"cores"`
	MemoryMB int `yaml:"memory_mb"`
	SwapMB   int `yaml:"swap_mb"`
	DiskGB   int `yaml:"disk_gb"`

	// TemplatePattern selects the OS template from the catalog; the last
	// (latest) matching entry wins.
	TemplatePattern string `yaml:"template_pattern"`

	// TemplateSection is the pveam catalog section to search.
	TemplateSection string `yaml:"template_section"`

	// DefaultBridge is used when bridge discovery finds nothing.
	DefaultBridge string `yaml:"default_bridge"`

	// Network readiness probe. The timing is fixed: one packet per
	// attempt, one second timeout, one second between attempts.
	ProbeHost     string        `yaml:"probe_host"`
	ProbeAttempts int           `yaml:"probe_attempts"`
	ProbeTimeout  time.Duration `yaml:"-"`
	ProbeInterval time.Duration `yaml:"-"`

	// SettleDelay is the fixed wait after container start before probing.
	SettleDelay time.Duration `yaml:"-"`

	// InstallerURL is the opaque remote bootstrap script. Its content is
	// not verified; it is an external collaborator.
	InstallerURL string `yaml:"installer_url"`

	// Values pre-seeded from the environment; a seeded value skips its
	// interactive prompt.
	Storage         string `yaml:"-"`
	TemplateStorage string `yaml:"-"`
	Bridge          string `yaml:"-"`

	seeded map[string]bool
}

// Default returns a Config with defaults for a stock Proxmox host.
func Default() *Config {
	return &Config{
		Hostname:        "newt",
		Cores:           1,
		MemoryMB:        512,
		SwapMB:          0,
		DiskGB:          8,
		TemplatePattern: "debian-12-standard",
		TemplateSection: "system",
		DefaultBridge:   "vmbr0",
		ProbeHost:       "1.1.1.1",
		ProbeAttempts:   30,
		ProbeTimeout:    time.Second,
		ProbeInterval:   time.Second,
		SettleDelay:     5 * time.Second,
		InstallerURL:    "https://digpangolin.com/get-newt.sh",
	}
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist, then applies environment overrides and validates.
// An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads configuration from a specific path. A missing file
// yields defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every value the procedure depends on is usable.
func (c *Config) Validate() error {
	if c.Hostname == "" {
		return fmt.Errorf("hostname must not be empty")
	}
	if c.Cores < 1 {
		return fmt.Errorf("cores must be at least 1, got %d", c.Cores)
	}
	if c.MemoryMB < 16 {
		return fmt.Errorf("memory_mb must be at least 16, got %d", c.MemoryMB)
	}
	if c.SwapMB < 0 {
		return fmt.Errorf("swap_mb must not be negative, got %d", c.SwapMB)
	}
	if c.DiskGB < 1 {
		return fmt.Errorf("disk_gb must be at least 1, got %d", c.DiskGB)
	}
	if c.TemplatePattern == "" {
		return fmt.Errorf("template_pattern must not be empty")
	}
	if c.ProbeAttempts < 1 {
		return fmt.Errorf("probe_attempts must be at least 1, got %d", c.ProbeAttempts)
	}
	if c.InstallerURL == "" {
		return fmt.Errorf("installer_url must not be empty")
	}
	return nil
}

// Seeded reports whether key was pre-seeded from the environment, which
// skips the corresponding interactive prompt.
func (c *Config) Seeded(key string) bool {
	return c.seeded[key]
}

func (c *Config) markSeeded(key string) {
	if c.seeded == nil {
		c.seeded = make(map[string]bool)
	}
	c.seeded[key] = true
}
