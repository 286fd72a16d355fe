package config

import (
	"fmt"
	"os"
	"strconv"
)

// envOverrides maps environment variables to config field setters. A set
// variable both overrides the value and marks it seeded so the
// interactive prompt for it is skipped.
var envOverrides = []struct {
	envVar string
	key    string
	apply  func(*Config, string) error
}{
	{
		envVar: "NEWTBOX_HOSTNAME",
		key:    "hostname",
		apply: func(c *Config, v string) error {
			c.Hostname = v
			return nil
		},
	},
	{
		envVar: "NEWTBOX_BRIDGE",
		key:    "bridge",
		apply: func(c *Config, v string) error {
			c.Bridge = v
			return nil
		},
	},
	{
		envVar: "NEWTBOX_STORAGE",
		key:    "storage",
		apply: func(c *Config, v string) error {
			c.Storage = v
			return nil
		},
	},
	{
		envVar: "NEWTBOX_TEMPLATE_STORAGE",
		key:    "template_storage",
		apply: func(c *Config, v string) error {
			c.TemplateStorage = v
			return nil
		},
	},
	{
		envVar: "NEWTBOX_MEMORY",
		key:    "memory",
		apply: func(c *Config, v string) error {
			mb, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("NEWTBOX_MEMORY must be an integer MB value, got %q", v)
			}
			c.MemoryMB = mb
			return nil
		},
	},
	{
		envVar: "NEWTBOX_DISK",
		key:    "disk",
		apply: func(c *Config, v string) error {
			gb, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("NEWTBOX_DISK must be an integer GB value, got %q", v)
			}
			c.DiskGB = gb
			return nil
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) error {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			if err := override.apply(cfg, val); err != nil {
				return err
			}
			cfg.markSeeded(override.key)
		}
	}
	return nil
}
