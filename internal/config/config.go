package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all settings for an export run (CLI flags + config file).
type Config struct {
	URL       string `yaml:"url"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	SaveYAML  bool   `yaml:"save_yaml"`
	Directory string `yaml:"directory"`
	Debug     bool   `yaml:"debug"`
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &c, nil
}

// Merge overlays values from a config file. Flags that were set explicitly
// on the command line take precedence; changed reports whether the named
// flag was.
func (c *Config) Merge(file *Config, changed func(name string) bool) {
	if !changed("zabbix-url") && file.URL != "" {
		c.URL = file.URL
	}
	if !changed("zabbix-username") && file.Username != "" {
		c.Username = file.Username
	}
	if !changed("zabbix-password") && file.Password != "" {
		c.Password = file.Password
	}
	if !changed("save-yaml") && file.SaveYAML {
		c.SaveYAML = true
	}
	if !changed("directory") && file.Directory != "" {
		c.Directory = file.Directory
	}
	if !changed("debug") && file.Debug {
		c.Debug = true
	}
}

// Validate checks that the settings required to reach the server are present.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("zabbix-url is required")
	}
	if c.Username == "" {
		return fmt.Errorf("zabbix-username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("zabbix-password is required")
	}
	return nil
}
