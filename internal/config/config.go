package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	Addr      string   `yaml:"addr"`
	BaseURL   string   `yaml:"base_url"`
	SiteTitle string   `yaml:"site_title"`
	StaticDir string   `yaml:"static_dir,omitempty"`
	APIKey    string   `yaml:"api_key,omitempty"`
	Models    []string `yaml:"models"`
}

// Key returns the resolved upstream API key: config value first, then the
// GEMINI_API_KEY environment variable. Empty means generation is disabled
// but the server still runs.
func (c *Config) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "the-briefing", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// applyDefaults fills unset fields from the embedded defaults so a partial
// user config stays valid.
func applyDefaults(cfg, defaults *Config) {
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = defaults.SiteTitle
	}
	if len(cfg.Models) == 0 {
		cfg.Models = defaults.Models
	}
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme)
	}
	if len(cfg.Models) == 0 {
		return fmt.Errorf("at least one model is required")
	}
	for i, m := range cfg.Models {
		if m == "" {
			return fmt.Errorf("model %d: name is empty", i)
		}
	}
	return nil
}
