package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Refresh policies for the cache orchestrator. Under cache-first a stored
// batch is authoritative regardless of age; under stale-refresh a batch
// older than the freshness window triggers a refetch when online.
const (
	PolicyCacheFirst   = "cache-first"
	PolicyStaleRefresh = "stale-refresh"
)

// Source is an optional supplemental RSS/Atom feed. Items fetched from
// sources are tagged as blogs alongside the technology headlines.
type Source struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// Profile is the signed-in user as supplied by the identity provider.
type Profile struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Image string `yaml:"image,omitempty"`
}

type LogConfig struct {
	Level      string `yaml:"level,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

type Config struct {
	APIKey          string             `yaml:"api_key"`
	Country         string             `yaml:"country"`
	PageSize        int                `yaml:"page_size"`
	FreshnessWindow string             `yaml:"freshness_window"`
	RefreshPolicy   string             `yaml:"refresh_policy"`
	Retention       string             `yaml:"retention"`
	DefaultRate     float64            `yaml:"default_rate"`
	Rates           map[string]float64 `yaml:"rates,omitempty"`
	AdminEmail      string             `yaml:"admin_email"`
	Profile         Profile            `yaml:"profile"`
	Sources         []Source           `yaml:"sources,omitempty"`
	Log             LogConfig          `yaml:"log,omitempty"`
}

// ResolvedAPIKey returns the NewsAPI key from config or the environment.
func (c *Config) ResolvedAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("FACTFUSION_API_KEY")
}

func (c *Config) CountryOrDefault() string {
	if c.Country == "" {
		return "us"
	}
	return c.Country
}

func (c *Config) PageSizeOrDefault() int {
	switch {
	case c.PageSize <= 0:
		return 12
	case c.PageSize > 100:
		return 100
	default:
		return c.PageSize
	}
}

func (c *Config) FreshnessDuration() time.Duration {
	d, err := time.ParseDuration(c.FreshnessWindow)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

func (c *Config) RefreshPolicyOrDefault() string {
	if c.RefreshPolicy == "" {
		return PolicyCacheFirst
	}
	return c.RefreshPolicy
}

func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 7 * 24 * time.Hour
	}
	// Support "Nd" day syntax
	if len(c.Retention) > 1 && c.Retention[len(c.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// RateFor returns the payout rate for an author, falling back to the
// configured default (2.0 currency units when unset).
func (c *Config) RateFor(author string) float64 {
	if r, ok := c.Rates[author]; ok {
		return r
	}
	return c.DefaultRateOrDefault()
}

func (c *Config) DefaultRateOrDefault() float64 {
	if c.DefaultRate <= 0 {
		return 2.0
	}
	return c.DefaultRate
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "factfusion", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "factfusion", "factfusion.db")
}

func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "factfusion", "factfusion.log")
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

func validate(cfg *Config) error {
	switch cfg.RefreshPolicy {
	case "", PolicyCacheFirst, PolicyStaleRefresh:
	default:
		return fmt.Errorf("refresh_policy must be %q or %q, got %q", PolicyCacheFirst, PolicyStaleRefresh, cfg.RefreshPolicy)
	}

	if cfg.DefaultRate < 0 {
		return fmt.Errorf("default_rate must not be negative, got %v", cfg.DefaultRate)
	}
	for author, rate := range cfg.Rates {
		if rate < 0 {
			return fmt.Errorf("rate for %q must not be negative, got %v", author, rate)
		}
	}

	if cfg.FreshnessWindow != "" {
		if _, err := time.ParseDuration(cfg.FreshnessWindow); err != nil {
			return fmt.Errorf("invalid freshness_window: %w", err)
		}
	}

	validTypes := map[string]bool{"rss": true, "atom": true}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if !validTypes[s.Type] {
			return fmt.Errorf("source %q: unknown type %q (valid: rss, atom)", s.Name, s.Type)
		}
	}

	if cfg.AdminEmail != "" && !strings.Contains(cfg.AdminEmail, "@") {
		return fmt.Errorf("admin_email %q does not look like an email address", cfg.AdminEmail)
	}
	return nil
}
