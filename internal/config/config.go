package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Feed    FeedConfig    `yaml:"feed,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

type FeedConfig struct {
	Source            string  `yaml:"source,omitempty"`
	List              string  `yaml:"list,omitempty"`
	Limit             int     `yaml:"limit,omitempty"`
	APIBaseURL        string  `yaml:"api_base_url,omitempty"`
	RSSURL            string  `yaml:"rss_url,omitempty"`
	Timeout           string  `yaml:"timeout,omitempty"`
	Concurrency       int     `yaml:"concurrency,omitempty"`
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
	CacheMaxAge       string  `yaml:"cache_max_age,omitempty"`
}

type StorageConfig struct {
	Backend string `yaml:"backend,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

type UIConfig struct {
	DarkMode    bool   `yaml:"dark_mode,omitempty"`
	StarredSort string `yaml:"starred_sort,omitempty"`
	ExportDir   string `yaml:"export_dir,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

const (
	SourceAPI = "api"
	SourceRSS = "rss"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	SortNewest = "newest"
	SortOldest = "oldest"
)

// GetTimeout parses the feed timeout string
func (f *FeedConfig) GetTimeout() (time.Duration, error) {
	return time.ParseDuration(f.Timeout)
}

// GetCacheMaxAge parses the cache max age string
func (f *FeedConfig) GetCacheMaxAge() (time.Duration, error) {
	return time.ParseDuration(f.CacheMaxAge)
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Feed.Source == "" {
		c.Feed.Source = SourceAPI
	}
	if c.Feed.List == "" {
		c.Feed.List = "top"
	}
	if c.Feed.Limit == 0 {
		c.Feed.Limit = 50
	}
	if c.Feed.APIBaseURL == "" {
		c.Feed.APIBaseURL = "https://hacker-news.firebaseio.com/v0"
	}
	if c.Feed.RSSURL == "" {
		c.Feed.RSSURL = "https://hnrss.org/frontpage"
	}
	if c.Feed.Timeout == "" {
		c.Feed.Timeout = "10s"
	}
	if c.Feed.Concurrency == 0 {
		c.Feed.Concurrency = 8
	}
	if c.Feed.RequestsPerSecond == 0 {
		c.Feed.RequestsPerSecond = 20
	}
	if c.Feed.CacheMaxAge == "" {
		c.Feed.CacheMaxAge = "24h"
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendSQLite
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Backend)
	}
	c.Storage.Path = expandPath(c.Storage.Path)

	if c.UI.StarredSort == "" {
		c.UI.StarredSort = SortNewest
	}
	if c.UI.ExportDir == "" {
		c.UI.ExportDir = "."
	}
	c.UI.ExportDir = expandPath(c.UI.ExportDir)

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.File == "" {
		c.Logging.File = filepath.Join(stateDir(), "hackerfeed.log")
	}
	c.Logging.File = expandPath(c.Logging.File)
}

// applyEnvOverrides lets HACKERFEED_* variables win over the file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HACKERFEED_FEED_SOURCE"); v != "" {
		c.Feed.Source = v
	}
	if v := os.Getenv("HACKERFEED_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
		if os.Getenv("HACKERFEED_STORAGE_PATH") == "" {
			c.Storage.Path = ""
		}
	}
	if v := os.Getenv("HACKERFEED_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("HACKERFEED_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks enumerated fields and durations
func (c *Config) Validate() error {
	switch c.Feed.Source {
	case SourceAPI, SourceRSS:
	default:
		return fmt.Errorf("%w: feed.source %q (want api or rss)", ErrInvalid, c.Feed.Source)
	}
	switch c.Feed.List {
	case "top", "new", "best", "ask", "show":
	default:
		return fmt.Errorf("%w: feed.list %q", ErrInvalid, c.Feed.List)
	}
	if c.Feed.Limit < 0 {
		return fmt.Errorf("%w: feed.limit must not be negative", ErrInvalid)
	}
	if _, err := c.Feed.GetTimeout(); err != nil {
		return fmt.Errorf("%w: feed.timeout: %w", ErrInvalid, err)
	}
	if _, err := c.Feed.GetCacheMaxAge(); err != nil {
		return fmt.Errorf("%w: feed.cache_max_age: %w", ErrInvalid, err)
	}
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("%w: storage.backend %q (want sqlite, file or memory)", ErrInvalid, c.Storage.Backend)
	}
	switch c.UI.StarredSort {
	case SortNewest, SortOldest:
	default:
		return fmt.Errorf("%w: ui.starred_sort %q", ErrInvalid, c.UI.StarredSort)
	}
	return nil
}

// SaveUI writes the theme and starred order into the file at path. Every
// other setting is kept as the file has it, without environment overrides
// or defaults.
func SaveUI(path string, ui UIConfig) error {
	var raw Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	}

	raw.UI.DarkMode = ui.DarkMode
	raw.UI.StarredSort = ui.StarredSort
	return Save(&raw, path)
}

// Save writes configuration to file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "hackerfeed", "config.yaml")
}

func defaultStoragePath(backend string) string {
	switch backend {
	case BackendFile:
		return filepath.Join(stateDir(), "starred.json")
	case BackendMemory:
		return ""
	}
	return filepath.Join(stateDir(), "hackerfeed.db")
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "hackerfeed")
}
