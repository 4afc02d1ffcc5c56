package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/umputun/gamegraf/pkg/theme"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Client  ClientConfig  `yaml:"client" json:"client" jsonschema:"description=Feed backend client configuration"`
	UI      UIConfig      `yaml:"ui" json:"ui" jsonschema:"description=UI and theme configuration"`
	Backend BackendConfig `yaml:"backend" json:"backend" jsonschema:"description=Embedded feed backend configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// ClientConfig holds settings of the feed backend client
type ClientConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url,omitempty" jsonschema:"description=Feed backend base URL (this server when the embedded backend is enabled)"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed request timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=GameGraf/1.0,description=User agent for feed requests"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	Title             string        `yaml:"title" json:"title" jsonschema:"default=GameGraf,description=Application bar title"`
	Primary           string        `yaml:"primary" json:"primary" jsonschema:"default=#6750A4,description=Primary palette color"`
	Secondary         string        `yaml:"secondary" json:"secondary" jsonschema:"default=#625B71,description=Secondary palette color"`
	TonalOffset       *float64      `yaml:"tonal_offset" json:"tonal_offset" jsonschema:"default=0.2,minimum=0,maximum=1,description=Offset for light and dark color variants"`
	ContrastThreshold float64       `yaml:"contrast_threshold" json:"contrast_threshold" jsonschema:"default=3,minimum=1,maximum=21,description=Minimal contrast ratio for white text"`
	SanitizeSummaries bool          `yaml:"sanitize_summaries" json:"sanitize_summaries" jsonschema:"default=false,description=Apply allow-list sanitizer to news summaries"`
	SessionTTL        time.Duration `yaml:"session_ttl" json:"session_ttl" jsonschema:"default=30m,description=Lifetime of a page session"`
	MaxSessions       int           `yaml:"max_sessions" json:"max_sessions" jsonschema:"default=1000,minimum=1,description=Maximum number of live page sessions"`
}

// BackendConfig holds settings of the embedded feed backend
type BackendConfig struct {
	Enabled    bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Serve /api/news and /api/deals from this process"`
	Feeds      []string      `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feed URLs aggregated into the news feed"`
	SteamURL   string        `yaml:"steam_url" json:"steam_url" jsonschema:"description=Steam featured categories API URL"`
	EpicURL    string        `yaml:"epic_url" json:"epic_url" jsonschema:"description=Epic free games promotions API URL"`
	DealsLimit int           `yaml:"deals_limit" json:"deals_limit" jsonschema:"default=30,minimum=1,description=Maximum number of deals"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Upstream request timeout"`
	RateLimit  time.Duration `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=200ms,description=Minimal interval between upstream requests"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=4,minimum=1,description=Concurrent feed fetches"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=GameGraf/1.0,description=User agent for upstream requests"`
}

// default upstream sources
var (
	DefaultFeeds = []string{
		"https://www.goha.ru/rss/videogames",
		"https://rss.stopgame.ru/rss_all.xml",
		"https://kanobu.ru/rss",
		"https://vgtimes.ru/rss",
	}
	DefaultSteamURL = "https://store.steampowered.com/api/featuredcategories?cc=us&l=english"
	DefaultEpicURL  = "https://store-site-backend-static.ak.epicgames.com/freeGamesPromotions?locale=en-US&country=US&allowCountries=US"
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finalize(&cfg)
}

// Default returns configuration with all defaults and the embedded backend enabled,
// used when no config file is given
func Default() *Config {
	cfg := &Config{}
	cfg.Backend.Enabled = true
	setDefaults(cfg)
	return cfg
}

// finalize applies defaults and validates
func finalize(cfg *Config) (*Config, error) {
	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// client
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = 30 * time.Second
	}
	if cfg.Client.UserAgent == "" {
		cfg.Client.UserAgent = "GameGraf/1.0"
	}

	// ui
	palette := theme.DefaultPalette()
	if cfg.UI.Title == "" {
		cfg.UI.Title = "GameGraf"
	}
	if cfg.UI.Primary == "" {
		cfg.UI.Primary = palette.Primary
	}
	if cfg.UI.Secondary == "" {
		cfg.UI.Secondary = palette.Secondary
	}
	if cfg.UI.TonalOffset == nil { // explicit 0 keeps variants equal to primary
		offset := palette.TonalOffset
		cfg.UI.TonalOffset = &offset
	}
	if cfg.UI.ContrastThreshold == 0 {
		cfg.UI.ContrastThreshold = palette.ContrastThreshold
	}
	if cfg.UI.SessionTTL == 0 {
		cfg.UI.SessionTTL = 30 * time.Minute
	}
	if cfg.UI.MaxSessions == 0 {
		cfg.UI.MaxSessions = 1000
	}

	// backend
	if len(cfg.Backend.Feeds) == 0 {
		cfg.Backend.Feeds = append([]string{}, DefaultFeeds...)
	}
	if cfg.Backend.SteamURL == "" {
		cfg.Backend.SteamURL = DefaultSteamURL
	}
	if cfg.Backend.EpicURL == "" {
		cfg.Backend.EpicURL = DefaultEpicURL
	}
	if cfg.Backend.DealsLimit == 0 {
		cfg.Backend.DealsLimit = 30
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 10 * time.Second
	}
	if cfg.Backend.RateLimit == 0 {
		cfg.Backend.RateLimit = 200 * time.Millisecond
	}
	if cfg.Backend.MaxWorkers == 0 {
		cfg.Backend.MaxWorkers = 4
	}
	if cfg.Backend.UserAgent == "" {
		cfg.Backend.UserAgent = "GameGraf/1.0"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}

	// without the embedded backend the client needs somewhere to go
	if cfg.Client.BaseURL == "" && !cfg.Backend.Enabled {
		return errors.New("client.base_url is required when backend is disabled")
	}
	if cfg.Client.BaseURL != "" {
		u, err := url.Parse(cfg.Client.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("client.base_url is invalid: %q", cfg.Client.BaseURL)
		}
	}
	if cfg.Client.Timeout < 0 {
		return errors.New("client.timeout must be non-negative")
	}

	if err := cfg.Palette().Validate(); err != nil {
		return fmt.Errorf("ui palette: %w", err)
	}
	if cfg.UI.MaxSessions < 1 {
		return errors.New("ui.max_sessions must be at least 1")
	}

	if cfg.Backend.Enabled {
		if cfg.Backend.DealsLimit < 1 {
			return errors.New("backend.deals_limit must be at least 1")
		}
		if cfg.Backend.MaxWorkers < 1 {
			return errors.New("backend.max_workers must be at least 1")
		}
		for _, f := range cfg.Backend.Feeds {
			if u, err := url.Parse(f); err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("backend feed url is invalid: %q", f)
			}
		}
	}

	return nil
}

// Validate checks configuration after programmatic changes, e.g. CLI overrides
func (c *Config) Validate() error {
	if err := validate(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetUIConfig returns UI configuration
func (c *Config) GetUIConfig() UIConfig {
	return c.UI
}

// Palette returns the theme palette built from UI settings
func (c *Config) Palette() theme.Palette {
	return theme.Palette{
		Primary:           c.UI.Primary,
		Secondary:         c.UI.Secondary,
		TonalOffset:       lo.FromPtrOr(c.UI.TonalOffset, theme.DefaultPalette().TonalOffset),
		ContrastThreshold: c.UI.ContrastThreshold,
	}
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
