package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"eventmod/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Version    int           `toml:"version"`
	View       string        `toml:"view"` // pending, all_future or other
	Service    ServiceConfig `toml:"service"`
	UISettings UISettings    `toml:"ui"`
	History    HistoryConfig `toml:"history"`
	SentryDSN  string        `toml:"sentry_dsn"`
	LogFile    string        `toml:"log_file"`
}

// ServiceConfig describes how to reach the moderation service
type ServiceConfig struct {
	BaseURL        string   `toml:"base_url"`
	CheckPath      string   `toml:"check_path"`
	CheckMethod    string   `toml:"check_method"` // GET or POST
	ActionPath     string   `toml:"action_path"`
	EventsPath     string   `toml:"events_path"`
	Token          string   `toml:"token"`
	Cookie         string   `toml:"cookie"`
	RequestTimeout Duration `toml:"request_timeout"`
	RatePerSecond  int      `toml:"rate_per_second"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	FadeDuration   Duration `toml:"fade_duration"`
	BannerDuration Duration `toml:"banner_duration"`
	ConfirmDelete  bool     `toml:"confirm_delete"`
}

// HistoryConfig controls the local action journal
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Duration is a time.Duration that reads and writes as "1.5s" in TOML
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// ViewMode returns the parsed view mode
func (c *Config) ViewMode() (domain.ViewMode, error) {
	return domain.ParseViewMode(c.View)
}

// Validate checks the values the rest of the program relies on
func (c *Config) Validate() error {
	if _, err := c.ViewMode(); err != nil {
		return err
	}
	if c.Service.BaseURL == "" {
		return errors.New("service.base_url is required")
	}
	switch strings.ToUpper(c.Service.CheckMethod) {
	case "GET", "POST":
	default:
		return fmt.Errorf("service.check_method must be GET or POST, got %q", c.Service.CheckMethod)
	}
	if c.Service.RequestTimeout.Duration <= 0 {
		return errors.New("service.request_timeout must be positive")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// Dir returns the eventmod configuration directory
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "eventmod")
}

// NewConfigService creates a config service backed by the default config file
func NewConfigService() ConfigService {
	return &configService{filePath: filepath.Join(Dir(), "config.toml")}
}

// NewConfigServiceAt creates a config service backed by path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the config file this service reads
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the
// defaults. Environment overrides are applied on top either way.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	// .env is optional
	if err := godotenv.Load(); err == nil {
		log.Printf("Config: loaded .env")
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold a token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from EVENTMOD_* variables
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str("EVENTMOD_VIEW", &cfg.View)
	str("EVENTMOD_BASE_URL", &cfg.Service.BaseURL)
	str("EVENTMOD_TOKEN", &cfg.Service.Token)
	str("EVENTMOD_COOKIE", &cfg.Service.Cookie)
	str("EVENTMOD_CHECK_METHOD", &cfg.Service.CheckMethod)
	str("EVENTMOD_SENTRY_DSN", &cfg.SentryDSN)
	str("EVENTMOD_LOG_FILE", &cfg.LogFile)
	str("EVENTMOD_HISTORY_PATH", &cfg.History.Path)

	if v, ok := lookup("EVENTMOD_REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid EVENTMOD_REQUEST_TIMEOUT: %w", err)
		}
		cfg.Service.RequestTimeout.Duration = d
	}
	if v, ok := lookup("EVENTMOD_RATE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EVENTMOD_RATE: %w", err)
		}
		cfg.Service.RatePerSecond = n
	}
	if v, ok := lookup("EVENTMOD_HISTORY"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid EVENTMOD_HISTORY: %w", err)
		}
		cfg.History.Enabled = enabled
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		View:    string(domain.ViewPending),
		Service: ServiceConfig{
			BaseURL:        "http://localhost:8080",
			CheckPath:      "/bulk_action_check",
			CheckMethod:    "POST",
			ActionPath:     "/bulk_action",
			EventsPath:     "/events.json",
			RequestTimeout: Duration{10 * time.Second},
			RatePerSecond:  10,
		},
		UISettings: UISettings{
			FadeDuration:   Duration{400 * time.Millisecond},
			BannerDuration: Duration{5 * time.Second},
			ConfirmDelete:  true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(Dir(), "history.db"),
		},
		LogFile: filepath.Join(Dir(), "eventmod.log"),
	}
}
