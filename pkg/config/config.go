package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/utils"
	"github.com/spf13/viper"
)

// Config holds the client settings.
type Config struct {
	BaseURL        string         `mapstructure:"base_url"`
	Timeout        time.Duration  `mapstructure:"timeout"`
	MaxConcurrency int            `mapstructure:"max_concurrency"`
	LogLevel       string         `mapstructure:"log_level"`
	LogFile        string         `mapstructure:"log_file"`
	LibraryPath    string         `mapstructure:"library_path"`
	ExportDir      string         `mapstructure:"export_dir"`
	PageSizes      map[string]int `mapstructure:"page_sizes"`
}

// HomeDir is where holocron keeps its config, log and library.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".holocron"
	}
	return filepath.Join(home, ".holocron")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	home := HomeDir()
	sizes := make(map[string]int, len(data.Kinds))
	for _, k := range data.Kinds {
		sizes[string(k)] = k.PerPage()
	}
	exportDir := "."
	if userHome, err := os.UserHomeDir(); err == nil {
		exportDir = filepath.Join(userHome, "Downloads")
	}
	return &Config{
		BaseURL:        utils.DefaultBaseURL,
		Timeout:        30 * time.Second,
		MaxConcurrency: 8,
		LogLevel:       "warn",
		LogFile:        filepath.Join(home, "holocron.log"),
		LibraryPath:    filepath.Join(home, "library.db"),
		ExportDir:      exportDir,
		PageSizes:      sizes,
	}
}

// Load reads configuration from path, or from ~/.holocron/config.yaml when
// path is empty. A missing file yields the defaults. HOLOCRON_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	return load(viper.New(), path)
}

// LoadWith is Load using an existing viper instance, so callers can bind flags.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	def := DefaultConfig()
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("max_concurrency", def.MaxConcurrency)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("library_path", def.LibraryPath)
	v.SetDefault("export_dir", def.ExportDir)
	for k, n := range def.PageSizes {
		v.SetDefault("page_sizes."+k, n)
	}

	v.SetEnvPrefix("holocron")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(HomeDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PageSize returns the configured items per page for kind, falling back to
// the kind's default.
func (c *Config) PageSize(kind data.Kind) int {
	if n, ok := c.PageSizes[string(kind)]; ok && n > 0 {
		return n
	}
	return kind.PerPage()
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return &ConfigError{Field: "base_url", Message: "cannot be empty"}
	}
	if c.Timeout < 0 {
		return &ConfigError{Field: "timeout", Message: "cannot be negative"}
	}
	for k, n := range c.PageSizes {
		if !data.Kind(k).Valid() {
			return &ConfigError{Field: "page_sizes." + k, Message: "unknown resource kind"}
		}
		if n <= 0 {
			return &ConfigError{Field: "page_sizes." + k, Message: "must be positive"}
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
