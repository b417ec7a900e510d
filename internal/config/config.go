// Package config holds the application configuration, loaded through viper
// with layered precedence: defaults, config file, environment, CLI flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the root of the application configuration tree.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Browser     BrowserConfig     `mapstructure:"browser" yaml:"browser"`
	Navigation  NavigationConfig  `mapstructure:"navigation" yaml:"navigation"`
	Obstacle    ObstacleConfig    `mapstructure:"obstacle" yaml:"obstacle"`
	Discovery   DiscoveryConfig   `mapstructure:"discovery" yaml:"discovery"`
	Screenshots ScreenshotsConfig `mapstructure:"screenshots" yaml:"screenshots"`
}

// LoggerConfig controls structured logging output and rotation.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	// LogFile enables file output with rotation; empty means stderr only.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// BrowserConfig controls the headless Chrome process.
type BrowserConfig struct {
	Headless        bool     `mapstructure:"headless" yaml:"headless"`
	UserAgent       string   `mapstructure:"user_agent" yaml:"user_agent"`
	Args            []string `mapstructure:"args" yaml:"args"`
	IgnoreTLSErrors bool     `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	// BlockAssets enables request interception that drops image, media and
	// font loads. The engine only reads DOM structure, so the savings are
	// free.
	BlockAssets    bool          `mapstructure:"block_assets" yaml:"block_assets"`
	StartupTimeout time.Duration `mapstructure:"startup_timeout" yaml:"startup_timeout"`
	WindowWidth    int           `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight   int           `mapstructure:"window_height" yaml:"window_height"`
}

// NavigationConfig tunes the fallback ladder timing.
type NavigationConfig struct {
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Settle            time.Duration `mapstructure:"settle" yaml:"settle"`
	ProbeContactPaths bool          `mapstructure:"probe_contact_paths" yaml:"probe_contact_paths"`
	ContactPaths      []string      `mapstructure:"contact_paths" yaml:"contact_paths"`
}

// ObstacleConfig tunes overlay dismissal probing.
type ObstacleConfig struct {
	AccessibleProbe time.Duration `mapstructure:"accessible_probe" yaml:"accessible_probe"`
	SelectorProbe   time.Duration `mapstructure:"selector_probe" yaml:"selector_probe"`
	Settle          time.Duration `mapstructure:"settle" yaml:"settle"`
}

// DiscoveryConfig tunes form candidate discovery.
type DiscoveryConfig struct {
	MinFields  int           `mapstructure:"min_fields" yaml:"min_fields"`
	Attempts   int           `mapstructure:"attempts" yaml:"attempts"`
	RetryDelay time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
}

// ScreenshotsConfig controls where captures land.
type ScreenshotsConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// SetDefaults initializes default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "formpilot")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("browser.ignore_tls_errors", true)
	v.SetDefault("browser.block_assets", true)
	v.SetDefault("browser.startup_timeout", "30s")
	v.SetDefault("browser.window_width", 1366)
	v.SetDefault("browser.window_height", 900)

	// -- Navigation --
	v.SetDefault("navigation.timeout", "60s")
	v.SetDefault("navigation.settle", "7s")
	v.SetDefault("navigation.probe_contact_paths", true)
	v.SetDefault("navigation.contact_paths", []string{"/contact", "/contact-us"})

	// -- Obstacle --
	v.SetDefault("obstacle.accessible_probe", "1500ms")
	v.SetDefault("obstacle.selector_probe", "500ms")
	v.SetDefault("obstacle.settle", "400ms")

	// -- Discovery --
	v.SetDefault("discovery.min_fields", 3)
	v.SetDefault("discovery.attempts", 3)
	v.SetDefault("discovery.retry_delay", "2s")

	// -- Screenshots --
	v.SetDefault("screenshots.dir", "screenshots")
}

// NewDefaultConfig returns a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults only.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper unmarshals and validates the layered configuration.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be \"console\" or \"json\", got %q", c.Logger.Format)
	}
	if c.Navigation.Timeout <= 0 {
		return fmt.Errorf("navigation.timeout must be positive")
	}
	if c.Navigation.Settle < 0 {
		return fmt.Errorf("navigation.settle must not be negative")
	}
	if c.Discovery.MinFields < 1 {
		return fmt.Errorf("discovery.min_fields must be at least 1")
	}
	if c.Discovery.Attempts < 1 {
		return fmt.Errorf("discovery.attempts must be at least 1")
	}
	if c.Browser.StartupTimeout <= 0 {
		return fmt.Errorf("browser.startup_timeout must be positive")
	}
	if c.Screenshots.Dir == "" {
		return fmt.Errorf("screenshots.dir must be configured")
	}
	return nil
}
