// Package config loads pagecheck settings from defaults, an optional YAML
// file and PAGECHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix, e.g. PAGECHECK_SERVER_ADDR.
const EnvPrefix = "PAGECHECK"

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Render RenderConfig `mapstructure:"render"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Price  PriceConfig  `mapstructure:"price"`
	Rules  RulesConfig  `mapstructure:"rules"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RateLimit       float64       `mapstructure:"rate_limit" validate:"gte=0"` // requests per second per client, 0 disables
	Burst           int           `mapstructure:"burst" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// RenderConfig holds headless browser settings
type RenderConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ChromePath     string        `mapstructure:"chrome_path"`
	UserAgent      string        `mapstructure:"user_agent"`
	ViewportWidth  int           `mapstructure:"viewport_width" validate:"gt=0"`
	ViewportHeight int           `mapstructure:"viewport_height" validate:"gt=0"`
}

// FetchConfig holds static HTML fetch settings
type FetchConfig struct {
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent   string        `mapstructure:"user_agent"`
	MaxBodySize string        `mapstructure:"max_body_size" validate:"required,bytesize"`

	// Headers are sent with every fetch (price lookups and proxied pages).
	Headers map[string]string `mapstructure:"headers"`
}

// MaxBodyBytes parses MaxBodySize ("10MB", "512KiB", ...).
func (f FetchConfig) MaxBodyBytes() (int, error) {
	n, err := humanize.ParseBytes(f.MaxBodySize)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// PriceConfig holds price extraction settings
type PriceConfig struct {
	PlatformHosts []string `mapstructure:"platform_hosts" validate:"dive,required"`
}

// RulesConfig holds rule engine settings
type RulesConfig struct {
	AddressLines []string `mapstructure:"address_lines" validate:"dive,required"`
	PositionMode string   `mapstructure:"position_mode" validate:"oneof=full vertical"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON  bool   `mapstructure:"json"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("render.timeout", "30s")
	v.SetDefault("render.chrome_path", "")
	v.SetDefault("render.user_agent", "")
	v.SetDefault("render.viewport_width", 1920)
	v.SetDefault("render.viewport_height", 1080)

	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.max_body_size", "10MB")

	v.SetDefault("price.platform_hosts", []string{"shopify", "nativepath"})

	v.SetDefault("rules.address_lines", []string{"PO Box 1208", "Boise, ID 83701"})
	v.SetDefault("rules.position_mode", "full")

	v.SetDefault("log.level", "")
	v.SetDefault("log.json", false)
}

// Configure prepares v: env binding, defaults and config file lookup. An
// empty file searches for .pagecheck.yaml in the working and home directories.
func Configure(v *viper.Viper, file string) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".pagecheck")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
}

// New returns a configured viper instance.
func New(file string) *viper.Viper {
	v := viper.New()
	Configure(v, file)
	return v
}

// Load reads the config file (a missing one is fine), decodes and validates.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("bytesize", func(fl validator.FieldLevel) bool {
		_, err := humanize.ParseBytes(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks cfg.
func Validate(cfg *Config) error {
	return validate.Struct(cfg)
}
