// Package config loads the CLI settings from an optional .env file, an optional
// YAML file and LUMINOX_* environment variables, in increasing order of priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "LUMINOX"

type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	DBPath         string        `mapstructure:"db_path"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	Workers        int           `mapstructure:"workers"`
	PushgatewayURL string        `mapstructure:"pushgateway_url"`
}

var httpScheme = regexp.MustCompile(`^https?://`)

// DefaultDBPath is where tokens are kept unless LUMINOX_DB_PATH says otherwise.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".luminox", "luminox.db")
}

// Load reads the configuration. path names an optional YAML file; when it is
// given it must exist and parse.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to read config file")
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetDefault("api_url", "http://127.0.0.1:8000")
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 1)
	v.SetDefault("workers", 4)
	v.SetDefault("pushgateway_url", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug().Str("api_url", cfg.APIURL).Str("db_path", cfg.DBPath).Dur("timeout", cfg.RequestTimeout).Msg("Configuration loaded")
	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIURL, validation.Required, is.URL, validation.Match(httpScheme).Error("must start with http:// or https://")),
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.RateLimitRPS, validation.Min(0.0)),
		validation.Field(&c.RateLimitBurst, validation.Required, validation.Min(1)),
		validation.Field(&c.Workers, validation.Required, validation.Min(1), validation.Max(20)),
		validation.Field(&c.PushgatewayURL, is.URL, validation.Match(httpScheme).Error("must start with http:// or https://")),
	)
}
