// Package config loads runtime settings from defaults, an optional config
// file and UTILITY_HELPER_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Neruzzz/utility-helper/internal/calendar"
)

const EnvPrefix = "UTILITY_HELPER"

type Config struct {
	HTTP      HTTP      `mapstructure:"http"`
	OTel      OTel      `mapstructure:"otel"`
	Mongo     Mongo     `mapstructure:"mongo"`
	OpenAI    OpenAI    `mapstructure:"openai"`
	Functions Functions `mapstructure:"functions"`
}

type HTTP struct {
	Addr string `mapstructure:"addr"`
}

type OTel struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// Mongo locates the user directory. An empty URI means no database: every
// user is then served the default time zone.
type Mongo struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type OpenAI struct {
	Model string `mapstructure:"model"`
}

type Functions struct {
	Mode                 string `mapstructure:"mode"`
	LegacyWeekdayShift   bool   `mapstructure:"legacy_weekday_shift"`
	DefaultTimezone      string `mapstructure:"default_timezone"`
	DefaultOffsetSeconds int    `mapstructure:"default_offset_seconds"`
}

// New returns a viper instance with defaults and env binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "localhost:4317")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "utility_helper")
	v.SetDefault("mongo.collection", "users")
	v.SetDefault("openai.model", "")
	v.SetDefault("functions.mode", calendar.Lenient.String())
	v.SetDefault("functions.legacy_weekday_shift", true)
	v.SetDefault("functions.default_timezone", "UTC")
	v.SetDefault("functions.default_offset_seconds", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (if not empty) on top of v and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr must not be empty")
	}
	switch strings.ToLower(strings.TrimSpace(c.Functions.Mode)) {
	case calendar.Lenient.String(), calendar.Strict.String():
	default:
		return fmt.Errorf("functions.mode must be %q or %q, got %q", calendar.Lenient, calendar.Strict, c.Functions.Mode)
	}
	if c.Mongo.URI != "" && (c.Mongo.Database == "" || c.Mongo.Collection == "") {
		return errors.New("mongo.database and mongo.collection are required with mongo.uri")
	}
	return nil
}

func (c Config) Mode() calendar.Mode {
	return calendar.ParseMode(c.Functions.Mode)
}
