package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// EnvPrefix is prepended to every environment variable, e.g. EXAMTT_DB_PATH
const EnvPrefix = "EXAMTT"

type Config struct {
	Env string `validate:"oneof=development production"`

	// DBPath is the SQLite file; empty means ~/.examtt/examtt.db
	DBPath string

	// Session is the default session code when none is active
	Session string

	// Timezone is the IANA zone exam dates and times are published in
	Timezone string `validate:"required,timezone"`

	Log    LogConfig
	Data   DataConfig
	Server ServerConfig
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// DataConfig controls where timetables are fetched from.
type DataConfig struct {
	IndexURL         string
	HTTPTimeout      time.Duration `validate:"gt=0"`
	MaxResponseBytes int64         `validate:"gt=0"`
}

// ServerConfig configures `examtt serve`.
type ServerConfig struct {
	Addr string `validate:"required"`
}

// Load reads configuration from the environment and an optional .env file
func Load() (*Config, error) {
	// .env values land in the process environment; real env vars win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		Env:      v.GetString("ENV"),
		DBPath:   v.GetString("DB_PATH"),
		Session:  v.GetString("SESSION"),
		Timezone: v.GetString("TIMEZONE"),
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
		Format: strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	cfg.Data = DataConfig{
		IndexURL:         v.GetString("INDEX_URL"),
		HTTPTimeout:      parseDuration(v.GetString("HTTP_TIMEOUT"), 30*time.Second),
		MaxResponseBytes: v.GetInt64("MAX_RESPONSE_BYTES"),
	}

	cfg.Server = ServerConfig{
		Addr: v.GetString("SERVER_ADDR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location loads Timezone, falling back to UTC if it does not load
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("DB_PATH", "")
	v.SetDefault("SESSION", "")
	v.SetDefault("TIMEZONE", "America/Toronto")

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("INDEX_URL", "")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("MAX_RESPONSE_BYTES", 32*1024*1024)

	v.SetDefault("SERVER_ADDR", "127.0.0.1:8080")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
