package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseName is the fixed logical database the API stores its data in.
const DatabaseName = "comp3123_assignment1"

// Connection modes for the database gateway.
const (
	ConnectEager = "eager"
	ConnectLazy  = "lazy"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DatabaseURL      string        `mapstructure:"DATABASE_URL" validate:"required"`
	DBConnectMode    string        `mapstructure:"DB_CONNECT_MODE" validate:"required,oneof=eager lazy"`
	DBConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT" validate:"required"`

	PasswordHasher string   `mapstructure:"PASSWORD_HASHER" validate:"required,oneof=sha256 bcrypt"`
	AllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var keys = []string{
	"APP_ENV",
	"HTTP_ADDR",
	"SHUTDOWN_TIMEOUT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"DATABASE_URL",
	"DB_CONNECT_MODE",
	"DB_CONNECT_TIMEOUT",
	"PASSWORD_HASHER",
	"CORS_ALLOWED_ORIGINS",
}

// LoadEnv loads environment variables from .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
}

// Load reads the configuration from the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_CONNECT_MODE", ConnectEager)
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("PASSWORD_HASHER", "sha256")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	c := Config{
		AppEnv:         v.GetString("APP_ENV"),
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBConnectMode:  strings.ToLower(v.GetString("DB_CONNECT_MODE")),
		PasswordHasher: strings.ToLower(v.GetString("PASSWORD_HASHER")),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if c.ShutdownTimeout, err = time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if c.DBConnectTimeout, err = time.ParseDuration(v.GetString("DB_CONNECT_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

// AllowAllOrigins reports whether CORS is open to any origin.
func (c *Config) AllowAllOrigins() bool {
	return len(c.AllowedOrigins) == 0 || (len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
