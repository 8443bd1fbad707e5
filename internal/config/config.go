package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"expense-tracker-api/internal/auth"
)

// DevOrigin is the CORS origin used in development environments.
const DevOrigin = "http://localhost:5173"

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret    string `mapstructure:"secret"`
	ExpiresIn string `mapstructure:"expires_in"`
}

type CORSConfig struct {
	Origin string `mapstructure:"origin"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"env":             "APP_ENV",
	"server.port":     "PORT",
	"database.driver": "DB_DRIVER",
	"database.dsn":    "DB_PATH",
	"jwt.secret":      "JWT_SECRET",
	"jwt.expires_in":  "JWT_EXPIRES_IN",
	"cors.origin":     "CORS_ORIGIN",
	"log.level":       "LOG_LEVEL",
	"log.format":      "LOG_FORMAT",
}

// Load reads configuration from path (YAML) and the environment.
// An empty path means environment and defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("env", "development")
	v.SetDefault("server.port", 3001)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "expenses.db")
	v.SetDefault("jwt.expires_in", "7d")
	v.SetDefault("cors.origin", DevOrigin)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("missing required setting jwt.secret (JWT_SECRET)")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if _, err := auth.ParseTTL(c.JWT.ExpiresIn); err != nil {
		return err
	}
	return nil
}

// TokenTTL returns the parsed jwt.expires_in.
func (c *Config) TokenTTL() time.Duration {
	d, err := auth.ParseTTL(c.JWT.ExpiresIn)
	if err != nil {
		return auth.DefaultTokenTTL
	}
	return d
}

// IsDev reports whether the deployment environment is a development one.
func (c *Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development":
		return true
	}
	return false
}

// AllowedOrigin is the value of Access-Control-Allow-Origin.
func (c *Config) AllowedOrigin() string {
	if c.IsDev() {
		return DevOrigin
	}
	return c.CORS.Origin
}
