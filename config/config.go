// Package config loads runtime settings with viper and builds the zap logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "LOANCALC"
	DefaultConfigName = "loancalc"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	DatabaseDriverSQLite = "sqlite"
	DatabaseDriverMemory = "memory"
)

// Configuration holds all settings for the calculator.
type Configuration struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Admin     AdminConfig     `mapstructure:"admin"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, memory
	Path   string `mapstructure:"path"`
}

type SessionsConfig struct {
	Backend       string `mapstructure:"backend"` // memory, redis
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

type AdminConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	TokenSecret  string        `mapstructure:"token_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	Issuer       string        `mapstructure:"issuer"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", DatabaseDriverSQLite)
	v.SetDefault("database.path", "loan_data.db")

	v.SetDefault("sessions.backend", SessionBackendMemory)
	v.SetDefault("sessions.redis_addr", "localhost:6379")
	v.SetDefault("sessions.redis_password", "")
	v.SetDefault("sessions.redis_db", 0)

	// Registered empty so LOANCALC_ADMIN_* variables reach Unmarshal.
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.token_secret", "")
	v.SetDefault("admin.token_ttl", time.Hour)
	v.SetDefault("admin.issuer", "loancalc")

	v.SetDefault("ratelimit.capacity", 5)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads configPath (or searches the default locations when empty),
// overlays LOANCALC_* environment variables and validates the result. A
// missing config file is not an error when configPath is empty.
func Load(v *viper.Viper, configPath string) (*Configuration, error) {
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "loancalc"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var conf Configuration
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate rejects settings the application cannot start with.
func (c *Configuration) Validate() error {
	switch c.Database.Driver {
	case DatabaseDriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case DatabaseDriverMemory:
	default:
		return fmt.Errorf("invalid database.driver: %s", c.Database.Driver)
	}

	switch c.Sessions.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.Sessions.RedisAddr == "" {
			return errors.New("sessions.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid sessions.backend: %s", c.Sessions.Backend)
	}

	if c.Admin.TokenTTL <= 0 {
		return errors.New("admin.token_ttl must be positive")
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("ratelimit.capacity and ratelimit.window must be positive")
	}
	return nil
}
