// Package config loads application configuration the way the teacher does:
// viper reading environment variables (optionally APP_-prefixed) and an
// optional config file, unmarshaled into a typed struct. The persistence
// (Postgres), cache (Redis), and auth (JWT) blocks the teacher carried are
// dropped — this system is entirely in-memory and has no authentication
// beyond connection-id ownership (spec.md Non-goals) — and a Session block
// takes their place to carry the question-authoring bounds the Submission
// Parser enforces.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig
	Session SessionConfig
}

// ServerConfig is the HTTP server configuration.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// SessionConfig carries the bounds the Submission Parser (internal/parser)
// enforces on question authoring, per spec.md §4.1. They default to the
// spec's own numbers but are overridable, e.g. for a faster test/demo mode.
type SessionConfig struct {
	MinTimeLimit   int `mapstructure:"min_time_limit"`
	MaxTimeLimit   int `mapstructure:"max_time_limit"`
	MinTotalPoints int `mapstructure:"min_total_points"`
	MaxTotalPoints int `mapstructure:"max_total_points"`
	MinChoices     int `mapstructure:"min_choices"`
	MaxChoices     int `mapstructure:"max_choices"`
	MinAnswers     int `mapstructure:"min_answers"`
	MaxAnswers     int `mapstructure:"max_answers"`
}

// LoadConfig loads configuration from, in order of precedence: environment
// variables (with or without the APP_ prefix), then a config file named by
// APP_CONFIG_FILE, then the defaults below.
func LoadConfig() (*Config, error) {
	config := &Config{}
	v := viper.New()

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVariables(v)
	setDefaults(v)

	if configFile := getConfigFile(); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("Warning: unable to read config file: %v", err)
		} else {
			log.Printf("Using config file: %s", v.ConfigFileUsed())
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return config, nil
}

func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")

	v.BindEnv("session.min_time_limit", "SESSION_MIN_TIME_LIMIT")
	v.BindEnv("session.max_time_limit", "SESSION_MAX_TIME_LIMIT")
	v.BindEnv("session.min_total_points", "SESSION_MIN_TOTAL_POINTS")
	v.BindEnv("session.max_total_points", "SESSION_MAX_TOTAL_POINTS")
	v.BindEnv("session.min_choices", "SESSION_MIN_CHOICES")
	v.BindEnv("session.max_choices", "SESSION_MAX_CHOICES")
	v.BindEnv("session.min_answers", "SESSION_MIN_ANSWERS")
	v.BindEnv("session.max_answers", "SESSION_MAX_ANSWERS")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 30000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("session.min_time_limit", 60)
	v.SetDefault("session.max_time_limit", 300)
	v.SetDefault("session.min_total_points", 100)
	v.SetDefault("session.max_total_points", 1000)
	v.SetDefault("session.min_choices", 2)
	v.SetDefault("session.max_choices", 4)
	v.SetDefault("session.min_answers", 1)
	v.SetDefault("session.max_answers", 3)
}

// getConfigFile returns the config file path from APP_CONFIG_FILE, if set.
func getConfigFile() string {
	return os.Getenv("APP_CONFIG_FILE")
}

// Addr returns the HTTP listen address in the format ":port".
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
