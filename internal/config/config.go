package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends for the session store
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	Storage   string `yaml:"storage"`
	StateFile string `yaml:"state_file"`
	TTL       string `yaml:"ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ConfigFile struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
}

// Config is the resolved runtime configuration
type Config struct {
	APIBaseURL       string
	APITimeout       time.Duration
	SessionStorage   string
	SessionStateFile string
	SessionTTL       time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	LogLevel         string
	LogFormat        string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads config/config.yml when present and applies environment variable
// overrides. A missing config file is not an error: the client runs on
// defaults so a fresh checkout works against a local backend.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

// LoadFrom loads configuration from an explicit file path
func LoadFrom(path string) (*Config, error) {
	// Optional .env for local development, same as the backend services use
	_ = godotenv.Load()

	file, err := loadConfigFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		file = &ConfigFile{}
	}

	cfg := &Config{
		APIBaseURL:       env("EXPENSE_API_URL", defaultStr(file.API.BaseURL, "http://localhost:5000/api/v1")),
		SessionStorage:   env("EXPENSE_SESSION_STORAGE", defaultStr(file.Session.Storage, StorageFile)),
		SessionStateFile: env("EXPENSE_SESSION_FILE", defaultStr(file.Session.StateFile, defaultStateFile())),
		RedisAddr:        env("EXPENSE_REDIS_ADDR", defaultStr(file.Redis.Addr, "localhost:6379")),
		RedisPassword:    env("EXPENSE_REDIS_PASSWORD", file.Redis.Password),
		RedisDB:          envInt("EXPENSE_REDIS_DB", file.Redis.DB),
		LogLevel:         env("EXPENSE_LOG_LEVEL", defaultStr(file.Log.Level, "info")),
		LogFormat:        env("EXPENSE_LOG_FORMAT", defaultStr(file.Log.Format, "text")),
	}

	cfg.APITimeout, err = parseDuration(env("EXPENSE_API_TIMEOUT", defaultStr(file.API.Timeout, "15s")))
	if err != nil {
		return nil, fmt.Errorf("invalid api timeout: %w", err)
	}

	cfg.SessionTTL, err = parseDuration(env("EXPENSE_SESSION_TTL", defaultStr(file.Session.TTL, "720h")))
	if err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	switch cfg.SessionStorage {
	case StorageFile, StorageRedis:
	default:
		return nil, fmt.Errorf("unknown session storage backend %q", cfg.SessionStorage)
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func defaultStr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".expensefront/session.json"
	}
	return home + "/.expensefront/session.json"
}
