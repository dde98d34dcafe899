package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	responsetransformer "github.com/always-cache/conditional/pkg/response-transformer"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Name in Cache-Status and namespace of stored keys
	Name string `yaml:"name"`
	// Directory to serve files from
	Dir string `yaml:"dir"`
	// Result storage: memory, sqlite or redis
	Provider string `yaml:"provider"`
	// SQLite file name
	DB            string      `yaml:"db"`
	Redis         RedisConfig `yaml:"redis"`
	PurgeSchedule string      `yaml:"purgeSchedule"`
	// Token required by the purge endpoint, which is disabled if empty
	AdminToken string                    `yaml:"adminToken"`
	Rules      responsetransformer.Rules `yaml:"rules"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Timeout  time.Duration `yaml:"timeout"`
}

func defaultConfig() Config {
	return Config{
		Name:          "conditional-cache",
		Dir:           ".",
		Provider:      "memory",
		DB:            "cache.db",
		Redis:         RedisConfig{Addr: "localhost:6379"},
		PurgeSchedule: "@every 1m",
	}
}

// getConfig reads the config file on top of the defaults.
// A missing file is not an error if it was not explicitly requested.
func getConfig(filename string, required bool) (Config, error) {
	config := defaultConfig()
	configBytes, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return config, nil
	} else if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// applyEnv overrides the config with environment variables.
func applyEnv(config *Config) {
	config.Dir = getenv("CONDITIONAL_DIR", config.Dir)
	config.Provider = getenv("CONDITIONAL_PROVIDER", config.Provider)
	config.DB = getenv("CONDITIONAL_DB", config.DB)
	config.Redis.Addr = getenv("REDIS_ADDR", config.Redis.Addr)
	config.Redis.Password = getenv("REDIS_PASSWORD", config.Redis.Password)
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			config.Redis.DB = db
		}
	}
	config.PurgeSchedule = getenv("CONDITIONAL_PURGE_SCHEDULE", config.PurgeSchedule)
	config.AdminToken = getenv("ADMIN_TOKEN", config.AdminToken)
}
