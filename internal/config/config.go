package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrUserWithoutRedis = errors.New("config: user id set without a redis url")

type Config struct {
	DBPath      string
	RedisURL    string
	UserID      string
	OpenAIKey   string
	OpenAIModel string
	DarkMode    bool
	Debug       bool
}

func Default() Config {
	return Config{
		DBPath:   defaultDBPath(),
		DarkMode: true,
	}
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("AITODO_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("AITODO_REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := getEnvString("AITODO_USER_ID"); ok {
		cfg.UserID = v
	}
	if v, ok := getEnvString("OPENAI_API_KEY"); ok {
		cfg.OpenAIKey = v
	}
	if v, ok := getEnvString("AITODO_OPENAI_MODEL"); ok {
		cfg.OpenAIModel = v
	}
	if v, ok := getEnvBool("AITODO_DARK_MODE"); ok {
		cfg.DarkMode = v
	}
	if v, ok := getEnvBool("AITODO_DEBUG"); ok {
		cfg.Debug = v
	}
	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db path is empty")
	}
	if c.UserID != "" && c.RedisURL == "" {
		return ErrUserWithoutRedis
	}
	return nil
}

// RemoteEnabled reports whether snapshots sync to a per-user remote store.
func (c Config) RemoteEnabled() bool {
	return c.UserID != "" && c.RedisURL != ""
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aitodo.db"
	}
	return filepath.Join(home, ".aitodo", "aitodo.db")
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
