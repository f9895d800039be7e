package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/idilsaglam/cloon/internal/store/queue"
)

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig
	UI      UIConfig
	Queue   QueueConfig
	Log     LogConfig
}

// CatalogConfig points at the garment catalog file.
type CatalogConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
}

// QueueConfig holds tried-on queue behavior.
type QueueConfig struct {
	Duplicates string // "keep" | "move-to-front"
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// DuplicatePolicy parses Queue.Duplicates.
func (c Config) DuplicatePolicy() (queue.DuplicatePolicy, error) {
	return queue.ParseDuplicatePolicy(c.Queue.Duplicates)
}

func configDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "cloon")
}

// Load reads configuration from file and env. Env var overrides use prefix CLOON_.
// path overrides CLOON_CONFIG when non-empty.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("catalog.path", filepath.Join(configDir(), "catalog.json"))
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("queue.duplicates", "keep")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("CLOON_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CLOON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine; an explicit one must exist and parse
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := c.DuplicatePolicy(); err != nil {
		return Config{}, fmt.Errorf("queue.duplicates: %w", err)
	}
	return c, nil
}
