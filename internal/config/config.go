package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "openshelf", "config.yml")
}

// Load reads the config from disk and environment. A missing config file is
// fine — every setting has a default, and openshelf works with no file at
// all.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base", "https://openlibrary.org")
	v.SetDefault("api.covers_base", "https://covers.openlibrary.org/b")
	v.SetDefault("api.placeholder_cover", "https://via.placeholder.com/150x200?text=No+Cover")
	v.SetDefault("api.page_size", 20)
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.cache_ttl", "10m")
	v.SetDefault("api.rps", 5)
	v.SetDefault("api.burst", 5)
	v.SetDefault("featured.query", "popular fiction classics")
	v.SetDefault("readlist.path", defaultReadListPath())

	v.SetEnvPrefix("OPENSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("OPENSHELF_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ReadList.Path = ExpandHome(cfg.ReadList.Path)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultReadListPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "openshelf", "readlist.yml")
}
