package config

import "time"

// Config is the top-level openshelf configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Featured FeaturedConfig `mapstructure:"featured" yaml:"featured"`
	ReadList ReadListConfig `mapstructure:"readlist" yaml:"readlist"`
}

// APIConfig holds Open Library connection settings.
type APIConfig struct {
	Base             string        `mapstructure:"base" yaml:"base"`
	CoversBase       string        `mapstructure:"covers_base" yaml:"covers_base"`
	PlaceholderCover string        `mapstructure:"placeholder_cover" yaml:"placeholder_cover"`
	PageSize         int           `mapstructure:"page_size" yaml:"page_size"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	RPS              float64       `mapstructure:"rps" yaml:"rps"`
	Burst            int           `mapstructure:"burst" yaml:"burst"`
}

// FeaturedConfig controls the dashboard selection.
type FeaturedConfig struct {
	Query string `mapstructure:"query" yaml:"query"`
}

// ReadListConfig locates the persisted read list.
type ReadListConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
