package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kenzliang/leeger/internal/filter"
)

// Sources a league can be loaded from.
const (
	SourceFile    = "file"
	SourceSQLite  = "sqlite"
	SourceSleeper = "sleeper"
)

// OwnerAlias maps a canonical owner name to the other names it has gone by. Names are a
// list rather than map keys because viper lowercases keys.
type OwnerAlias struct {
	Name    string   `mapstructure:"name"`
	Aliases []string `mapstructure:"aliases"`
}

type Config struct {
	// League source
	Source          string `mapstructure:"source"`
	LeaguePath      string `mapstructure:"league_path"`
	ArchivePath     string `mapstructure:"archive_path"`
	ArchiveKey      string `mapstructure:"archive_key"`
	SleeperLeagueID string `mapstructure:"sleeper_league_id"`
	SleeperBaseURL  string `mapstructure:"sleeper_base_url"`
	CacheDir        string `mapstructure:"cache_dir"`
	Years           []int  `mapstructure:"years"`

	OwnerAliases []OwnerAlias     `mapstructure:"owner_aliases"`
	Filters      map[string]any `mapstructure:"filters"`

	// Output
	OutputPath string `mapstructure:"output_path"`

	// Logging
	LogLevel    string `mapstructure:"log_level"`
	Development bool   `mapstructure:"development"`

	// HTTP
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// LoadConfig reads an optional YAML config file and LEEGER_* environment overrides.
// With an empty path it looks for leeger.yaml in the working directory.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("leeger")
		v.AddConfigPath(".")
	}

	v.SetDefault("source", SourceFile)
	v.SetDefault("league_path", "league.yaml")
	v.SetDefault("archive_path", "leeger.db")
	v.SetDefault("archive_key", "default")
	v.SetDefault("sleeper_league_id", "")
	v.SetDefault("sleeper_base_url", "https://api.sleeper.app/v1")
	v.SetDefault("cache_dir", "")
	v.SetDefault("years", []int{})
	v.SetDefault("output_path", "")
	v.SetDefault("log_level", "")
	v.SetDefault("development", false)
	v.SetDefault("http_timeout", "20s")
	v.SetDefault("requests_per_second", 4)
	v.SetDefault("user_agent", "leeger/1.0")

	v.SetEnvPrefix("LEEGER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that the selected source has what it needs.
func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	switch c.Source {
	case SourceFile:
		if c.LeaguePath == "" {
			return fmt.Errorf("config: league_path is required for source %q", c.Source)
		}
	case SourceSQLite:
		if c.ArchivePath == "" || c.ArchiveKey == "" {
			return fmt.Errorf("config: archive_path and archive_key are required for source %q", c.Source)
		}
	case SourceSleeper:
		if c.SleeperLeagueID == "" {
			return fmt.Errorf("config: sleeper_league_id is required for source %q", c.Source)
		}
		if len(c.Years) == 0 {
			return fmt.Errorf("config: years are required for source %q", c.Source)
		}
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config: requests_per_second must not be negative")
	}
	return nil
}

// FilterOptions converts the configured filter map. Unknown keys come back as warnings.
func (c *Config) FilterOptions() (filter.Options, []string, error) {
	return filter.OptionsFromMap(c.Filters)
}

// AliasMap returns the owner aliases as canonical name -> aliases.
func (c *Config) AliasMap() map[string][]string {
	out := make(map[string][]string, len(c.OwnerAliases))
	for _, a := range c.OwnerAliases {
		out[a.Name] = append(out[a.Name], a.Aliases...)
	}
	return out
}
