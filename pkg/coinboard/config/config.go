package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/komsit37/coinboard/pkg/coinboard/source"
)

// EnvPrefix prefixes every environment override, e.g. COINBOARD_SOURCE_KIND.
const EnvPrefix = "COINBOARD"

type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Display DisplayConfig `mapstructure:"display"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type SourceConfig struct {
	Kind    string        `mapstructure:"kind"` // coingecko | file
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	File    string        `mapstructure:"file"`
}

type DisplayConfig struct {
	Format      string   `mapstructure:"format"`
	Limit       int      `mapstructure:"limit"`
	Columns     []string `mapstructure:"columns"`
	Sets        []string `mapstructure:"sets"`
	Color       bool     `mapstructure:"color"`
	Pretty      bool     `mapstructure:"pretty"`
	MaxColWidth int      `mapstructure:"max_col_width"`
	SearchMode  string   `mapstructure:"search_mode"` // substring | pattern
	Title       string   `mapstructure:"title"`
}

type ServerConfig struct {
	Addr         string   `mapstructure:"addr"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

const (
	SearchSubstring = "substring"
	SearchPattern   = "pattern"
)

// New returns a viper instance with defaults and environment overrides wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.kind", "coingecko")
	v.SetDefault("source.base_url", source.DefaultBaseURL)
	v.SetDefault("source.timeout", 10*time.Second)
	v.SetDefault("source.file", "")

	v.SetDefault("display.format", "table")
	v.SetDefault("display.limit", 10)
	v.SetDefault("display.columns", []string{})
	v.SetDefault("display.sets", []string{})
	v.SetDefault("display.color", true)
	v.SetDefault("display.pretty", false)
	v.SetDefault("display.max_col_width", 40)
	v.SetDefault("display.search_mode", SearchSubstring)
	v.SetDefault("display.title", "Cryptocurrency Prices")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads an optional config file into v and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Display.Format = strings.ToLower(strings.TrimSpace(cfg.Display.Format))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Source.Kind {
	case "coingecko":
	case "file":
		if c.Source.File == "" {
			return fmt.Errorf("source.kind=file requires source.file")
		}
	default:
		return fmt.Errorf("unknown source.kind %q (want coingecko or file)", c.Source.Kind)
	}
	switch c.Display.SearchMode {
	case SearchSubstring, SearchPattern:
	default:
		return fmt.Errorf("unknown display.search_mode %q (want %s or %s)", c.Display.SearchMode, SearchSubstring, SearchPattern)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q (want text or json)", c.Log.Format)
	}
	return nil
}

// NewSource builds the configured data source.
func (c SourceConfig) NewSource() source.Source {
	if c.Kind == "file" {
		return source.File{Path: c.File}
	}
	return source.NewCoinGecko(c.BaseURL, c.Timeout)
}
