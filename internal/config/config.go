package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"BarInventory/internal/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config mirrors config/config.yaml.
type Config struct {
	Paths   PathsConfig    `mapstructure:"paths"`
	Sources []SourceConfig `mapstructure:"sources"`
	Catalog CatalogConfig  `mapstructure:"catalog"`
	Store   StoreConfig    `mapstructure:"store"`
	Server  ServerConfig   `mapstructure:"server"`
	Log     LogConfig      `mapstructure:"log"`
}

// PathsConfig locates the inventory table and the two schema scripts.
type PathsConfig struct {
	Inventory       string `mapstructure:"inventory"`        // bar inventory file (headered, comma-delimited)
	SchemaScript    string `mapstructure:"schema_script"`    // run before the load
	ReportingScript string `mapstructure:"reporting_script"` // run after the load
}

// SourceConfig declares one transaction log.
type SourceConfig struct {
	Name        string `mapstructure:"name"`
	Path        string `mapstructure:"path"`
	Delimiter   string `mapstructure:"delimiter"`   // "," or "\t" (also accepts "tab")
	Compression string `mapstructure:"compression"` // "", "none" or "gzip"
	Header      bool   `mapstructure:"header"`      // first row is a header and is skipped
	Venue       string `mapstructure:"venue"`       // budapest / london / new_york
}

// CatalogConfig configures the external cocktail catalog.
type CatalogConfig struct {
	Provider    string `mapstructure:"provider"`     // cocktaildb / file
	BaseURL     string `mapstructure:"base_url"`     // e.g. https://www.thecocktaildb.com/api/json/v1
	APIKey      string `mapstructure:"api_key"`      // free test key is "1"
	Timeout     int    `mapstructure:"timeout"`      // per lookup, seconds
	Proxy       string `mapstructure:"proxy"`        // optional HTTP proxy
	FixturePath string `mapstructure:"fixture_path"` // JSON fixture for the file provider
}

// StoreConfig configures the target relational store.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"` // sqlite / postgres
	DSN       string `mapstructure:"dsn"`
	BatchSize int    `mapstructure:"batch_size"`
}

// ServerConfig configures the read-only report API.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug/release/test
}

// LogConfig configures logrus.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads config.yaml from dir (default ./config). A .env file, if present, is loaded first
// and env values override the yaml for secrets and locations.
func LoadConfig(dir string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	if dir == "" {
		dir = "./config"
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.schema_script", "sql/data_tables.sql")
	v.SetDefault("paths.reporting_script", "sql/poc_tables.sql")
	v.SetDefault("catalog.provider", "cocktaildb")
	v.SetDefault("catalog.base_url", "https://www.thecocktaildb.com/api/json/v1")
	v.SetDefault("catalog.api_key", "1")
	v.SetDefault("catalog.timeout", 10)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "bar_inventory_management.sqlite")
	v.SetDefault("store.batch_size", 500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
}

// overrideFromEnv lets env win over yaml for secrets and deploy-specific locations.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("COCKTAILDB_API_KEY"); v != "" {
		cfg.Catalog.APIKey = v
	}
	if v := os.Getenv("CATALOG_PROXY"); v != "" {
		cfg.Catalog.Proxy = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
}

// Validate checks the declarations that would otherwise fail halfway through a build.
func (c *Config) Validate() error {
	if c.Paths.Inventory == "" {
		return fmt.Errorf("paths.inventory is required")
	}
	if c.Paths.SchemaScript == "" || c.Paths.ReportingScript == "" {
		return fmt.Errorf("paths.schema_script and paths.reporting_script are required")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one transaction source is required")
	}
	for i, s := range c.Sources {
		if s.Path == "" {
			return fmt.Errorf("sources[%d]: path is required", i)
		}
		if _, err := model.ParseVenue(s.Venue); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, err := s.Rune(); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
		switch strings.ToLower(s.Compression) {
		case "", "none", "gzip":
		default:
			return fmt.Errorf("sources[%d]: unsupported compression %q", i, s.Compression)
		}
	}
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("store.driver %q: want sqlite or postgres", c.Store.Driver)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive")
	}
	return nil
}

// Rune returns the field separator of the source.
func (s SourceConfig) Rune() (rune, error) {
	switch s.Delimiter {
	case "", ",":
		return ',', nil
	case "\t", `\t`, "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q", s.Delimiter)
	}
}

// Gzip reports whether the source is gzip-compressed, either declared or by .gz suffix.
func (s SourceConfig) Gzip() bool {
	if strings.EqualFold(s.Compression, "gzip") {
		return true
	}
	return strings.EqualFold(s.Compression, "") && strings.EqualFold(filepath.Ext(s.Path), ".gz")
}

// DisplayName is the name used in remediation entries and logs.
func (s SourceConfig) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(s.Path)
}
