package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STOREFRONT_API_BASE_URL.
const EnvPrefix = "STOREFRONT"

type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SecureCookies  bool          `mapstructure:"secure_cookies"`
}

type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ProductsPath string        `mapstructure:"products_path"`
	SellersPath  string        `mapstructure:"sellers_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Driver string        `mapstructure:"driver"`
	File   string        `mapstructure:"file"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type DashboardConfig struct {
	PageSize        int           `mapstructure:"page_size"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
}

// Environment returns the parsed env setting.
func (c *Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

var defaults = map[string]any{
	"env":                        string(Development),
	"server.addr":                ":8080",
	"server.read_timeout":        "10s",
	"server.write_timeout":       "30s",
	"server.request_timeout":     "20s",
	"server.secure_cookies":      false,
	"api.base_url":               "http://localhost:5000",
	"api.products_path":          "/api",
	"api.sellers_path":           "/api/sellers",
	"api.timeout":                "10s",
	"session.driver":             "file",
	"session.file":               "",
	"session.ttl":                "24h",
	"redis.addr":                 "localhost:6379",
	"database.url":               "",
	"dashboard.page_size":        10,
	"dashboard.notification_ttl": "3s",
}

// LoadConfig reads .env, then config.yaml, then STOREFRONT_* environment
// variables. A missing config file is not an error. configFile, when set,
// replaces the search path.
func LoadConfig(configFile string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("$HOME/.storefront/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case "file", "memory", "redis", "postgres":
	default:
		return fmt.Errorf("session.driver %q: want file, memory, redis or postgres", c.Session.Driver)
	}
	if c.Session.Driver == "postgres" && c.Database.URL == "" {
		return errors.New("session.driver postgres needs database.url")
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is required")
	}
	return nil
}
