package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings backends
const (
	SettingsBackendFile  = "file"
	SettingsBackendRedis = "redis"
)

// Order sources
const (
	OrderSourceWooCommerce = "woocommerce"
	OrderSourcePostgres    = "postgres"
)

/* Config is read from the environment, optionally seeded from a .env file
 * Every key has a default so the zero environment runs a file-backed service
 */
type Config struct {
	Port      string `mapstructure:"PORT"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	SettingsBackend string `mapstructure:"SETTINGS_BACKEND"`
	SettingsFile    string `mapstructure:"SETTINGS_FILE"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`

	OrderSource               string `mapstructure:"ORDER_SOURCE"`
	StoreTimezone             string `mapstructure:"STORE_TIMEZONE"`
	WooCommerceURL            string `mapstructure:"WOOCOMMERCE_URL"`
	WooCommerceConsumerKey    string `mapstructure:"WOOCOMMERCE_CONSUMER_KEY"`
	WooCommerceConsumerSecret string `mapstructure:"WOOCOMMERCE_CONSUMER_SECRET"`
	WooCommerceWebhookSecret  string `mapstructure:"WOOCOMMERCE_WEBHOOK_SECRET"`
	DatabaseURL               string `mapstructure:"DATABASE_URL"`
	DBTablePrefix             string `mapstructure:"DB_TABLE_PREFIX"`

	DiscordTimeoutSeconds int `mapstructure:"DISCORD_TIMEOUT_SECONDS"`
	RequestTimeoutSeconds int `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

var defaults = map[string]any{
	"PORT":                        "8080",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"SETTINGS_BACKEND":            SettingsBackendFile,
	"SETTINGS_FILE":               "settings.yaml",
	"REDIS_ADDR":                  "localhost:6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"ORDER_SOURCE":                OrderSourceWooCommerce,
	"STORE_TIMEZONE":              "UTC",
	"WOOCOMMERCE_URL":             "",
	"WOOCOMMERCE_CONSUMER_KEY":    "",
	"WOOCOMMERCE_CONSUMER_SECRET": "",
	"WOOCOMMERCE_WEBHOOK_SECRET":  "",
	"DATABASE_URL":                "",
	"DB_TABLE_PREFIX":             "wp_",
	"DISCORD_TIMEOUT_SECONDS":     60,
	"REQUEST_TIMEOUT_SECONDS":     90,
}

// GetConfig loads .env (when present in the working directory) and the environment
func GetConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env file: %w", err)
	}
	return Load(viper.New())
}

// Load reads the configuration through v. Exposed so tests can use an isolated viper
func Load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &config, nil
}

// Validate checks the backend selectors and the keys each of them requires
func (c *Config) Validate() error {
	var errs []error

	switch c.SettingsBackend {
	case SettingsBackendFile:
		if c.SettingsFile == "" {
			errs = append(errs, errors.New("SETTINGS_FILE is required for the file settings backend"))
		}
	case SettingsBackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis settings backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SETTINGS_BACKEND %q", c.SettingsBackend))
	}

	switch c.OrderSource {
	case OrderSourceWooCommerce:
		if c.WooCommerceURL == "" {
			errs = append(errs, errors.New("WOOCOMMERCE_URL is required for the woocommerce order source"))
		}
		if c.WooCommerceConsumerKey == "" || c.WooCommerceConsumerSecret == "" {
			errs = append(errs, errors.New("WOOCOMMERCE_CONSUMER_KEY and WOOCOMMERCE_CONSUMER_SECRET are required for the woocommerce order source"))
		}
	case OrderSourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres order source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ORDER_SOURCE %q", c.OrderSource))
	}

	if _, err := time.LoadLocation(c.StoreTimezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid STORE_TIMEZONE: %w", err))
	}

	if c.DiscordTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("DISCORD_TIMEOUT_SECONDS must be positive"))
	}
	// a request waits for its synchronous dispatch, which may take the whole discord timeout
	if c.RequestTimeoutSeconds <= c.DiscordTimeoutSeconds {
		errs = append(errs, errors.New("REQUEST_TIMEOUT_SECONDS must be greater than DISCORD_TIMEOUT_SECONDS"))
	}

	return errors.Join(errs...)
}

// Location is the store timezone; call after Validate
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.StoreTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DiscordTimeout bounds a single webhook call
func (c *Config) DiscordTimeout() time.Duration {
	return time.Duration(c.DiscordTimeoutSeconds) * time.Second
}

// RequestTimeout bounds a single inbound HTTP request
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
