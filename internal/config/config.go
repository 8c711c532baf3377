package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string        `mapstructure:"SERVER_PORT"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	DBHost         string `mapstructure:"POSTGRES_HOST"`
	DBPort         int    `mapstructure:"POSTGRES_PORT"`
	DBUser         string `mapstructure:"POSTGRES_USER"`
	DBPassword     string `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string `mapstructure:"POSTGRES_DB"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	RedisAddr    string        `mapstructure:"REDIS_ADDR"`
	CartCacheTTL time.Duration `mapstructure:"CART_CACHE_TTL"`

	KafkaBrokers    []string `mapstructure:"KAFKA_BROKERS"`
	OrderEventTopic string   `mapstructure:"ORDER_EVENT_TOPIC"`

	FreeShippingThreshold float64 `mapstructure:"FREE_SHIPPING_THRESHOLD"`
	FlatShippingRate      float64 `mapstructure:"FLAT_SHIPPING_RATE"`
	TaxRate               float64 `mapstructure:"TAX_RATE"`
}

// Load reads app.env from path (if present) with environment variables taking
// precedence over file values.
func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	viper.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "storefront")
	viper.SetDefault("POSTGRES_PASSWORD", "storefront")
	viper.SetDefault("POSTGRES_DB", "storefront")
	viper.SetDefault("MIGRATIONS_PATH", "./internal/repository/migrations")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("CART_CACHE_TTL", 15*time.Minute)

	viper.SetDefault("KAFKA_BROKERS", []string{"localhost:9092"})
	viper.SetDefault("ORDER_EVENT_TOPIC", "order-events")

	viper.SetDefault("FREE_SHIPPING_THRESHOLD", 100.0)
	viper.SetDefault("FLAT_SHIPPING_RATE", 12.0)
	viper.SetDefault("TAX_RATE", 0.08)
}
