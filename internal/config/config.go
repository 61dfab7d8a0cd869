package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration is env-only and loaded once in main; request-handling code
// never reads ambient state. Defaults are registered via viper.SetDefault,
// which also makes AutomaticEnv pick the keys up during Unmarshal.

type UserServiceConfig struct {
	Port             string `mapstructure:"PORT" validate:"required"`
	DBDSN            string `mapstructure:"DB_DSN" validate:"required"`
	ServiceJWTSecret string `mapstructure:"SERVICE_JWT_SECRET" validate:"required"`
}

func LoadUserService() (*UserServiceConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8081")
	v.SetDefault("DB_DSN", "root:@tcp(127.0.0.1:3306)/user_db?parseTime=true")
	v.SetDefault("SERVICE_JWT_SECRET", "")

	var cfg UserServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type OrderServiceConfig struct {
	Port               string        `mapstructure:"PORT" validate:"required"`
	DBDSNs             string        `mapstructure:"DB_DSNS" validate:"required"`
	UserServiceURL     string        `mapstructure:"USER_SERVICE_URL" validate:"required,url"`
	UserServiceTimeout time.Duration `mapstructure:"USER_SERVICE_TIMEOUT" validate:"gt=0"`
	ServiceJWTSecret   string        `mapstructure:"SERVICE_JWT_SECRET" validate:"required"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`    // optional; empty disables idempotency + lookup cache
	KafkaBrokers       string        `mapstructure:"KAFKA_BROKERS"` // optional; empty disables event publishing
}

func LoadOrderService() (*OrderServiceConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8082")
	v.SetDefault("DB_DSNS", "root:@tcp(127.0.0.1:3306)/order_db?parseTime=true")
	v.SetDefault("USER_SERVICE_URL", "http://localhost:8081")
	v.SetDefault("USER_SERVICE_TIMEOUT", "3s")
	v.SetDefault("SERVICE_JWT_SECRET", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("KAFKA_BROKERS", "")

	var cfg OrderServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ShardDSNs splits the comma-separated DSN list; one DSN per order shard.
func (c *OrderServiceConfig) ShardDSNs() []string {
	parts := strings.Split(c.DBDSNs, ",")
	dsns := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			dsns = append(dsns, p)
		}
	}
	return dsns
}
