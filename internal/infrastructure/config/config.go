package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type DatabaseConfig struct {
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	Host     string `env:"POSTGRES_HOST" envDefault:"postgres"`
	Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
	Name     string `env:"POSTGRES_DB" envDefault:"storefront_db"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
}

type KafkaConfig struct {
	Broker string `env:"KAFKA_BROKER" envDefault:"localhost:9092"`
	Topic  string `env:"KAFKA_TOPIC" envDefault:"order-events"`
}

type HTTPConfig struct {
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type CacheConfig struct {
	ResponseTTL time.Duration `env:"RESPONSE_CACHE_TTL" envDefault:"10m"`
}

type ServerConfig struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	HTTP     HTTPConfig
	Cache    CacheConfig
}

func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.User == "" || cfg.Database.Password == "" {
		return nil, fmt.Errorf("database credentials required")
	}
	return cfg, nil
}
