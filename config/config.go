// Package config loads application configuration from environment
// variables, with a .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// KafkaConfig holds broker settings shared by the API producer and the
// ingester consumer.
type KafkaConfig struct {
	Broker  string
	Topic   string
	GroupID string
}

// RedisConfig holds the optional read-path cache settings. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// IngesterConfig holds batch settings for the Kafka-to-ClickHouse ingester.
type IngesterConfig struct {
	BatchSize    int
	BatchTimeout time.Duration
}

type Config struct {
	ClickHouseDSN string
	ServerPort    string

	Kafka    KafkaConfig
	Redis    RedisConfig
	Ingester IngesterConfig

	PublishTimeout time.Duration
	QueryTimeout   time.Duration

	// RateLimitRPS of zero disables the API rate limiter.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration once at startup.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	dsn := fmt.Sprintf("clickhouse://%s:%s@%s:%s/%s?dial_timeout=10s&read_timeout=20s",
		getEnv("CLICKHOUSE_USER", "default"),
		getEnv("CLICKHOUSE_PASSWORD", ""),
		getEnv("CLICKHOUSE_HOST", "localhost"),
		getEnv("CLICKHOUSE_TCP_PORT", "9000"),
		getEnv("CLICKHOUSE_DB", "default"),
	)

	return &Config{
		ClickHouseDSN: dsn,
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Kafka: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_PRICE_TOPIC", "pricefeed_prices"),
			GroupID: getEnv("KAFKA_PRICE_GROUP_ID", "pricefeed-price-consumer"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 30)) * time.Second,
		},
		Ingester: IngesterConfig{
			BatchSize:    getEnvInt("BATCH_SIZE", 200),
			BatchTimeout: time.Duration(getEnvInt("BATCH_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		PublishTimeout: time.Duration(getEnvInt("PUBLISH_TIMEOUT_SECONDS", 10)) * time.Second,
		QueryTimeout:   time.Duration(getEnvInt("QUERY_TIMEOUT_SECONDS", 30)) * time.Second,
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
