package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	DB        DBConfig
	Kafka     KafkaConfig
	JWT       JWTConfig
	Reaper    ReaperConfig
	Telemetry TelemetryConfig
	LogLevel  string
	LogFormat string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string
	EventTopic    string
	FeedTopic     string
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type ReaperConfig struct {
	Interval  time.Duration
	BatchSize int
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "dues"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "dues"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "duesd"),
			EventTopic:    getEnv("KAFKA_EVENT_TOPIC", "dues.events"),
			FeedTopic:     getEnv("KAFKA_FEED_TOPIC", "dues.feed"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Issuer: getEnv("JWT_ISSUER", "portal-mahasiswa"),
		},
		Reaper: ReaperConfig{
			Interval:  getEnvDuration("REAPER_INTERVAL", time.Second),
			BatchSize: getEnvInt("REAPER_BATCH_SIZE", 100),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  "duesd",
		},
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
