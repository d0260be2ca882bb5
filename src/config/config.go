package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// PresenceExchange is the fanout exchange presence-change events are published to.
const PresenceExchange = "presence.events"

// GlobalConfig holds all configuration for the session service.
type GlobalConfig struct {
	Host     string
	Port     string
	LogLevel string

	DBHost     string
	DBPort     int32
	DBUser     string
	DBPassword string
	DBName     string

	RabbitHost string
	RabbitPort int32
	RabbitUser string
	RabbitPass string

	RedisAddr string

	JWTSecret string
	JWTIssuer string

	DailyAPIKey string
	DailyAPIURL string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	PresenceTTL    time.Duration
	ReaperInterval time.Duration
}

// NewConfig builds a GlobalConfig from environment variables.
// A .env file is loaded first when present.
func NewConfig() (*GlobalConfig, error) {
	if err := godotenv.Load(".env"); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	host, err := requireEnv("HOST")
	if err != nil {
		return nil, err
	}
	port, err := requireEnv("PORT")
	if err != nil {
		return nil, err
	}

	dbHost, err := requireEnv("DB_HOST")
	if err != nil {
		return nil, err
	}
	dbPort, err := requireEnvInt32("DB_PORT")
	if err != nil {
		return nil, err
	}
	dbUser, err := requireEnv("DB_USER")
	if err != nil {
		return nil, err
	}
	dbPassword, err := requireEnv("DB_PASSWORD")
	if err != nil {
		return nil, err
	}
	dbName, err := requireEnv("DB_NAME")
	if err != nil {
		return nil, err
	}

	rabbitHost, err := requireEnv("RABBITMQ_HOST")
	if err != nil {
		return nil, err
	}
	rabbitPort, err := requireEnvInt32("RABBITMQ_PORT")
	if err != nil {
		return nil, err
	}
	rabbitUser, err := requireEnv("RABBITMQ_USER")
	if err != nil {
		return nil, err
	}
	rabbitPass, err := requireEnv("RABBITMQ_PASS")
	if err != nil {
		return nil, err
	}

	jwtSecret, err := requireEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	cfg := &GlobalConfig{
		Host:     host,
		Port:     port,
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		DBHost:     dbHost,
		DBPort:     dbPort,
		DBUser:     dbUser,
		DBPassword: dbPassword,
		DBName:     dbName,

		RabbitHost: rabbitHost,
		RabbitPort: rabbitPort,
		RabbitUser: rabbitUser,
		RabbitPass: rabbitPass,

		RedisAddr: envOrDefault("REDIS_ADDR", "localhost:6379"),

		JWTSecret: jwtSecret,
		JWTIssuer: envOrDefault("JWT_ISSUER", "session-service"),

		// Provider credentials are optional: without them the room and SMS
		// endpoints answer in demo/unconfigured mode instead of failing boot.
		DailyAPIKey: os.Getenv("DAILY_API_KEY"),
		DailyAPIURL: envOrDefault("DAILY_API_URL", "https://api.daily.co/v1"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		PresenceTTL:    envOrDefaultDuration("PRESENCE_TTL", 90*time.Second),
		ReaperInterval: envOrDefaultDuration("PRESENCE_REAPER_INTERVAL", 30*time.Second),
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s environment variable is required", key)
	}
	return value, nil
}

func requireEnvInt32(key string) (int32, error) {
	value, err := requireEnv(key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return int32(parsed), nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envOrDefaultDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("%s is not a valid duration (%v), using default %s", key, err, fallback)
		return fallback
	}
	return parsed
}

// GetHost returns the HTTP bind host.
func (c *GlobalConfig) GetHost() string { return c.Host }

// GetPort returns the HTTP bind port.
func (c *GlobalConfig) GetPort() string { return c.Port }

// GetRabbitMQHost returns the RabbitMQ host.
func (c *GlobalConfig) GetRabbitMQHost() string { return c.RabbitHost }

// GetRabbitMQPort returns the RabbitMQ port.
func (c *GlobalConfig) GetRabbitMQPort() int32 { return c.RabbitPort }

// GetAMQPURL builds the AMQP connection URL from the RabbitMQ settings.
func (c *GlobalConfig) GetAMQPURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.RabbitUser, c.RabbitPass, c.RabbitHost, c.RabbitPort)
}

// HasDailyCredentials reports whether the video room provider is configured.
func (c *GlobalConfig) HasDailyCredentials() bool {
	return c.DailyAPIKey != ""
}

// HasTwilioCredentials reports whether the SMS provider is fully configured.
func (c *GlobalConfig) HasTwilioCredentials() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}
