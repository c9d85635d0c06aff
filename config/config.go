package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	DBURL    string
	RedisURL string

	TokenSecret string
	TokenTTL    time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int

	BcryptCost     int
	AllowedOrigins string

	SMTPAddr     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

func Load() *Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DBURL:           mustGetEnv("DB_URL"),
		RedisURL:        getEnv("REDIS_URL", ""),
		TokenSecret:     mustGetEnv("TOKEN_SECRET"),
		TokenTTL:        getEnvAsDuration("TOKEN_TTL", 15*time.Minute),
		RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", time.Hour),
		RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX", 5),
		BcryptCost:      getEnvAsInt("BCRYPT_COST", 0),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		SMTPAddr:        getEnv("SMTP_ADDR", ""),
		SMTPFrom:        getEnv("SMTP_FROM", ""),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %s", key, defaultVal)
		return defaultVal
	}
	return val
}
