package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RedisAddr     string
	RedisPassword string

	// Public generation endpoint rate limit (requests per second, burst).
	GenerateRate  float64
	GenerateBurst int

	GeneratorBaseURL string
	GeneratorAPIKey  string
	GeneratorModel   string
	GeneratorTimeout time.Duration

	GatewayBaseURL       string
	GatewayKeyID         string
	GatewayKeySecret     string
	GatewayWebhookSecret string
	Currency             string

	RechargeBaseURL string

	// AdminToken gates the /admin routes. Empty disables them.
	AdminToken string

	// SeedDemo creates a sample business on startup (ignored in production).
	SeedDemo bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "revu"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "revu"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		GenerateRate:  getenvFloat("GENERATE_RATE", 1),
		GenerateBurst: getenvInt("GENERATE_BURST", 5),

		GeneratorBaseURL: strings.TrimRight(getenv("GENERATOR_BASE_URL", "https://api.openai.com/v1"), "/"),
		GeneratorAPIKey:  strings.TrimSpace(getenv("GENERATOR_API_KEY", "")),
		GeneratorModel:   getenv("GENERATOR_MODEL", "gpt-4o-mini"),
		GeneratorTimeout: getenvDuration("GENERATOR_TIMEOUT", 10*time.Second),

		GatewayBaseURL:       strings.TrimRight(getenv("RAZORPAY_BASE_URL", "https://api.razorpay.com"), "/"),
		GatewayKeyID:         strings.TrimSpace(getenv("RAZORPAY_KEY_ID", "")),
		GatewayKeySecret:     strings.TrimSpace(getenv("RAZORPAY_KEY_SECRET", "")),
		GatewayWebhookSecret: strings.TrimSpace(getenv("RAZORPAY_WEBHOOK_SECRET", "")),
		Currency:             strings.ToUpper(getenv("CURRENCY", "INR")),

		RechargeBaseURL: strings.TrimRight(getenv("RECHARGE_BASE_URL", "http://localhost:8080"), "/"),

		AdminToken: strings.TrimSpace(getenv("ADMIN_TOKEN", "")),

		SeedDemo: getenvBool("SEED_DEMO_BUSINESS", false),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func getenvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return value
}

func getenvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using default %v", key, raw, def)
		return def
	}
	return value
}

func getenvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using default %v", key, raw, def)
		return def
	}
	return value
}

func getenvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using default %s", key, raw, def)
		return def
	}
	return value
}
