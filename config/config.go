package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	MongoURI string
	DBName   string

	JWTSecret   string
	JWTTTLHours int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CatalogTTL    time.Duration

	RabbitMQURL       string
	InvoiceQueue      string
	InvoiceMaxRetries int

	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	Currency           string

	EmailHost     string
	EmailPort     int
	EmailUser     string
	EmailPassword string
	StoreName     string
}

// LoadEnv reads a .env file when present. A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{
		Port:     GetEnv("PORT", "1000"),
		Env:      GetEnv("APP_ENV", "dev"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		MongoURI: os.Getenv("MONGO_URI"),
		DBName:   GetEnv("DB_NAME", "bookstore"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTLHours: GetEnvInt("JWT_TTL_HOURS", 72),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetEnvInt("REDIS_DB", 0),
		CatalogTTL:    GetEnvDuration("CATALOG_CACHE_TTL", time.Hour),

		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		InvoiceQueue:      GetEnv("INVOICE_QUEUE", "invoices"),
		InvoiceMaxRetries: GetEnvInt("INVOICE_MAX_RETRIES", 3),

		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		CheckoutSuccessURL: GetEnv("CHECKOUT_SUCCESS_URL", "bookstore://checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURL:  GetEnv("CHECKOUT_CANCEL_URL", "bookstore://checkout/cancel"),
		Currency:           strings.ToLower(GetEnv("CURRENCY", "inr")),

		EmailHost:     GetEnv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort:     GetEnvInt("EMAIL_PORT", 465),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		StoreName:     GetEnv("STORE_NAME", "Bookishhh Store"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required env: " + strings.Join(e.Keys, ", ")
}

func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
