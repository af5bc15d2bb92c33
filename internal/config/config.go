package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// AppSecret signs the session JWT.
	AppSecret   string
	FrontendURL string

	StripeSecretKey   string
	PaystackSecretKey string
	Currency          string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	KafkaBrokers []string
	KafkaTopic   string

	// InternalAPIKey lifts trusted callers into the internal rate-limit tier.
	InternalAPIKey string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           getEnv("APP_PORT", "4444"),
		AppEnv:            getEnv("APP_ENV", "development"),
		AppSecret:         os.Getenv("APP_SECRET"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:7777"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		Currency:          getEnv("CURRENCY", "NGN"),
		MailHost:          os.Getenv("MAIL_HOST"),
		MailPort:          getEnvInt("MAIL_PORT", 587),
		MailUser:          os.Getenv("MAIL_USER"),
		MailPass:          os.Getenv("MAIL_PASS"),
		MailFrom:          getEnv("MAIL_FROM", "hello@brytashop.com"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "brytashop.events"),
		InternalAPIKey:    os.Getenv("INTERNAL_API_KEY"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.AppSecret == "" {
		log.Fatal("APP_SECRET is not set")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
