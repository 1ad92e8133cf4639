package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type config struct {
	ServerPort        string
	PostgresConnStr   string
	JWTSecret         string
	TokenExpiryInSecs int64

	MailHost string
	MailPort int
	MailUser string
	MailPass string

	ContactRecipient string

	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	AllowedOrigins []string
}

// Env holds all environment backed configuration. It is loaded once at
// package init; required variables are checked at boot in main, not here,
// so tests can import this package without a full .env.
var Env = load()

func load() *config {
	// a missing .env file is fine in deployed environments where the
	// variables come from the process environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from process environment")
	}

	return &config{
		ServerPort:          getEnv("PORT", "5000"),
		PostgresConnStr:     getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TokenExpiryInSecs:   getEnvAsInt("TOKEN_EXPIRY_IN_SECS", 3600),
		MailHost:            getEnv("MAIL_HOST", ""),
		MailPort:            int(getEnvAsInt("MAIL_PORT", 587)),
		MailUser:            getEnv("MAIL_USER", ""),
		MailPass:            getEnv("MAIL_PASS", ""),
		ContactRecipient:    getEnv("CONTACT_RECIPIENT", ""),
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/"),
		AllowedOrigins:      getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}

	return num
}

func getEnvAsSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
