package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Remote catalog service.
	CatalogURL     string
	CatalogTimeout time.Duration

	// Operator notification endpoint and credentials. Credentials are only
	// ever supplied here, never compiled in.
	TelegramAPIURL string
	TelegramToken  string
	TelegramChatID string
	NotifyTimeout  time.Duration

	TaxRate float64

	// Durable cart storage: Postgres when CartDBDSN is set, else a local file.
	CartFile  string
	CartDBDSN string

	// Optional order-event fan-out.
	RabbitURL string
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		CatalogURL:     getenv("CATALOG_URL", "https://fakestoreapi.com"),
		CatalogTimeout: parseDuration(getenv("CATALOG_TIMEOUT", "10s"), 10*time.Second),

		TelegramAPIURL: getenv("TELEGRAM_API_URL", "https://api.telegram.org"),
		TelegramToken:  getenv("TELEGRAM_TOKEN", ""),
		TelegramChatID: getenv("TELEGRAM_CHAT_ID", ""),
		NotifyTimeout:  parseDuration(getenv("NOTIFY_TIMEOUT", "10s"), 10*time.Second),

		TaxRate: parseFloat(getenv("TAX_RATE", "0.10"), 0.10),

		CartFile:  getenv("CART_FILE", "storefront-cart.json"),
		CartDBDSN: getenv("CART_DB_DSN", ""),

		RabbitURL: getenv("RABBITMQ_URL", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return def
	}
	return f
}
