package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort        int
	RequestTimeout time.Duration
	CORSOrigins    []string

	// StoreURL points at the hosted Postgres endpoint; its user is the service role.
	StoreURL        string
	StoreServiceKey string
	StoreMigrate    bool
	MigrationsPath  string

	DispatcherJWTSecret string

	TelegramBotToken string
	PortalBaseURL    string
}

var (
	ErrStoreURLMissing = errors.New("STORE_URL is required")
	ErrStoreKeyMissing = errors.New("STORE_SERVICE_KEY is required")
)

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "ridepilot"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))

	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))
	cfg.RequestTimeout = cast.ToDuration(getOrReturnDefault("REQUEST_TIMEOUT", "10s"))
	cfg.CORSOrigins = splitList(cast.ToString(getOrReturnDefault("CORS_ORIGINS", "*")))

	cfg.StoreURL = cast.ToString(getOrReturnDefault("STORE_URL", ""))
	cfg.StoreServiceKey = cast.ToString(getOrReturnDefault("STORE_SERVICE_KEY", ""))
	cfg.StoreMigrate = cast.ToBool(getOrReturnDefault("STORE_MIGRATE", true))
	cfg.MigrationsPath = cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", "migrations"))

	cfg.DispatcherJWTSecret = cast.ToString(getOrReturnDefault("DISPATCHER_JWT_SECRET", ""))

	cfg.TelegramBotToken = cast.ToString(getOrReturnDefault("TG_BOT_TOKEN", ""))
	cfg.PortalBaseURL = cast.ToString(getOrReturnDefault("PORTAL_BASE_URL", "http://localhost:5173/driver"))

	return cfg
}

// Validate reports configuration the process cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StoreURL) == "" {
		return ErrStoreURLMissing
	}
	if strings.TrimSpace(c.StoreServiceKey) == "" {
		return ErrStoreKeyMissing
	}
	if _, err := url.Parse(c.StoreURL); err != nil {
		return fmt.Errorf("STORE_URL: %w", err)
	}
	return nil
}

// StoreDSN returns StoreURL with the service key set as the connection password.
func (c Config) StoreDSN() (string, error) {
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return "", fmt.Errorf("parse store url: %w", err)
	}
	user := "service_role"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.StoreServiceKey)
	return u.String(), nil
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
