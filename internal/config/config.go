package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAppName             = "login-api"
	defaultAppEnv              = "development"
	defaultPort                = "8080"
	defaultLogLevel            = "info"
	defaultShutdownDelay       = 10 * time.Second
	defaultNotificationURL     = "http://localhost:8081/sendNotification"
	defaultNotificationTimeout = 5 * time.Second
	defaultNotificationWorkers = 4
	defaultNotificationQueue   = 256
	defaultNotificationKey     = "notifications:login"

	// BackendMemory delivers notifications from an in-process worker pool.
	BackendMemory = "memory"
	// BackendRedis hands notifications to a Redis list drained by workers.
	BackendRedis = "redis"
	// BackendLog writes notifications to the log instead of calling NOTIFICATION_URL.
	BackendLog = "log"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	BcryptCost     int
	Notification   NotificationConfig
}

// NotificationConfig controls delivery of post-login notifications.
type NotificationConfig struct {
	URL       string
	Timeout   time.Duration
	Backend   string
	Workers   int
	QueueSize int
	RedisKey  string
}

// Load reads configuration values from the environment and populates a Config instance.
// A .env file in the working directory is honoured when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getEnv("APP_NAME", defaultAppName),
		AppEnv:      getEnv("APP_ENV", defaultAppEnv),
		Port:        getEnv("PORT", defaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		Notification: NotificationConfig{
			URL:      getEnv("NOTIFICATION_URL", defaultNotificationURL),
			Backend:  strings.ToLower(getEnv("NOTIFICATION_BACKEND", BackendMemory)),
			RedisKey: getEnv("NOTIFICATION_REDIS_KEY", defaultNotificationKey),
		},
	}

	var err error
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT", defaultShutdownDelay); err != nil {
		return Config{}, err
	}
	if cfg.Notification.Timeout, err = durationEnv("NOTIFICATION_TIMEOUT", defaultNotificationTimeout); err != nil {
		return Config{}, err
	}
	if cfg.Notification.Workers, err = intEnv("NOTIFICATION_WORKERS", defaultNotificationWorkers); err != nil {
		return Config{}, err
	}
	if cfg.Notification.QueueSize, err = intEnv("NOTIFICATION_QUEUE_SIZE", defaultNotificationQueue); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabaseURL == "" && !c.IsDev() {
		return fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", c.AppEnv)
	}
	switch c.Notification.Backend {
	case BackendMemory, BackendLog:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set when NOTIFICATION_BACKEND=%s", BackendRedis)
		}
	default:
		return fmt.Errorf("unsupported NOTIFICATION_BACKEND %q", c.Notification.Backend)
	}
	if c.Notification.URL == "" && c.Notification.Backend != BackendLog {
		return fmt.Errorf("NOTIFICATION_URL must not be empty")
	}
	if c.Notification.Timeout <= 0 {
		return fmt.Errorf("NOTIFICATION_TIMEOUT must be positive")
	}
	if c.Notification.Workers <= 0 {
		return fmt.Errorf("NOTIFICATION_WORKERS must be positive")
	}
	if c.Notification.QueueSize <= 0 {
		return fmt.Errorf("NOTIFICATION_QUEUE_SIZE must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// IsDev reports whether the environment allows in-memory fallbacks.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// durationEnv accepts either KEY_SECONDS (integer) or KEY (Go duration), seconds first.
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	secondsKey := key + "_SECONDS"
	if v := os.Getenv(secondsKey); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", secondsKey, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return d, nil
	}
	return fallback, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
