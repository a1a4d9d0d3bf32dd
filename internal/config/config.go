package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OpenAIModel           string
	LessonSize            int
	SessionTTLHours       int
	LessonIdleMinutes     int
	CookieSecure          bool
	HousekeepingIntervalM int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:dilvane.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:         os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:           envOr("OPENAI_MODEL", "gpt-4o"),
		LessonSize:            envIntOr("LESSON_SIZE", 8),
		SessionTTLHours:       envIntOr("SESSION_TTL_HOURS", 30*24),
		LessonIdleMinutes:     envIntOr("LESSON_IDLE_MINUTES", 60),
		CookieSecure:          envBoolOr("COOKIE_SECURE", false),
		HousekeepingIntervalM: envIntOr("HOUSEKEEPING_INTERVAL_MINUTES", 30),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}

	if c.OpenAIModel == "" {
		errs = append(errs, errors.New("OPENAI_MODEL cannot be empty"))
	}
	if c.LessonSize < 1 || c.LessonSize > 20 {
		errs = append(errs, fmt.Errorf("LESSON_SIZE must be between 1 and 20 (got %d)", c.LessonSize))
	}
	if c.SessionTTLHours <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL_HOURS must be positive (got %d)", c.SessionTTLHours))
	}
	if c.LessonIdleMinutes <= 0 {
		errs = append(errs, fmt.Errorf("LESSON_IDLE_MINUTES must be positive (got %d)", c.LessonIdleMinutes))
	}
	if c.HousekeepingIntervalM <= 0 {
		errs = append(errs, fmt.Errorf("HOUSEKEEPING_INTERVAL_MINUTES must be positive (got %d)", c.HousekeepingIntervalM))
	}

	return errors.Join(errs...)
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) LessonIdleTimeout() time.Duration {
	return time.Duration(c.LessonIdleMinutes) * time.Minute
}

func (c *Config) HousekeepingInterval() time.Duration {
	return time.Duration(c.HousekeepingIntervalM) * time.Minute
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
