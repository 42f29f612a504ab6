package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"care-app-go/pkg/logger"
)

type Config struct {
	HTTPPort           string
	Env                string
	Timezone           string
	CORSAllowedOrigins []string
	MetricsEnabled     bool
	CatalogCacheTTL    time.Duration
	RateLimit          RateLimitConfig
	DB                 DBConfig
	Supabase           SupabaseConfig
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type SupabaseConfig struct {
	URL               string
	PublishableKey    string
	JWTSecret         string
	AuthTimeout       time.Duration
	SkipAuth          bool
	MockUserID        string
	MockUserEmail     string
	MockUserFirstName string
	MockUserLastName  string
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		Timezone:           getEnv("APP_TIMEZONE", "Asia/Seoul"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		CatalogCacheTTL:    getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 5),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 20),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "care_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Supabase: SupabaseConfig{
			URL:               getEnv("SUPABASE_URL", ""),
			PublishableKey:    getEnv("SUPABASE_PUBLISHABLE_KEY", getEnv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "")),
			JWTSecret:         getEnv("SUPABASE_JWT_SECRET", ""),
			AuthTimeout:       getEnvDuration("SUPABASE_AUTH_TIMEOUT", 5*time.Second),
			SkipAuth:          getEnvBool("AUTH_SKIP", false),
			MockUserID:        getEnv("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
			MockUserEmail:     getEnv("AUTH_MOCK_USER_EMAIL", "dev@example.com"),
			MockUserFirstName: getEnv("AUTH_MOCK_USER_FIRST_NAME", ""),
			MockUserLastName:  getEnv("AUTH_MOCK_USER_LAST_NAME", ""),
		},
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Location is the zone used to decide what "today" means for reservations.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
