package config

import (
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer = "car-market-app"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Media storage and image compression
	MediaRoot      string
	MediaBaseURL   string
	MaxUploadBytes int64
	ImageMaxWidth  int
	ImageQuality   float64

	// Marketplace pricing
	PremiumPriceIQD     int64
	DefaultExchangeRate string
	RateRefreshInterval time.Duration
	BusinessTimezone    string

	// Optional integrations; empty disables them.
	KafkaBrokers   []string
	KafkaTopic     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	PosthogAPIKey  string
	PosthogHost    string
	AllowedOrigins []string
	LoginRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("MEDIA_ROOT", "./data/media")
	v.SetDefault("MEDIA_BASE_URL", "/media")
	v.SetDefault("MAX_UPLOAD_BYTES", 15<<20)
	v.SetDefault("IMAGE_MAX_WIDTH", 1920)
	v.SetDefault("IMAGE_QUALITY", 0.7)
	v.SetDefault("PREMIUM_PRICE_IQD", 5000)
	v.SetDefault("DEFAULT_EXCHANGE_RATE", "153000")
	v.SetDefault("RATE_REFRESH_INTERVAL", "5m")
	v.SetDefault("BUSINESS_TIMEZONE", "Asia/Baghdad")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "carmarket.events")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_HOST", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	// Environment variables override .env values, which override defaults.
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
	}

	cfg.MediaRoot = v.GetString("MEDIA_ROOT")
	cfg.MediaBaseURL = strings.TrimRight(v.GetString("MEDIA_BASE_URL"), "/")
	cfg.MaxUploadBytes = v.GetInt64("MAX_UPLOAD_BYTES")
	cfg.ImageMaxWidth = v.GetInt("IMAGE_MAX_WIDTH")
	cfg.ImageQuality = v.GetFloat64("IMAGE_QUALITY")
	if cfg.ImageQuality <= 0 || cfg.ImageQuality > 1 {
		log.Printf("Warning: Invalid value for IMAGE_QUALITY (%v). Defaulting to 0.7.\n", cfg.ImageQuality)
		cfg.ImageQuality = 0.7
	}

	cfg.PremiumPriceIQD = v.GetInt64("PREMIUM_PRICE_IQD")
	cfg.DefaultExchangeRate = v.GetString("DEFAULT_EXCHANGE_RATE")
	cfg.RateRefreshInterval = durationOr(v, "RATE_REFRESH_INTERVAL", 5*time.Minute)
	cfg.BusinessTimezone = v.GetString("BUSINESS_TIMEZONE")

	cfg.KafkaBrokers = splitList(v.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = v.GetString("KAFKA_TOPIC")
	cfg.RedisAddr = v.GetString("REDIS_ADDR")
	cfg.RedisPassword = v.GetString("REDIS_PASSWORD")
	cfg.RedisDB = v.GetInt("REDIS_DB")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogHost = v.GetString("POSTHOG_HOST")
	cfg.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}

// Location resolves BusinessTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		log.Printf("Warning: Unknown BUSINESS_TIMEZONE %q. Using UTC.\n", c.BusinessTimezone)
		return time.UTC
	}
	return loc
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
