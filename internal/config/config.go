package config

import (
	"os"
	"time"
)

// Config is built once in main and injected everywhere. No other package
// reads environment variables.
type Config struct {
	Port        string
	Environment string

	// Credential store. DBDriver selects the adapter: "mongo" or "postgres".
	DBDriver      string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string

	AccessTokenSecret  string
	AccessTokenTTL     time.Duration
	RefreshTokenSecret string
	RefreshTokenTTL    time.Duration

	OTPTTL time.Duration

	// Email provider: "sendgrid" or "resend".
	EmailProvider string
	EmailAPIKey   string
	EmailSender   string

	// Optional profile cache. Redis is disabled when no address is configured.
	RedisURL        string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	ProfileCacheTTL time.Duration

	FrontendURL string
}

func Load() *Config {
	return &Config{
		Port:        GetEnvAsString("PORT", "8080"),
		Environment: GetEnvAsString("ENVIRONMENT", "development"),

		DBDriver:      GetEnvAsString("DB_DRIVER", "mongo"),
		MongoURI:      GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: GetEnvAsString("MONGO_DATABASE", "auth"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),

		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		AccessTokenTTL:     GetEnvAsDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		RefreshTokenTTL:    GetEnvAsDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		OTPTTL: GetEnvAsDuration("OTP_TTL", 2*time.Minute),

		EmailProvider: GetEnvAsString("EMAIL_PROVIDER", "sendgrid"),
		EmailAPIKey:   os.Getenv("EMAIL_API_KEY"),
		EmailSender:   os.Getenv("EMAIL_SENDER"),

		RedisURL:        os.Getenv("REDIS_URL"),
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         GetEnvAsInt("REDIS_DB", 0),
		ProfileCacheTTL: GetEnvAsDuration("PROFILE_CACHE_TTL", 24*time.Hour),

		FrontendURL: GetEnvAsString("FRONTEND_URL", "http://localhost:5173"),
	}
}

// IsProduction drives the cookie secure flag and error detail exposure.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
