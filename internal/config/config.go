package config

import (
	"os"
	"strings"
)

type Config struct {
	Port             string
	DatabaseURL      string
	RedisURL         string
	NatsURL          string
	IdentityAPIURL   string
	IdentityAPIKey   string
	SessionJWTSecret string
	CORSOrigin       string
	LogLevel         string
	Env              string // "dev" or "production"
}

func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		NatsURL:          getEnv("NATS_URL", "nats://localhost:4222"),
		IdentityAPIURL:   getEnv("IDENTITY_API_URL", "https://api.clerk.com"),
		IdentityAPIKey:   os.Getenv("IDENTITY_API_KEY"),
		SessionJWTSecret: os.Getenv("SESSION_JWT_SECRET"),
		CORSOrigin:       getEnv("CORS_ORIGIN", "*"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Env:              getEnv("ENV", "dev"),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
