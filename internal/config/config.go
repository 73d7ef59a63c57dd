package config

import "os"

// Config collects every knob the service reads from the environment.
// main loads .env first via godotenv, so local runs and containers share
// one mechanism.
type Config struct {
	HTTPAddr    string
	PostgresDSN string
	RedisAddr   string
	RedisPass   string

	JWTSecret string

	PushAppID    string
	PushAPIKey   string
	PushEndpoint string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		PostgresDSN:  getenv("POSTGRES_DSN", "host=localhost user=user password=password dbname=bedmatch port=5432 sslmode=disable"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:    getenv("JWT_SECRET", "dev-only-secret"),
		PushAppID:    os.Getenv("PUSH_APP_ID"),
		PushAPIKey:   os.Getenv("PUSH_API_KEY"),
		PushEndpoint: os.Getenv("PUSH_ENDPOINT"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
