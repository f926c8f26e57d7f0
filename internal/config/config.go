package config

import "os"

type Config struct {
	ServerPort      string
	TokenSecret     string
	SessionTTLHours string
	Store           string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

func Load() *Config {
	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		TokenSecret:     getEnv("TOKEN_SECRET", "super-secret-key-change-me"),
		SessionTTLHours: getEnv("SESSION_TTL_HOURS", "24"),
		Store:           getEnv("STORE", StoreMemory),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "animeconexion"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
