package config

import (
	"os"
	"strings"
)

type Config struct {
	App      AppConfig
	Auth     AuthConfig
	Postgres PostgresConfig
}

type AppConfig struct {
	Name           string
	Port           string
	AllowedOrigins []string
}

type AuthConfig struct {
	SecretKey            string
	Algorithm            string
	AccessTokenExpireMin string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		App: AppConfig{
			Name:           getenv("APP_NAME", "Item Vault API"),
			Port:           getenv("PORT", "8080"),
			AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			SecretKey:            os.Getenv("SECRET_KEY"),
			Algorithm:            getenv("ALGORITHM", "HS256"),
			AccessTokenExpireMin: getenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
