package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config regroupe la configuration chargée depuis les variables d'environnement
type Config struct {
	Port string
	Env  string

	// PostgreSQL
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Auth
	JWTSecret string

	// CORS
	CORSOrigins []string

	// Rate limiting
	RateLimitEnabled   bool
	RateLimitPerMinute int
	RateLimitPerHour   int

	// Fournisseurs LLM (préférence: gemini > openai > anthropic)
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

// LoadConfig lit la configuration depuis l'environnement
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "eduflow"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RateLimitPerHour:   getEnvInt("RATE_LIMIT_PER_HOUR", 1000),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}

	// Origines CORS séparées par des virgules
	origins := getEnv("CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	// Rate limiting activé en production ou explicitement
	cfg.RateLimitEnabled = cfg.Env == "production" ||
		strings.EqualFold(getEnv("ENABLE_RATE_LIMIT", "false"), "true")

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// IsProduction indique si l'application tourne en production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
