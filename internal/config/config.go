package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	SQLite   SQLiteConfig
	AI       AIConfig
	CORS     CORSConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	Env          string
	LogLevel     string
	ServiceName  string
	AdminEnabled bool
}

// StoreConfig selects the entity store backend.
type StoreConfig struct {
	Driver string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	URL     string
	PoolMin int
	PoolMax int
}

// SQLiteConfig holds the SQLite database file location.
type SQLiteConfig struct {
	Path string
}

// AIConfig holds settings for the generative-AI integration.
type AIConfig struct {
	APIKey              string
	RecommendationModel string
	AnalysisModel       string
	Timeout             time.Duration
	RateLimitRPS        float64
	RateLimitBurst      int
}

// Enabled reports whether an API key was supplied.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins  []string
	Patterns []string
}

// CatalogConfig controls startup seeding.
type CatalogConfig struct {
	SeedSampleData bool
}

// Load reads configuration from the environment.
// A .env file in the working directory is honoured when present; real
// environment variables always win over it.
func Load() (*Config, error) {
	// Missing .env is the normal case in containers.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "5051")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("SERVICE_NAME", "Pratham Associates API")
	v.SetDefault("ADMIN_ROUTES_ENABLED", false)
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("SQLITE_PATH", "listings.db")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_RECOMMENDATION_MODEL", "gemini-2.5-pro")
	v.SetDefault("GEMINI_ANALYSIS_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_TIMEOUT", "20s")
	v.SetDefault("AI_RATE_LIMIT_RPS", 1.0)
	v.SetDefault("AI_RATE_LIMIT_BURST", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5051,https://propertiespro.netlify.app")
	v.SetDefault("CORS_ORIGIN_PATTERNS", `^https://[\w-]+--propertiespro\.netlify\.app$`)
	v.SetDefault("SEED_SAMPLE_DATA", true)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Env:          v.GetString("ENV"),
			LogLevel:     v.GetString("LOG_LEVEL"),
			ServiceName:  v.GetString("SERVICE_NAME"),
			AdminEnabled: v.GetBool("ADMIN_ROUTES_ENABLED"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		},
		Database: DatabaseConfig{
			URL:     v.GetString("DATABASE_URL"),
			PoolMin: v.GetInt("DB_POOL_MIN"),
			PoolMax: v.GetInt("DB_POOL_MAX"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		AI: AIConfig{
			APIKey:              v.GetString("GEMINI_API_KEY"),
			RecommendationModel: v.GetString("GEMINI_RECOMMENDATION_MODEL"),
			AnalysisModel:       v.GetString("GEMINI_ANALYSIS_MODEL"),
			Timeout:             v.GetDuration("AI_TIMEOUT"),
			RateLimitRPS:        v.GetFloat64("AI_RATE_LIMIT_RPS"),
			RateLimitBurst:      v.GetInt("AI_RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			Origins:  parseList(v.GetString("CORS_ORIGINS")),
			Patterns: parseList(v.GetString("CORS_ORIGIN_PATTERNS")),
		},
		Catalog: CatalogConfig{
			SeedSampleData: v.GetBool("SEED_SAMPLE_DATA"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.ServiceName == "" {
		return fmt.Errorf("SERVICE_NAME is required")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
		if c.Database.PoolMin < 0 {
			return fmt.Errorf("DB_POOL_MIN must be non-negative")
		}
		if c.Database.PoolMax < 1 {
			return fmt.Errorf("DB_POOL_MAX must be at least 1")
		}
		if c.Database.PoolMin > c.Database.PoolMax {
			return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER is sqlite")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of %s, %s, %s (got %q)",
			DriverMemory, DriverPostgres, DriverSQLite, c.Store.Driver)
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if c.AI.RateLimitRPS <= 0 {
		return fmt.Errorf("AI_RATE_LIMIT_RPS must be positive")
	}
	if c.AI.RateLimitBurst < 1 {
		return fmt.Errorf("AI_RATE_LIMIT_BURST must be at least 1")
	}
	if c.AI.Enabled() && (c.AI.RecommendationModel == "" || c.AI.AnalysisModel == "") {
		return fmt.Errorf("GEMINI_RECOMMENDATION_MODEL and GEMINI_ANALYSIS_MODEL are required when GEMINI_API_KEY is set")
	}

	if len(c.CORS.Origins) == 0 && len(c.CORS.Patterns) == 0 {
		return fmt.Errorf("CORS_ORIGINS or CORS_ORIGIN_PATTERNS is required")
	}
	for _, p := range c.CORS.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("CORS_ORIGIN_PATTERNS contains invalid pattern %q: %w", p, err)
		}
	}

	return nil
}

// parseList splits a comma-separated string into trimmed, non-empty parts.
func parseList(value string) []string {
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
