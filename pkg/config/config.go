package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	RxNorm  RxNormConfig
	Medline MedlineConfig
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	Redis   RedisConfig
	Paths   PathsConfig
	OTEL    OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string
	Port        int
	Environment string
}

// RxNormConfig holds drug terminology API configuration
type RxNormConfig struct {
	BaseURL        string
	TimeoutSeconds int
	RateLimitRPS   int
	RateLimitBurst int
}

// MedlineConfig holds reference-site scraper configuration
type MedlineConfig struct {
	TimeoutSeconds int
	UserAgent      string
}

// GeminiConfig holds generative-AI configuration
type GeminiConfig struct {
	APIKey          string
	Model           string
	Provider        string
	TimeoutSeconds  int
	RateLimitRPM    int
	RateLimitBurst  int
	SimplifyEnabled bool
}

// OpenAIConfig holds configuration for OpenAI-compatible completion APIs,
// selected with AI_PROVIDER=openai
type OpenAIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	TimeoutSeconds int
	RateLimitRPM   int
	RateLimitBurst int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PathsConfig holds data and asset directory configuration
type PathsConfig struct {
	DataDir string
	WebDir  string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		RxNorm: RxNormConfig{
			BaseURL:        getEnv("RXNORM_BASE_URL", "https://rxnav.nlm.nih.gov/REST"),
			TimeoutSeconds: getEnvAsInt("RXNORM_TIMEOUT_SECONDS", 10),
			RateLimitRPS:   getEnvAsInt("RXNORM_RATE_LIMIT_RPS", 10),
			RateLimitBurst: getEnvAsInt("RXNORM_RATE_LIMIT_BURST", 5),
		},
		Medline: MedlineConfig{
			TimeoutSeconds: getEnvAsInt("MEDLINE_TIMEOUT_SECONDS", 15),
			UserAgent:      getEnv("MEDLINE_USER_AGENT", "Mozilla/5.0 (compatible; drug-food-interactions/1.0)"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			Provider:        getEnv("AI_PROVIDER", "gemini"),
			TimeoutSeconds:  getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 20),
			RateLimitRPM:    getEnvAsInt("GEMINI_RATE_LIMIT_RPM", 60),
			RateLimitBurst:  getEnvAsInt("GEMINI_RATE_LIMIT_BURST", 5),
			SimplifyEnabled: getEnvAsBool("AI_SIMPLIFY_ENABLED", true),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			TimeoutSeconds: getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 20),
			RateLimitRPM:   getEnvAsInt("OPENAI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("OPENAI_RATE_LIMIT_BURST", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Paths: PathsConfig{
			DataDir: getEnv("DATA_DIR", "data"),
			WebDir:  getEnv("WEB_DIR", "web"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "drug-food-interactions"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Configured reports whether a Redis host has been set
func (c *RedisConfig) Configured() bool {
	return c.Host != ""
}

// LookupTablePath returns the path to the curated drug URL table
func (p *PathsConfig) LookupTablePath() string {
	return filepath.Join(p.DataDir, "drug_lookup.json")
}

// NameCachePath returns the path to the mutable drug name cache
func (p *PathsConfig) NameCachePath() string {
	return filepath.Join(p.DataDir, "drug_cache.json")
}

// InteractionTablePath returns the path to the known-interaction table
func (p *PathsConfig) InteractionTablePath() string {
	return filepath.Join(p.DataDir, "known_interactions.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
