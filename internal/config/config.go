package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	CatalogPath string

	// LLM backend selection: "openai" (default) or "gemini".
	LLMProvider    string
	LLMTemperature float64
	LLMMaxTokens   int

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey string
	GeminiModel  string

	// Session storage: in-memory by default, Redis when configured.
	UseMemorySessions bool
	SessionTTL        time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisTLS          bool

	CORSAllowedOrigins []string
	ChatRatePerSecond  float64
	ChatRateBurst      int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		CatalogPath: getEnv("CATALOG_PATH", "data/eco_programs.json"),

		LLMProvider:    strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", "openai"))),
		LLMTemperature: getEnvAsFloat("LLM_TEMPERATURE", 0.2),
		LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 1024),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4.1-mini"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		UseMemorySessions: getEnvAsBool("USE_MEMORY_SESSIONS", true),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisTLS:          getEnvAsBool("REDIS_TLS", false),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		ChatRatePerSecond:  getEnvAsFloat("CHAT_RATE_PER_SECOND", 1),
		ChatRateBurst:      getEnvAsInt("CHAT_RATE_BURST", 5),
	}
}

// Validate checks that the configuration is usable. A missing credential for
// the selected LLM provider is fatal to startup.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return errors.New("config: OPENAI_API_KEY is required")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return errors.New("config: GEMINI_API_KEY is required")
		}
	default:
		return errors.New("config: LLM_PROVIDER must be \"openai\" or \"gemini\"")
	}
	if c.CatalogPath == "" {
		return errors.New("config: CATALOG_PATH is required")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
