package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("CATALOG_PATH", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected default provider openai, got %s", cfg.LLMProvider)
	}
	if cfg.CatalogPath != "data/eco_programs.json" {
		t.Fatalf("expected default catalog path, got %s", cfg.CatalogPath)
	}
	if cfg.LLMTemperature != 0.2 {
		t.Fatalf("expected default temperature 0.2, got %v", cfg.LLMTemperature)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session ttl, got %s", cfg.SessionTTL)
	}
	if !cfg.UseMemorySessions {
		t.Fatal("expected memory sessions by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("USE_MEMORY_SESSIONS", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected normalized provider gemini, got %s", cfg.LLMProvider)
	}
	if cfg.LLMTemperature != 0.7 {
		t.Fatalf("expected temperature override, got %v", cfg.LLMTemperature)
	}
	if cfg.SessionTTL != 45*time.Minute {
		t.Fatalf("expected ttl override, got %s", cfg.SessionTTL)
	}
	if cfg.UseMemorySessions {
		t.Fatal("expected memory sessions disabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{LLMProvider: "openai", CatalogPath: "data/eco_programs.json"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing openai key")
	}

	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.LLMProvider = "gemini"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing gemini key")
	}

	cfg.LLMProvider = "other"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
