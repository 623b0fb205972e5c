package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ecocenter/visit-platform/internal/api/router"
	"github.com/ecocenter/visit-platform/internal/catalog"
	appconfig "github.com/ecocenter/visit-platform/internal/config"
	"github.com/ecocenter/visit-platform/internal/conversation"
	"github.com/ecocenter/visit-platform/internal/observability/metrics"
	"github.com/ecocenter/visit-platform/internal/reservation"
	"github.com/ecocenter/visit-platform/internal/session"
	"github.com/ecocenter/visit-platform/internal/webchat"
	"github.com/ecocenter/visit-platform/pkg/logging"
	"github.com/ecocenter/visit-platform/web"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting visit-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
	)

	// Catalog load failure is fatal; the catalog is immutable afterwards.
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "center", cat.CenterName, "programs", len(cat.Programs))

	var llm conversation.LLMClient
	switch cfg.LLMProvider {
	case "gemini":
		client, err := conversation.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		llm = client
	default:
		client, err := conversation.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			logger.Error("failed to create openai client", "error", err)
			os.Exit(1)
		}
		llm = client
	}

	var sessions session.Store
	if cfg.UseMemorySessions {
		sessions = session.NewMemoryStore()
	} else {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessions = session.NewRedisStore(redis.NewClient(opts), cfg.SessionTTL, nil)
	}

	chatMetrics := metrics.NewChatMetrics(nil)
	chatService := conversation.NewService(llm, cfg.LLMProvider, cat,
		float32(cfg.LLMTemperature), int32(cfg.LLMMaxTokens), chatMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		CatalogHandler:     catalog.NewHandler(cat, logger),
		ReservationHandler: reservation.NewHandler(cat, sessions, chatMetrics, logger),
		ChatHandler:        webchat.NewHandler(chatService, sessions, web.WidgetJS(), logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ChatRatePerSecond:  cfg.ChatRatePerSecond,
		ChatRateBurst:      cfg.ChatRateBurst,
		IndexHTML:          web.IndexHTML(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // completion calls block the whole turn
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
