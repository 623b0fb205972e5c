package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ecocenter/visit-platform/internal/catalog"
	httpmiddleware "github.com/ecocenter/visit-platform/internal/http/middleware"
	"github.com/ecocenter/visit-platform/internal/reservation"
	"github.com/ecocenter/visit-platform/internal/webchat"
	"github.com/ecocenter/visit-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	CatalogHandler     *catalog.Handler
	ReservationHandler *reservation.Handler
	ChatHandler        *webchat.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	ChatRatePerSecond  float64
	ChatRateBurst      int
	IndexHTML          []byte
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if len(cfg.IndexHTML) > 0 {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(cfg.IndexHTML)
		})
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/center", cfg.CatalogHandler.GetCenter)
		api.Get("/slots", cfg.CatalogHandler.GetSlots)

		api.Post("/reservations", cfg.ReservationHandler.Submit)
		api.Put("/sessions/{sessionID}/date", cfg.ReservationHandler.SelectDate)

		// The completion call is the expensive path; rate limit it per IP.
		chat := api.With(httpmiddleware.RateLimit(cfg.ChatRatePerSecond, cfg.ChatRateBurst))
		chat.Post("/chat", cfg.ChatHandler.HandleMessage)
		api.Get("/chat/history", cfg.ChatHandler.HandleHistory)
	})

	r.Route("/webchat", func(wc chi.Router) {
		wc.Get("/ws", cfg.ChatHandler.HandleWebSocket)
		wc.Get("/widget.js", cfg.ChatHandler.HandleWidgetJS)
	})

	return r
}
