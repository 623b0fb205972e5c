package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/ecocenter/visit-platform/internal/conversation"
	"github.com/ecocenter/visit-platform/internal/session"
	"github.com/ecocenter/visit-platform/pkg/logging"
)

// Handler manages web chat connections for the reservation page. Each
// connection is bound to one session; a session never has more than one
// in-flight completion call because turns are processed inline on the
// connection's read loop, so the handler keeps no connection registry.
type Handler struct {
	service  *conversation.Service
	sessions session.Store
	logger   *logging.Logger
	widgetJS []byte
}

// InboundMessage is what the chat widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string            `json:"type"` // "message", "typing", "history", "session", "autofill", "error", "pong"
	Text      string            `json:"text,omitempty"`
	Role      string            `json:"role,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Messages  []HistoryMessage  `json:"messages,omitempty"`
}

// HistoryMessage is a simplified transcript turn for history responses.
type HistoryMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// NewHandler creates a web chat handler.
func NewHandler(service *conversation.Service, sessions session.Store, widgetJS []byte, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service:  service,
		sessions: sessions,
		logger:   logger,
		widgetJS: widgetJS,
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// loadOrCreate fetches the session or bootstraps a new one with the greeting.
func (h *Handler) loadOrCreate(ctx context.Context, sessionID string) (*session.State, error) {
	state, err := h.sessions.Get(ctx, sessionID)
	if err == session.ErrNotFound {
		state = session.NewState(sessionID)
		if err := h.sessions.Save(ctx, state); err != nil {
			return nil, err
		}
		return state, nil
	}
	return state, err
}

func transcriptHistory(state *session.State) []HistoryMessage {
	history := make([]HistoryMessage, 0, len(state.Transcript))
	for _, turn := range state.Transcript {
		history = append(history, HistoryMessage{Role: turn.Role, Text: turn.Content})
	}
	return history
}

// HandleWebSocket upgrades to WebSocket and handles real-time chat.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	state, err := h.loadOrCreate(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("webchat: failed to load session", "error", err, "session_id", sessionID)
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "failed to load session"})
		return
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: sessionID})
	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: transcriptHistory(state)})

	h.logger.Info("webchat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}
		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

		reply, autofill, err := h.processTurn(r.Context(), sessionID, msg.Text)
		if err != nil {
			h.logger.Error("webchat: chat turn failed", "error", err, "session_id", sessionID)
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type: "error",
				Text: "Sorry, something went wrong. Please try again.",
			})
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "message", Role: "assistant", Text: reply})
		if autofill != nil {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "autofill", Fields: autofill})
		}
	}
}

// processTurn runs one chat turn against the session's transcript and saves
// the updated state. The user turn is kept even when the completion fails.
func (h *Handler) processTurn(ctx context.Context, sessionID, text string) (string, map[string]string, error) {
	state, err := h.loadOrCreate(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	result, turnErr := h.service.ProcessTurn(ctx, state.Transcript, text)
	state.Transcript = result.Transcript
	if result.AutoFill != nil {
		state.PendingAutoFill = result.AutoFill
	}
	if err := h.sessions.Save(ctx, state); err != nil {
		h.logger.Error("webchat: failed to save session", "error", err, "session_id", sessionID)
	}
	if turnErr != nil {
		return "", nil, turnErr
	}
	return result.Reply, result.AutoFill, nil
}

// HandleMessage is the HTTP fallback for sending a chat message. Unlike the
// WebSocket path it responds synchronously with the assistant's reply.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = generateSessionID()
	}

	reply, autofill, err := h.processTurn(r.Context(), req.SessionID, req.Text)
	if err != nil {
		h.logger.Error("webchat: chat turn failed", "error", err, "session_id", req.SessionID)
		http.Error(w, "chat turn failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session_id": req.SessionID,
		"reply":      reply,
		"autofill":   autofill,
	})
}

// HandleHistory returns the transcript for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	state, err := h.sessions.Get(r.Context(), sessionID)
	if err == session.ErrNotFound {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"messages": []HistoryMessage{}})
		return
	}
	if err != nil {
		h.logger.Error("webchat: failed to load history", "error", err, "session_id", sessionID)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": transcriptHistory(state)})
}

// HandleWidgetJS serves the embeddable chat widget JavaScript.
func (h *Handler) HandleWidgetJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(h.widgetJS)
}
