package webchat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/ecocenter/visit-platform/internal/catalog"
	"github.com/ecocenter/visit-platform/internal/conversation"
	"github.com/ecocenter/visit-platform/internal/observability/metrics"
	"github.com/ecocenter/visit-platform/internal/session"
	"github.com/ecocenter/visit-platform/pkg/logging"
)

type scriptedLLM struct {
	reply string
}

func (f *scriptedLLM) Complete(ctx context.Context, req conversation.LLMRequest) (conversation.LLMResponse, error) {
	return conversation.LLMResponse{Text: f.reply}, nil
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		CenterName: "Greenvale Nature Ecology Center",
		Programs: []catalog.Program{
			{
				ProgramID: "P001",
				Name:      "Forest Walk",
				Target:    "Elementary school",
				AvailableSlots: []catalog.Slot{
					{Date: "2025-09-15", Time: "10:00-11:00", Capacity: 30, Reserved: 12},
				},
			},
		},
	}
}

func newTestHandler(llm conversation.LLMClient) (*Handler, *session.MemoryStore) {
	m := metrics.NewChatMetrics(prometheus.NewRegistry())
	svc := conversation.NewService(llm, "fake", testCatalog(), 0.2, 512, m, logging.Default())
	sessions := session.NewMemoryStore()
	return NewHandler(svc, sessions, []byte("// widget"), logging.Default()), sessions
}

func TestHandleMessage(t *testing.T) {
	handler, sessions := newTestHandler(&scriptedLLM{reply: "We have seats on the 15th."})

	body, _ := json.Marshal(map[string]string{"text": "Any programs?"})
	r := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleMessage(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string            `json:"session_id"`
		Reply     string            `json:"reply"`
		AutoFill  map[string]string `json:"autofill"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, "We have seats on the 15th.", resp.Reply)
	require.Nil(t, resp.AutoFill)

	// Session was bootstrapped with the greeting, then user + assistant turns.
	state, err := sessions.Get(context.Background(), resp.SessionID)
	require.NoError(t, err)
	require.Len(t, state.Transcript, 3)
	require.Equal(t, session.Greeting, state.Transcript[0].Content)
}

func TestHandleMessageAutoFill(t *testing.T) {
	reply := "Got it!\n[AUTO_FILL]\nDATE: 2025-09-15\nPROGRAM: Forest Walk\nTIME: 10:00-11:00\n[/AUTO_FILL]"
	handler, sessions := newTestHandler(&scriptedLLM{reply: reply})

	body, _ := json.Marshal(map[string]string{"session_id": "s1", "text": "book the forest walk"})
	r := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleMessage(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reply    string            `json:"reply"`
		AutoFill map[string]string `json:"autofill"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "2025-09-15", resp.AutoFill["DATE"])
	require.NotContains(t, resp.Reply, "[AUTO_FILL]")
	require.True(t, strings.Contains(resp.Reply, conversation.AutoFillConfirmation))

	state, err := sessions.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, "Forest Walk", state.PendingAutoFill["PROGRAM"])
}

func TestWebSocketChatTurn(t *testing.T) {
	handler, sessions := newTestHandler(&scriptedLLM{reply: "We have seats on the 15th."})

	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/webchat/ws"
	conn, err := websocket.Dial(url, "", srv.URL)
	require.NoError(t, err)
	defer conn.Close()

	var sess OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &sess))
	require.Equal(t, "session", sess.Type)
	require.NotEmpty(t, sess.SessionID)

	var history OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &history))
	require.Equal(t, "history", history.Type)
	require.Len(t, history.Messages, 1)
	require.Equal(t, session.Greeting, history.Messages[0].Text)

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "message", Text: "Any programs?"}))

	var typing OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &typing))
	require.Equal(t, "typing", typing.Type)

	var reply OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &reply))
	require.Equal(t, "message", reply.Type)
	require.Equal(t, "We have seats on the 15th.", reply.Text)

	state, err := sessions.Get(context.Background(), sess.SessionID)
	require.NoError(t, err)
	require.Len(t, state.Transcript, 3)
}

func TestHandleMessageBadRequest(t *testing.T) {
	handler, _ := newTestHandler(&scriptedLLM{reply: "x"})

	r := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{"text":"  "}`)))
	w := httptest.NewRecorder()
	handler.HandleMessage(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleHistory(t *testing.T) {
	handler, sessions := newTestHandler(&scriptedLLM{reply: "x"})

	state := session.NewState("s1")
	require.NoError(t, sessions.Save(context.Background(), state))

	r := httptest.NewRequest(http.MethodGet, "/api/chat/history?session=s1", nil)
	w := httptest.NewRecorder()
	handler.HandleHistory(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Messages, 1)
	require.Equal(t, "assistant", resp.Messages[0].Role)
}

func TestHandleHistoryUnknownSession(t *testing.T) {
	handler, _ := newTestHandler(&scriptedLLM{reply: "x"})

	r := httptest.NewRequest(http.MethodGet, "/api/chat/history?session=nope", nil)
	w := httptest.NewRecorder()
	handler.HandleHistory(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Messages []HistoryMessage `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Empty(t, resp.Messages)
}

func TestHandleWidgetJS(t *testing.T) {
	handler, _ := newTestHandler(&scriptedLLM{reply: "x"})

	r := httptest.NewRequest(http.MethodGet, "/webchat/widget.js", nil)
	w := httptest.NewRecorder()
	handler.HandleWidgetJS(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/javascript", w.Header().Get("Content-Type"))
	require.Equal(t, "// widget", w.Body.String())
}
