package reservation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecocenter/visit-platform/internal/catalog"
	"github.com/ecocenter/visit-platform/internal/observability/metrics"
	"github.com/ecocenter/visit-platform/internal/session"
	"github.com/ecocenter/visit-platform/pkg/logging"
)

// Handler handles reservation form submissions and date selection.
type Handler struct {
	catalog  *catalog.Catalog
	sessions session.Store
	metrics  *metrics.ChatMetrics
	logger   *logging.Logger
}

// NewHandler creates a reservation handler.
func NewHandler(cat *catalog.Catalog, sessions session.Store, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: cat, sessions: sessions, metrics: m, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Submit handles POST /api/reservations. Validation failures report the first
// unmet precondition only; a success clears the session's selection state.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		h.metrics.ObserveReservation("invalid")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
		return
	}

	programName := req.ProgramID
	if p, ok := h.catalog.ProgramByID(req.ProgramID); ok {
		programName = p.Name
	}

	// Submission succeeded: reset the session's date and pending auto-fill.
	if req.SessionID != "" && h.sessions != nil {
		if state, err := h.sessions.Get(r.Context(), req.SessionID); err == nil {
			state.ClearSelection()
			if err := h.sessions.Save(r.Context(), state); err != nil {
				h.logger.Error("failed to clear session selection", "error", err, "session_id", req.SessionID)
			}
		}
	}

	h.metrics.ObserveReservation("accepted")
	h.logger.Info("reservation submitted",
		"date", req.Date,
		"program_id", req.ProgramID,
		"org_name", req.OrgName,
		"people", req.People,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(Confirmation{
		Date:        req.Date,
		ProgramID:   req.ProgramID,
		ProgramName: programName,
		Time:        req.Time,
		OrgName:     req.OrgName,
		People:      req.People,
		Note:        ConfirmationNote,
	})
}

type selectDateRequest struct {
	Date string `json:"date"`
}

// SelectDate handles PUT /api/sessions/{sessionID}/date, recording the
// visitor's calendar choice on their session.
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	var req selectDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	state, err := h.sessions.Get(r.Context(), sessionID)
	if err == session.ErrNotFound {
		state = session.NewState(sessionID)
	} else if err != nil {
		h.logger.Error("failed to load session", "error", err, "session_id", sessionID)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	state.SelectedDate = req.Date
	if err := h.sessions.Save(r.Context(), state); err != nil {
		h.logger.Error("failed to save session", "error", err, "session_id", sessionID)
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"session_id": sessionID,
		"date":       req.Date,
	})
}
