package catalog

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ecocenter/visit-platform/pkg/logging"
)

// Handler serves read-only catalog lookups for the reservation page.
type Handler struct {
	catalog *Catalog
	logger  *logging.Logger
}

// NewHandler creates a catalog handler.
func NewHandler(cat *Catalog, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: cat, logger: logger}
}

// SlotsResponse is the response for the slots-by-date lookup.
type SlotsResponse struct {
	Date    string     `json:"date"`
	Slots   []SlotView `json:"slots"`
	Message string     `json:"message,omitempty"`
}

// GetSlots handles GET /api/slots?date=YYYY-MM-DD. A date with no slots is an
// informational empty state, not an error.
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date parameter required", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	slots := h.catalog.SlotsForDate(date)
	resp := SlotsResponse{Date: date, Slots: slots}
	if len(slots) == 0 {
		resp.Message = "No programs are available on the selected date."
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// CenterResponse describes the center for the page shell.
type CenterResponse struct {
	CenterName string     `json:"centerName"`
	VisitRules VisitRules `json:"visitRules"`
	Programs   []Program  `json:"programs"`
	FAQ        []FAQEntry `json:"faq"`
}

// GetCenter handles GET /api/center.
func (h *Handler) GetCenter(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(CenterResponse{
		CenterName: h.catalog.CenterName,
		VisitRules: h.catalog.VisitRules,
		Programs:   h.catalog.Programs,
		FAQ:        h.catalog.FAQ,
	})
}
