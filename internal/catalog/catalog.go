package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is the static dataset of programs, slots, and visit rules that
// drives both the reservation form and the chat assistant's knowledge.
// It is loaded once at startup and never mutated afterwards.
type Catalog struct {
	CenterName string     `json:"centerName"`
	VisitRules VisitRules `json:"visitRules"`
	Programs   []Program  `json:"programs"`
	FAQ        []FAQEntry `json:"faq"`
}

// VisitRules holds the center-wide reservation policies.
type VisitRules struct {
	MinPeoplePerTeam         int `json:"minPeoplePerTeam"`
	MaxPeoplePerTeam         int `json:"maxPeoplePerTeam"`
	ReservationDeadlineHours int `json:"reservationDeadlineHours"`
}

// Program is a guided program offered by the center.
type Program struct {
	ProgramID      string `json:"programId"`
	Name           string `json:"name"`
	Target         string `json:"target"`
	AvailableSlots []Slot `json:"availableSlots"`
}

// Slot is a dated time offering of a program. Reserved counts are read-only
// decoration; nothing in this service ever decrements capacity.
type Slot struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM-HH:MM
	Capacity int    `json:"capacity"`
	Reserved int    `json:"reserved"`
}

// FAQEntry is a free-text question/answer pair surfaced to the assistant.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Load reads and parses the catalog file. Any failure here is fatal to
// startup; callers are expected to exit.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse %s: %w", path, err)
	}
	return &cat, nil
}

// JSON serializes the full catalog; used when embedding it into the
// assistant's system prompt.
func (c *Catalog) JSON() string {
	data, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(data)
}
