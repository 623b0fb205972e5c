package session

import (
	"context"
	"errors"
	"time"

	"github.com/ecocenter/visit-platform/internal/conversation"
)

// Greeting is the synthetic assistant turn that opens every session.
const Greeting = "Hello! I am the reservation assistant for the nature ecology center. " +
	"Tell me your visit date, group size, and audience (elementary, middle school, adults) " +
	"and I will suggest a suitable program."

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session: not found")

// State holds everything one visitor session accumulates: the conversation
// transcript, the selected date, and any pending auto-fill values. It is
// mutated only through its own handlers; sessions never share state.
type State struct {
	ID              string                     `json:"id"`
	Transcript      []conversation.ChatMessage `json:"transcript"`
	SelectedDate    string                     `json:"selectedDate,omitempty"`
	PendingAutoFill map[string]string          `json:"pendingAutoFill,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// NewState creates a fresh session whose transcript starts with the greeting.
func NewState(id string) *State {
	now := time.Now().UTC()
	return &State{
		ID: id,
		Transcript: []conversation.ChatMessage{
			{Role: conversation.ChatRoleAssistant, Content: Greeting},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ClearSelection resets the form-related session state after a successful
// submission. The transcript is kept.
func (s *State) ClearSelection() {
	s.SelectedDate = ""
	s.PendingAutoFill = nil
}

// Store persists session state keyed by session ID.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, id string) error
}
