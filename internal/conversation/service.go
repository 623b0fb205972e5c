package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/ecocenter/visit-platform/internal/catalog"
	"github.com/ecocenter/visit-platform/internal/observability/metrics"
	"github.com/ecocenter/visit-platform/pkg/logging"
)

// TurnResult is the outcome of one chat turn.
type TurnResult struct {
	// Reply is the assistant text to display, with any auto-fill block
	// stripped and the confirmation suffix appended.
	Reply string
	// Transcript is the updated transcript including the new user turn and
	// the assistant reply.
	Transcript []ChatMessage
	// AutoFill holds catalog-validated DATE/PROGRAM/TIME values when the
	// reply carried an auto-fill block, nil otherwise.
	AutoFill map[string]string
}

// Service orchestrates a chat turn: transcript assembly, the completion call,
// and auto-fill extraction.
type Service struct {
	llm          LLMClient
	provider     string
	catalog      *catalog.Catalog
	systemPrompt string
	temperature  float32
	maxTokens    int32
	metrics      *metrics.ChatMetrics
	logger       *logging.Logger
}

// NewService creates a chat service. The system prompt is built once; the
// catalog is immutable for the process lifetime.
func NewService(llm LLMClient, provider string, cat *catalog.Catalog, temperature float32, maxTokens int32, m *metrics.ChatMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		llm:          llm,
		provider:     provider,
		catalog:      cat,
		systemPrompt: BuildSystemPrompt(cat),
		temperature:  temperature,
		maxTokens:    maxTokens,
		metrics:      m,
		logger:       logger,
	}
}

// ProcessTurn appends the user's message to the transcript, calls the
// completion service, and extracts any auto-fill block from the reply. On
// completion failure the returned transcript still contains the user turn;
// the error propagates and the turn is not retried.
func (s *Service) ProcessTurn(ctx context.Context, transcript []ChatMessage, userText string) (TurnResult, error) {
	updated := make([]ChatMessage, 0, len(transcript)+2)
	updated = append(updated, transcript...)
	updated = append(updated, ChatMessage{Role: ChatRoleUser, Content: userText})

	req := LLMRequest{
		System:      []string{s.systemPrompt},
		Messages:    updated,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	start := time.Now()
	resp, err := s.llm.Complete(ctx, req)
	s.metrics.ObserveCompletionLatency(s.provider, time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveTurn("error")
		return TurnResult{Transcript: updated}, fmt.Errorf("conversation: chat turn failed: %w", err)
	}

	reply := resp.Text
	autofill := s.extractAutoFill(reply)

	display := StripAutoFill(reply)
	if autofill != nil {
		display += "\n\n" + AutoFillConfirmation
	}

	updated = append(updated, ChatMessage{Role: ChatRoleAssistant, Content: display})
	s.metrics.ObserveTurn("ok")

	return TurnResult{
		Reply:      display,
		Transcript: updated,
		AutoFill:   autofill,
	}, nil
}

// extractAutoFill parses the reply and validates the recognized fields
// against the catalog. The model's suggestions are untrusted: a field that
// matches nothing in the catalog is dropped rather than pre-filled.
func (s *Service) extractAutoFill(reply string) map[string]string {
	fields := ParseAutoFill(reply)
	if fields == nil {
		return nil
	}
	s.metrics.ObserveAutoFill("parsed")

	date, hasDate := fields[AutoFillKeyDate]
	program, hasProgram := fields[AutoFillKeyProgram]
	timeRange, hasTime := fields[AutoFillKeyTime]

	dropped := 0
	if hasDate && len(s.catalog.SlotsForDate(date)) == 0 {
		s.logger.Warn("autofill date matches no catalog slot", "date", date)
		delete(fields, AutoFillKeyDate)
		hasDate = false
		dropped++
	}
	var prog catalog.Program
	if hasProgram {
		p, ok := s.catalog.ProgramByName(program)
		if !ok {
			s.logger.Warn("autofill program not in catalog", "program", program)
			delete(fields, AutoFillKeyProgram)
			hasProgram = false
			dropped++
		} else {
			prog = p
		}
	}
	// The time can only be checked against a known program; an orphan TIME
	// with no surviving PROGRAM passes through for the visitor to confirm.
	if hasTime && hasProgram {
		offered := false
		if hasDate {
			_, offered = s.catalog.FindSlot(program, date, timeRange)
		} else {
			offered = programOffersTime(prog, timeRange)
		}
		if !offered {
			s.logger.Warn("autofill time not offered by program",
				"program", program, "date", date, "time", timeRange)
			delete(fields, AutoFillKeyTime)
			dropped++
		}
	}

	if fields[AutoFillKeyDate] == "" && fields[AutoFillKeyProgram] == "" && fields[AutoFillKeyTime] == "" {
		s.metrics.ObserveAutoFill("rejected")
		return nil
	}
	if dropped > 0 {
		s.metrics.ObserveAutoFill("partial")
	} else {
		s.metrics.ObserveAutoFill("validated")
	}
	return fields
}

// programOffersTime reports whether the program has a slot at the given time
// range on any date.
func programOffersTime(p catalog.Program, timeRange string) bool {
	for _, slot := range p.AvailableSlots {
		if slot.Time == timeRange {
			return true
		}
	}
	return false
}
