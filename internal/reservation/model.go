package reservation

import "strings"

// Request is a reservation form submission. Nothing here is persisted;
// submission is a display-state transition only.
type Request struct {
	SessionID      string `json:"session_id"`
	Date           string `json:"date"`
	ProgramID      string `json:"program_id"`
	Time           string `json:"time"`
	OrgName        string `json:"org_name"`
	Contact        string `json:"contact"`
	Representative string `json:"representative"`
	Email          string `json:"email"`
	People         int    `json:"people"`
	AgreeTerms     bool   `json:"agree_terms"`
}

// Validate runs the submission checks in order: date chosen, program/slot
// chosen, required applicant fields, terms agreed. The first failing check
// determines the single reported error; later checks do not run.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return ErrNoDateSelected
	}
	if strings.TrimSpace(r.ProgramID) == "" || strings.TrimSpace(r.Time) == "" {
		return ErrNoSlotSelected
	}
	if strings.TrimSpace(r.OrgName) == "" ||
		strings.TrimSpace(r.Contact) == "" ||
		strings.TrimSpace(r.Representative) == "" {
		return ErrMissingRequiredFields
	}
	if !r.AgreeTerms {
		return ErrTermsNotAgreed
	}
	return nil
}

// Confirmation is the success summary shown to the visitor.
type Confirmation struct {
	Date        string `json:"date"`
	ProgramID   string `json:"program_id"`
	ProgramName string `json:"program_name"`
	Time        string `json:"time"`
	OrgName     string `json:"org_name"`
	People      int    `json:"people"`
	Note        string `json:"note"`
}

// ConfirmationNote reminds the visitor that nothing was persisted.
const ConfirmationNote = "This is a demo submission: the reservation is not stored and will be confirmed separately by staff."
