package reservation

import "errors"

var (
	// ErrNoDateSelected is returned when no visit date was chosen.
	ErrNoDateSelected = errors.New("please select a visit date first")

	// ErrNoSlotSelected is returned when no program/time slot was chosen.
	ErrNoSlotSelected = errors.New("please select a program and time slot")

	// ErrMissingRequiredFields is returned when the applicant info is incomplete.
	ErrMissingRequiredFields = errors.New("organization name, contact, and representative are required")

	// ErrTermsNotAgreed is returned when the terms checkbox is not set.
	ErrTermsNotAgreed = errors.New("you must agree to the terms to submit a reservation")
)
