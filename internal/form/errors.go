package form

import "errors"

// UnknownErrorMessage is shown when the generator fails with an error that is
// not a generation.GenerationError.
const UnknownErrorMessage = "an unknown error occurred."

var (
	// ErrSubmitInProgress is returned when a form is submitted while its
	// previous submission has not settled.
	ErrSubmitInProgress = errors.New("a submission is already in progress")

	// ErrInvalidInput is returned when the enumerated fields hold unknown values.
	ErrInvalidInput = errors.New("invalid form input")

	// ErrInvalidTransition is returned when the state machine refuses an event.
	ErrInvalidTransition = errors.New("invalid form state transition")
)
