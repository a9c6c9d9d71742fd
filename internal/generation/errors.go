package generation

import "errors"

// UserMessage is the only failure text ever shown to a user.
const UserMessage = "failed to generate recipes, try again shortly."

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is matched by every GenerationError.
	ErrGenerationFailed = errors.New(UserMessage)

	// ErrInvalidResponse is returned when the model output cannot be decoded
	// into the declared recipe shape
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrEmptyResponse is returned when the model produced no text at all
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// GenerationError is the single error kind raised for any failure of a
// generation call. Its message is always UserMessage; the underlying cause is
// kept for logging and is reachable with errors.Unwrap or errors.Is.
type GenerationError struct {
	cause error
}

// NewGenerationError wraps cause in a GenerationError.
func NewGenerationError(cause error) *GenerationError {
	return &GenerationError{cause: cause}
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return UserMessage
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() error {
	return e.cause
}

// Is reports whether target is ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}
