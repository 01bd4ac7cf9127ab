package service

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrOrderNotFound    = errors.New("order not found")
	ErrConfiguration    = errors.New("service misconfigured")
)

// ValidationError carries a caller-facing message for a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
