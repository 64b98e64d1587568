package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

const (
	CodeValidation  = "E100"
	CodeExternalAPI = "E200"
	CodeNotFound    = "E300"
	CodeInvariant   = "E400"
)

// AppError is the application-level error taxonomy. UserMessage is what the
// bot replies with; Message is what gets logged.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	// Service names the external collaborator for E200 errors.
	Service string
	cause   error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// NewValidationError marks malformed user input: bad address, bad email,
// unrecognized callback payload. Session state stays unchanged.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        CodeValidation,
		Message:     msg,
		UserMessage: fmt.Sprintf("Invalid input. %s", msg),
		Severity:    SeverityLow,
		Retryable:   false,
	}
}

// NewExternalAPIError marks a failed call to a collaborator (commerce
// backend, geocoder, session store). The core never retries on its own; the
// user can resend the same input.
func NewExternalAPIError(service string, cause error) *AppError {
	return &AppError{
		Code:        CodeExternalAPI,
		Message:     fmt.Sprintf("external API error: %s", service),
		UserMessage: "The service is temporarily unavailable. Please try again.",
		Severity:    SeverityMedium,
		Retryable:   true,
		Service:     service,
		cause:       cause,
	}
}

// NewNotFoundError marks a missing product or fulfillment point.
func NewNotFoundError(what string) *AppError {
	return &AppError{
		Code:        CodeNotFound,
		Message:     fmt.Sprintf("not found: %s", what),
		UserMessage: "That item is unavailable right now.",
		Severity:    SeverityLow,
		Retryable:   false,
	}
}

// NewInvariantViolation marks a broken internal assumption, e.g. the
// distance resolver invoked with zero fulfillment points. Fatal to the
// current event only, never to the process.
func NewInvariantViolation(msg string) *AppError {
	return &AppError{
		Code:        CodeInvariant,
		Message:     msg,
		UserMessage: "Something went wrong on our side. Please try again later.",
		Severity:    SeverityHigh,
		Retryable:   true,
	}
}
