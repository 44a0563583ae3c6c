package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewUnsupportedFormatError returns an error for extensions outside the
// pdf/docx/txt whitelist. No extraction is attempted for these.
func NewUnsupportedFormatError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Unsupported file format",
		Detail:  detail,
	}
}

// NewDocumentExtractionError returns an error when every format-specific
// extraction path has been exhausted.
func NewDocumentExtractionError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Document extraction failed",
		Detail:  detail,
	}
}

// NewExtractionTimeoutError returns an error when extraction exceeded its
// wall-clock budget. Surfaced distinctly so callers can retry with a smaller
// file.
func NewExtractionTimeoutError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusRequestTimeout,
		Message: "Document processing timed out",
		Detail:  detail,
	}
}

// NewRateLimitedError returns an error when the service-wide intake limit
// rejects a request. Callers can retry after backing off.
func NewRateLimitedError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusTooManyRequests,
		Message: "Too many extraction requests",
		Detail:  detail,
	}
}

// NewWorkerPoolBusyError returns an error when the extraction queue cannot
// accept another job. Transient backpressure, not a server fault.
func NewWorkerPoolBusyError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusServiceUnavailable,
		Message: "Extraction queue is full",
		Detail:  detail,
	}
}

// NewAIProviderError returns an error for transient AI provider failures.
func NewAIProviderError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "AI provider request failed",
		Detail:  detail,
	}
}

// NewExtractionFailedError returns the terminal error when AI attempts are
// exhausted and no deterministic fallback is configured.
func NewExtractionFailedError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Structured extraction failed",
		Detail:  detail,
	}
}
