// Package apierror provides the standardized error response for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Validation failed", Fields: fields}
}
