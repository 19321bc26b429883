package collector

import "fmt"

// APIError represents a non-success response from the AIS API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("AIS API request to %s failed with status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// NewAPIError creates a new APIError.
func NewAPIError(endpoint string, statusCode int, message string) *APIError {
	return &APIError{Endpoint: endpoint, StatusCode: statusCode, Message: message}
}

// ParseError represents an unparseable AIS API response.
type ParseError struct {
	Endpoint string
	Cause    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse AIS API response from %s: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new ParseError.
func NewParseError(endpoint string, cause error) *ParseError {
	return &ParseError{Endpoint: endpoint, Cause: cause}
}
