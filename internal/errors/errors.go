// Package errors provides custom error types for the generation API client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNoAPIKey        = errors.New("no API key configured")
	ErrInvalidAPIKey   = errors.New("API key is not valid")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoContent       = errors.New("no content in response")
)

// CredentialError represents a missing or rejected API key
type CredentialError struct {
	Message string
}

func (e *CredentialError) Error() string {
	if e.Message == "" {
		return "credential error: API key is missing or not valid"
	}
	return fmt.Sprintf("credential error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *CredentialError) Is(target error) bool {
	if target == ErrInvalidAPIKey || target == ErrNoAPIKey {
		return true
	}
	_, ok := target.(*CredentialError)
	return ok
}

// NewCredentialError creates a new CredentialError
func NewCredentialError(message string) *CredentialError {
	return &CredentialError{Message: message}
}

// CommError represents a communication failure with the API
type CommError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *CommError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("communication error [%d]: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("communication error: %v", e.Err)
	}
	return fmt.Sprintf("communication error: %s", e.Message)
}

// Unwrap returns the underlying transport error, if any
func (e *CommError) Unwrap() error {
	return e.Err
}

// Is allows comparison with other CommErrors
func (e *CommError) Is(target error) bool {
	_, ok := target.(*CommError)
	return ok
}

// NewCommError creates a new CommError
func NewCommError(statusCode int, message string, err error) *CommError {
	return &CommError{StatusCode: statusCode, Message: message, Err: err}
}

// APIError represents an unclassified API failure
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}
