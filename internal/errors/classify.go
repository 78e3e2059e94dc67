package errors

import "errors"

// ErrorCode classifies a failure for display purposes
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeCredential
	ErrCodeCommunication
)

// String returns a human-readable name for the code
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeCredential:
		return "credential"
	case ErrCodeCommunication:
		return "communication"
	default:
		return "unknown"
	}
}

// IsCredentialError reports whether err is a missing/rejected API key
func IsCredentialError(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}

// IsCommError reports whether err is a transport-level failure
func IsCommError(err error) bool {
	var ce *CommError
	return errors.As(err, &ce)
}

// Classify maps an error to its ErrorCode
func Classify(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrCodeUnknown
	case IsCredentialError(err):
		return ErrCodeCredential
	case IsCommError(err):
		return ErrCodeCommunication
	default:
		return ErrCodeUnknown
	}
}

// GetHTTPStatus extracts the HTTP status code from an error, or 0
func GetHTTPStatus(err error) int {
	var comm *CommError
	if errors.As(err, &comm) {
		return comm.StatusCode
	}
	var api *APIError
	if errors.As(err, &api) {
		return api.StatusCode
	}
	return 0
}

// User-facing failure texts. Each error category maps to a distinct message;
// the conversation only ever holds these strings, never structured errors.
const (
	userMsgCredential    = "Your API key is not valid. Check the GEMINI_API_KEY environment variable or run 'personachat config' to update it."
	userMsgCommunication = "I couldn't reach the generation service. Check your connection and try again."
	userMsgUnknown       = "Something went wrong while generating a reply. Please try again."
)

// UserMessage converts an error into the text shown as an assistant reply
func UserMessage(err error) string {
	switch Classify(err) {
	case ErrCodeCredential:
		return userMsgCredential
	case ErrCodeCommunication:
		return userMsgCommunication
	default:
		return userMsgUnknown
	}
}
