package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrCodeUnknown},
		{"credential", NewCredentialError("bad key"), ErrCodeCredential},
		{"communication", NewCommError(500, "", nil), ErrCodeCommunication},
		{"api", NewAPIError(400, "generateContent", "bad request"), ErrCodeUnknown},
		{"parse", NewParseError("bad json", ""), ErrCodeUnknown},
		{"plain", errors.New("whatever"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrCodeCredential.String() != "credential" {
		t.Error("unexpected name for credential code")
	}
	if ErrCodeUnknown.String() != "unknown" {
		t.Error("unexpected name for unknown code")
	}
}

func TestUserMessage_DistinctPerCategory(t *testing.T) {
	cred := UserMessage(NewCredentialError(""))
	comm := UserMessage(NewCommError(0, "", errors.New("refused")))
	unknown := UserMessage(errors.New("anything"))

	if cred == comm || cred == unknown || comm == unknown {
		t.Error("each failure category must map to a distinct message")
	}
}

func TestUserMessage_CredentialMentionsValidity(t *testing.T) {
	msg := UserMessage(NewCredentialError("rejected"))
	if !strings.Contains(msg, "not valid") {
		t.Errorf("credential message should contain 'not valid', got %q", msg)
	}
}

func TestGetHTTPStatus(t *testing.T) {
	if got := GetHTTPStatus(NewCommError(503, "", nil)); got != 503 {
		t.Errorf("GetHTTPStatus = %d, want 503", got)
	}
	if got := GetHTTPStatus(NewAPIError(400, "x", "y")); got != 400 {
		t.Errorf("GetHTTPStatus = %d, want 400", got)
	}
	if got := GetHTTPStatus(errors.New("plain")); got != 0 {
		t.Errorf("GetHTTPStatus = %d, want 0", got)
	}
}
