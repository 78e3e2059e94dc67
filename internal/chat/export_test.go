package chat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportMarkdown(t *testing.T) {
	gen := &stubGenerator{reply: "Four."}
	s := NewSession(gen, "Be terse.")
	_ = s.Submit(context.Background(), "What is 2+2?")

	transcript := s.ExportMarkdown("gemini-2.5-flash")

	for _, want := range []string{
		"# Conversation",
		"**Model:** gemini-2.5-flash",
		"**Persona:** Be terse.",
		"## User",
		"What is 2+2?",
		"## Assistant",
		"Four.",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}

func TestExportMarkdown_EmptyPersonaOmitted(t *testing.T) {
	s := NewSession(&stubGenerator{reply: "ok"}, "")
	_ = s.Submit(context.Background(), "hi")

	if strings.Contains(s.ExportMarkdown("m"), "**Persona:**") {
		t.Error("empty persona should not appear in the transcript")
	}
}

func TestExportToFile(t *testing.T) {
	s := NewSession(&stubGenerator{reply: "ok"}, "")
	_ = s.Submit(context.Background(), "hi")

	path := filepath.Join(t.TempDir(), "transcript.md")
	if err := s.ExportToFile(path, "gemini-2.5-flash"); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read transcript: %v", err)
	}
	if !strings.Contains(string(data), "hi") {
		t.Error("transcript file missing conversation content")
	}
}
