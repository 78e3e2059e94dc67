package chat

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/camila/personachat/internal/models"
)

// ExportMarkdown renders the current conversation as a markdown transcript.
// This is a one-way export for sharing or archiving; conversations are never
// loaded back.
func (s *Session) ExportMarkdown(modelName string) string {
	messages := s.Messages()
	persona := s.Persona()

	var sb strings.Builder

	sb.WriteString("# Conversation\n\n")
	sb.WriteString("**Model:** ")
	sb.WriteString(modelName)
	sb.WriteString("\n")
	sb.WriteString("**Exported:** ")
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	if persona != "" {
		sb.WriteString("**Persona:** ")
		sb.WriteString(persona)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("**Messages:** %d\n\n---\n\n", len(messages)))

	for _, msg := range messages {
		role := "Assistant"
		if msg.Role == models.RoleUser {
			role = "User"
		}
		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString("\n\n")
		sb.WriteString(msg.Text)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// ExportToFile writes the markdown transcript to path
func (s *Session) ExportToFile(path, modelName string) error {
	transcript := s.ExportMarkdown(modelName)
	if err := os.WriteFile(path, []byte(transcript), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}
