// Package chat holds the conversation state and the prompt submission flow.
//
// A Session is the single owner of the conversation, the persona instruction
// and the busy flag. All mutation goes through its methods; the TUI and the
// CLI render from snapshots and never share state ambiently.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	apierrors "github.com/camila/personachat/internal/errors"
	"github.com/camila/personachat/internal/logger"
	"github.com/camila/personachat/internal/models"
)

// Generator is the consumed contract of the generation client: given a
// persona instruction and a prompt, produce a reply or an error.
type Generator interface {
	Generate(ctx context.Context, persona, prompt string) (string, error)
}

// Pending describes a dispatched generation call. The persona is snapshotted
// at dispatch time so a concurrent persona save cannot change an in-flight
// request.
type Pending struct {
	Prompt  string
	Persona string
}

// Session maintains conversation state across submissions
type Session struct {
	generator Generator

	mu       sync.Mutex // protects persona, messages, busy
	persona  string
	messages []models.Message
	busy     bool
}

// NewSession creates a session with the given generator and starting persona
func NewSession(generator Generator, persona string) *Session {
	return &Session{
		generator: generator,
		persona:   persona,
	}
}

// Begin validates a submission and, when accepted, appends the user message
// and marks the session busy. It reports false for blank input or when a
// call is already in flight; in both cases nothing changes.
func (s *Session) Begin(promptText string) (Pending, bool) {
	trimmed := strings.TrimSpace(promptText)
	if trimmed == "" {
		return Pending{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return Pending{}, false
	}

	s.messages = append(s.messages, models.NewUserMessage(trimmed))
	s.busy = true

	return Pending{Prompt: trimmed, Persona: s.persona}, true
}

// Finish settles a successful call: appends the assistant reply and clears
// the busy flag.
func (s *Session) Finish(reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, models.NewAssistantMessage(reply))
	s.busy = false
}

// Fail settles a failed call: appends an assistant message carrying the
// user-facing failure text and clears the busy flag. The conversation only
// ever holds text, never structured errors.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, models.NewAssistantMessage(apierrors.UserMessage(err)))
	s.busy = false
}

// Generate runs the generation call for a pending submission. A panicking
// generator is converted into an error so the busy flag always clears.
func (s *Session) Generate(ctx context.Context, p Pending) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return s.generator.Generate(ctx, p.Persona, p.Prompt)
}

// Submit runs the whole submission flow synchronously: validate, append the
// user message, call the generator, append the assistant message. Blank input
// and busy sessions are no-ops. The returned error reports the failure for
// banner display; the conversation has already absorbed it as text.
func (s *Session) Submit(ctx context.Context, promptText string) error {
	pending, ok := s.Begin(promptText)
	if !ok {
		return nil
	}

	reply, err := s.Generate(ctx, pending)
	if err != nil {
		logger.Warn("submission failed", "error", err)
		s.Fail(err)
		return err
	}

	s.Finish(reply)
	return nil
}

// SavePersona replaces the persona instruction wholesale and clears the
// conversation. Any string is accepted, including empty. An in-flight call is
// not cancelled; its result is appended to the fresh conversation when it
// settles, and the busy flag stays set until then.
func (s *Session) SavePersona(instruction string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persona = instruction
	s.messages = nil
}

// Persona returns the current persona instruction
func (s *Session) Persona() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persona
}

// Busy reports whether a generation call is in flight
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Messages returns a snapshot copy of the conversation
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Message, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Len returns the number of messages in the conversation
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
