package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	apierrors "github.com/camila/personachat/internal/errors"
	"github.com/camila/personachat/internal/models"
)

// stubGenerator is a scriptable Generator for tests
type stubGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	panics  bool
	calls   int
	gate    chan struct{} // when non-nil, Generate blocks until closed
	started chan struct{} // closed when Generate is entered
	onCall  func()
}

func (g *stubGenerator) Generate(ctx context.Context, persona, prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	onCall := g.onCall
	g.mu.Unlock()

	if g.started != nil {
		close(g.started)
		g.started = nil
	}
	if onCall != nil {
		onCall()
	}
	if g.gate != nil {
		<-g.gate
	}
	if g.panics {
		panic("generator exploded")
	}
	return g.reply, g.err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestSubmit_Success(t *testing.T) {
	gen := &stubGenerator{reply: "Hi there!"}
	s := NewSession(gen, "Be helpful.")

	if err := s.Submit(context.Background(), "Hello"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	messages := s.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != models.RoleUser || messages[0].Text != "Hello" {
		t.Errorf("unexpected user message: %+v", messages[0])
	}
	if messages[1].Role != models.RoleAssistant || messages[1].Text != "Hi there!" {
		t.Errorf("unexpected assistant message: %+v", messages[1])
	}
	if s.Busy() {
		t.Error("session should not be busy after settle")
	}
}

func TestSubmit_TrimsPrompt(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	s := NewSession(gen, "")

	if err := s.Submit(context.Background(), "  Hello  \n"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if got := s.Messages()[0].Text; got != "Hello" {
		t.Errorf("expected trimmed prompt, got %q", got)
	}
}

func TestSubmit_BlankIsNoOp(t *testing.T) {
	gen := &stubGenerator{reply: "should not be called"}
	s := NewSession(gen, "")

	for _, input := range []string{"", "  ", "\n\t  "} {
		if err := s.Submit(context.Background(), input); err != nil {
			t.Errorf("Submit(%q) returned error: %v", input, err)
		}
	}

	if s.Len() != 0 {
		t.Errorf("conversation should be empty, has %d messages", s.Len())
	}
	if s.Busy() {
		t.Error("busy flag should remain false")
	}
	if gen.callCount() != 0 {
		t.Errorf("generator should not be called, got %d calls", gen.callCount())
	}
}

func TestSubmit_WhileBusyIsNoOp(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	gen := &stubGenerator{reply: "slow reply", gate: gate, started: started}
	s := NewSession(gen, "")

	done := make(chan error, 1)
	go func() {
		done <- s.Submit(context.Background(), "first")
	}()

	<-started
	if !s.Busy() {
		t.Fatal("session should be busy while the call is in flight")
	}

	// A second submission while busy changes nothing
	if err := s.Submit(context.Background(), "second"); err != nil {
		t.Errorf("busy Submit returned error: %v", err)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("expected only the first user message, got %d messages", got)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	if gen.callCount() != 1 {
		t.Errorf("expected 1 generator call, got %d", gen.callCount())
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 messages after settle, got %d", s.Len())
	}
	if s.Busy() {
		t.Error("busy flag should clear after settle")
	}
}

func TestSubmit_BusyDuringCall(t *testing.T) {
	s := NewSession(nil, "")
	gen := &stubGenerator{reply: "ok"}
	gen.onCall = func() {
		if !s.Busy() {
			t.Error("busy flag should be set during the generation call")
		}
	}
	s.generator = gen

	if err := s.Submit(context.Background(), "ping"); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if s.Busy() {
		t.Error("busy flag should clear after settle")
	}
}

func TestSubmit_FailureAppendsMappedText(t *testing.T) {
	gen := &stubGenerator{err: apierrors.NewCredentialError("API key not valid")}
	s := NewSession(gen, "")

	err := s.Submit(context.Background(), "X")
	if err == nil {
		t.Fatal("expected Submit to report the failure")
	}

	messages := s.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages on failure, got %d", len(messages))
	}
	if messages[0].Role != models.RoleUser || messages[0].Text != "X" {
		t.Errorf("unexpected user message: %+v", messages[0])
	}
	if messages[1].Role != models.RoleAssistant {
		t.Errorf("second message should be from the assistant, got %s", messages[1].Role)
	}
	if !strings.Contains(messages[1].Text, "not valid") {
		t.Errorf("credential failure text should mention the invalid key, got %q", messages[1].Text)
	}
	if s.Busy() {
		t.Error("busy flag should clear after a failing call")
	}
}

func TestSubmit_CommFailureMappedDistinctly(t *testing.T) {
	credGen := &stubGenerator{err: apierrors.NewCredentialError("")}
	commGen := &stubGenerator{err: apierrors.NewCommError(0, "", errors.New("dial tcp: timeout"))}

	credSession := NewSession(credGen, "")
	commSession := NewSession(commGen, "")

	_ = credSession.Submit(context.Background(), "a")
	_ = commSession.Submit(context.Background(), "a")

	credText := credSession.Messages()[1].Text
	commText := commSession.Messages()[1].Text
	if credText == commText {
		t.Error("credential and communication failures should map to distinct texts")
	}
}

func TestSubmit_PanickingGeneratorSettles(t *testing.T) {
	gen := &stubGenerator{panics: true}
	s := NewSession(gen, "")

	err := s.Submit(context.Background(), "boom")
	if err == nil {
		t.Fatal("expected an error from a panicking generator")
	}

	if s.Busy() {
		t.Error("busy flag must clear even when the generator panics")
	}
	if s.Len() != 2 {
		t.Errorf("expected user + failure message, got %d messages", s.Len())
	}
}

func TestSavePersona_ClearsConversation(t *testing.T) {
	gen := &stubGenerator{reply: "reply"}
	s := NewSession(gen, "old persona")

	_ = s.Submit(context.Background(), "one")
	_ = s.Submit(context.Background(), "two")
	if s.Len() != 4 {
		t.Fatalf("expected 4 messages, got %d", s.Len())
	}

	s.SavePersona("Be terse.")

	if s.Len() != 0 {
		t.Errorf("conversation should be empty after persona save, has %d", s.Len())
	}
	if got := s.Persona(); got != "Be terse." {
		t.Errorf("persona = %q, want %q", got, "Be terse.")
	}
}

func TestSavePersona_AcceptsEmptyString(t *testing.T) {
	s := NewSession(&stubGenerator{}, "something")

	s.SavePersona("")

	if got := s.Persona(); got != "" {
		t.Errorf("persona = %q, want empty", got)
	}
}

func TestSavePersona_InFlightResultStillAppends(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	gen := &stubGenerator{reply: "stale reply", gate: gate, started: started}
	s := NewSession(gen, "old")

	done := make(chan error, 1)
	go func() {
		done <- s.Submit(context.Background(), "question")
	}()
	<-started

	// Persona change mid-flight clears the conversation but does not cancel
	s.SavePersona("new persona")
	if s.Len() != 0 {
		t.Fatalf("conversation should be cleared, has %d messages", s.Len())
	}
	if !s.Busy() {
		t.Error("the in-flight call keeps the session busy until it settles")
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Always-append: the stale result lands in the fresh conversation
	messages := s.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected the settled reply only, got %d messages", len(messages))
	}
	if messages[0].Role != models.RoleAssistant || messages[0].Text != "stale reply" {
		t.Errorf("unexpected message: %+v", messages[0])
	}
	if s.Busy() {
		t.Error("busy flag should clear after settle")
	}
}

func TestBegin_SnapshotsPersona(t *testing.T) {
	s := NewSession(&stubGenerator{}, "first")

	pending, ok := s.Begin("hello")
	if !ok {
		t.Fatal("Begin should accept the submission")
	}

	s.SavePersona("second")

	if pending.Persona != "first" {
		t.Errorf("pending persona = %q, want the value at dispatch time", pending.Persona)
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	gen := &stubGenerator{reply: "reply"}
	s := NewSession(gen, "")
	_ = s.Submit(context.Background(), "hi")

	snapshot := s.Messages()
	snapshot[0] = models.NewUserMessage("mutated")

	if s.Messages()[0].Text != "hi" {
		t.Error("mutating a snapshot must not affect the session")
	}
}
