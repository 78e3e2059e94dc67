package models

import "testing"

func TestModelFromName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"gemini-2.5-flash", "gemini-2.5-flash"},
		{"flash", "gemini-2.5-flash"},
		{"pro", "gemini-2.5-pro"},
		{"flash-lite", "gemini-2.5-flash-lite"},
		{"", DefaultModel.Name},
		// Unknown names pass through so new models work without a release
		{"gemini-9.9-experimental", "gemini-9.9-experimental"},
	}

	for _, tt := range tests {
		if got := ModelFromName(tt.input); got.Name != tt.want {
			t.Errorf("ModelFromName(%q) = %q, want %q", tt.input, got.Name, tt.want)
		}
	}
}

func TestAllModelsHaveNames(t *testing.T) {
	for _, m := range AllModels() {
		if m.Name == "" || m.Alias == "" {
			t.Errorf("model %+v missing name or alias", m)
		}
	}
}

func TestMessageHelpers(t *testing.T) {
	user := NewUserMessage("hi")
	if user.Role != RoleUser || user.Text != "hi" || !user.IsUser() {
		t.Errorf("unexpected user message: %+v", user)
	}

	assistant := NewAssistantMessage("hello")
	if assistant.Role != RoleAssistant || assistant.IsUser() {
		t.Errorf("unexpected assistant message: %+v", assistant)
	}
}
