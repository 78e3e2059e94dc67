package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updatePersonaOverlay handles updates while the persona editor is open
func (m Model) updatePersonaOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.personaInput.SetWidth(m.width - 12)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// Cancel without touching the session
			m.editingPersona = false
			m.personaInput.Blur()
			m.textarea.Focus()
			return m, textarea.Blink

		case "ctrl+s":
			// Saving replaces the instruction wholesale, empty included, and
			// clears the conversation. An in-flight call keeps running; its
			// result lands in the fresh conversation when it settles.
			m.session.SavePersona(m.personaInput.Value())
			m.editingPersona = false
			m.personaInput.Blur()
			m.textarea.Focus()
			m.updateViewport()
			return m, textarea.Blink
		}
	}

	m.personaInput, cmd = m.personaInput.Update(msg)
	return m, cmd
}

// renderPersonaOverlay renders the persona editing overlay
func (m Model) renderPersonaOverlay() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	content.WriteString(overlayTitleStyle.Render("✎ Edit persona"))
	content.WriteString("\n")
	content.WriteString(hintStyle.Render("Saving starts a fresh conversation."))
	content.WriteString("\n\n")
	content.WriteString(m.personaInput.View())
	content.WriteString("\n\n")

	shortcuts := []string{
		statusKeyStyle.Render("Ctrl+S") + statusDescStyle.Render(" Save"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	box := overlayBoxStyle.Width(width).Render(content.String())

	// Center the overlay in the window
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
