package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/camila/personachat/internal/chat"
	"github.com/camila/personachat/internal/models"
	"github.com/camila/personachat/internal/render"
	"github.com/camila/personachat/internal/share"
)

// How long transient affordances stay visible
const (
	copiedFlashDuration = 2 * time.Second
	bannerDuration      = 5 * time.Second
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	responseMsg struct {
		reply string
	}
	errMsg struct {
		err error
	}
	// copiedTickMsg reverts the transient "copied" marker
	copiedTickMsg struct{}
	// bannerTickMsg dismisses the transient error banner
	bannerTickMsg struct{}
)

// Model represents the TUI state. Conversation, persona and the busy flag
// live in the chat.Session; everything here is view state.
type Model struct {
	session   *chat.Session
	modelName string

	// Share settings
	sharePhone string

	// UI components
	viewport     viewport.Model
	textarea     textarea.Model
	personaInput textarea.Model
	spinner      spinner.Model

	// State
	loading        bool // mirrors session.Busy for the dispatched call
	ready          bool
	err            error  // transient banner
	notice         string // transient status notice
	copiedIndex    int    // message index flashing "copied", -1 when none
	animationFrame int

	// Persona overlay state
	editingPersona bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model around an existing session
func NewChatModel(session *chat.Session, modelName, sharePhone string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	pi := textarea.New()
	pi.Placeholder = "Describe how the assistant should behave..."
	pi.CharLimit = 8000
	pi.ShowLineNumbers = false
	pi.SetHeight(5)

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:      session,
		modelName:    modelName,
		sharePhone:   sharePhone,
		textarea:     ta,
		personaInput: pi,
		spinner:      s,
		copiedIndex:  -1,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.editingPersona {
		return m.updatePersonaOverlay(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.personaInput.SetWidth(contentWidth - 8)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
			m.personaInput.SetWidth(contentWidth - 8)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.loading {
				return m, tea.Quit
			}

		case "ctrl+p":
			if !m.loading {
				m.editingPersona = true
				m.personaInput.SetValue(m.session.Persona())
				m.personaInput.Focus()
				m.textarea.Blur()
				return m, textarea.Blink
			}

		case "ctrl+y":
			return m.copyLastReply()

		case "ctrl+o":
			return m.shareLastReply()

		case "enter":
			if !m.loading && strings.TrimSpace(m.textarea.Value()) != "" {
				input := strings.TrimSpace(m.textarea.Value())
				if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
					return m, tea.Quit
				}

				if strings.HasPrefix(input, "/save") {
					return m.saveTranscript(strings.TrimSpace(strings.TrimPrefix(input, "/save")))
				}

				// Busy and blank gating happens in Begin; a rejected
				// submission leaves everything untouched.
				pending, ok := m.session.Begin(input)
				if !ok {
					return m, nil
				}

				m.loading = true
				m.err = nil
				m.notice = ""
				m.animationFrame = 0
				m.textarea.Reset()
				m.updateViewport()
				m.viewport.GotoBottom()

				return m, tea.Batch(
					m.generate(pending),
					m.spinner.Tick,
					animationTick(),
				)
			}
		}

	case responseMsg:
		m.loading = false
		m.session.Finish(msg.reply)
		m.updateViewport()
		m.viewport.GotoBottom()

	case errMsg:
		m.loading = false
		m.session.Fail(msg.err)
		m.err = msg.err
		m.updateViewport()
		m.viewport.GotoBottom()
		cmds = append(cmds, tea.Tick(bannerDuration, func(time.Time) tea.Msg {
			return bannerTickMsg{}
		}))

	case bannerTickMsg:
		m.err = nil

	case copiedTickMsg:
		m.copiedIndex = -1
		m.notice = ""
		m.updateViewport()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// generate dispatches the generation call for a pending submission
func (m Model) generate(pending chat.Pending) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.session.Generate(context.Background(), pending)
		if err != nil {
			return errMsg{err: err}
		}
		return responseMsg{reply: reply}
	}
}

// lastAssistantMessage returns the newest assistant message and its index
func (m Model) lastAssistantMessage() (int, models.Message, bool) {
	messages := m.session.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		if !messages[i].IsUser() {
			return i, messages[i], true
		}
	}
	return -1, models.Message{}, false
}

// copyLastReply copies the newest assistant reply to the clipboard and
// flashes a "copied" marker on it
func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	idx, msg, ok := m.lastAssistantMessage()
	if !ok {
		return m, nil
	}

	if err := clipboard.WriteAll(msg.Text); err != nil {
		m.notice = "clipboard unavailable"
	} else {
		m.copiedIndex = idx
		m.notice = "Reply copied"
	}
	m.updateViewport()

	return m, tea.Tick(copiedFlashDuration, func(time.Time) tea.Msg {
		return copiedTickMsg{}
	})
}

// shareLastReply opens a WhatsApp deep link pre-filled with the newest reply
func (m Model) shareLastReply() (tea.Model, tea.Cmd) {
	_, msg, ok := m.lastAssistantMessage()
	if !ok {
		return m, nil
	}

	link, err := share.WhatsAppLink(msg.Text, m.sharePhone)
	if err != nil {
		m.err = err
		return m, nil
	}
	if err := share.OpenInBrowser(link); err != nil {
		m.err = err
		return m, nil
	}

	m.notice = "Share link opened"
	return m, tea.Tick(copiedFlashDuration, func(time.Time) tea.Msg {
		return copiedTickMsg{}
	})
}

// saveTranscript writes the conversation to a markdown file
func (m Model) saveTranscript(path string) (tea.Model, tea.Cmd) {
	m.textarea.Reset()

	if path == "" {
		path = fmt.Sprintf("conversation-%s.md", time.Now().Format("20060102-150405"))
	}

	if err := m.session.ExportToFile(path, m.modelName); err != nil {
		m.err = err
		return m, nil
	}

	m.notice = "Saved to " + path
	return m, tea.Tick(copiedFlashDuration, func(time.Time) tea.Msg {
		return copiedTickMsg{}
	})
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.editingPersona {
		return m.renderPersonaOverlay()
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ personachat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
	}
	if persona := m.session.Persona(); persona != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			hintStyle.Render(truncate(persona, 40)),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages area
	var messagesContent string
	if m.session.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input area; the textarea is replaced by the loading animation while a
	// call is in flight, which also disables input
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Error banner
	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("⚠ Error: %v", m.err)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Welcome to personachat")
	subtitle := welcomeStyle.Width(width).Render("Start a conversation by typing a message below")
	hint := welcomeStyle.Width(width).Render("ctrl+p edits the persona; changing it starts a fresh conversation")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		hint,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Thinking ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	if m.notice != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(noticeStyle.Render("✓ " + m.notice))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Ctrl+P", "Persona"},
		{"Ctrl+Y", "Copy"},
		{"Ctrl+O", "Share"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.session.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Assistant")
			if i == m.copiedIndex {
				label += copiedMarkStyle.Render("  (copied)")
			}

			rendered, err := render.MarkdownWithWidth(msg.Text, bubbleWidth-4)
			if err != nil {
				rendered = msg.Text
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// truncate shortens s to max runes, appending an ellipsis when cut
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// RunChat starts the chat TUI around an existing session
func RunChat(session *chat.Session, modelName, sharePhone string) error {
	m := NewChatModel(session, modelName, sharePhone)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
