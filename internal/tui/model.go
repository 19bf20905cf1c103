package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"libris/internal/chat"
)

// botReplyMsg carries the finished bot turn for one send. Replies are
// appended in the order they complete, which may differ from send order.
type botReplyMsg struct {
	text string
}

type asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Model represents the chat TUI state.
type Model struct {
	client     asker
	transcript *chat.Transcript

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	inFlight int
	ready    bool

	width  int
	height int
}

// NewModel creates a chat TUI model talking to the given backend client.
func NewModel(client asker) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask for a book recommendation..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = pendingStyle

	return Model{
		client:     client,
		transcript: chat.NewTranscript(),
		textarea:   ta,
		spinner:    s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		inputHeight := 4
		statusHeight := 1

		vpHeight := m.height - headerHeight - inputHeight - statusHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			// Trim only for the emptiness check; the transcript and the
			// request payload carry the raw text.
			input := m.textarea.Value()
			if strings.TrimSpace(input) == "" {
				return m, nil
			}
			m.transcript.Append(chat.Message{Sender: chat.SenderUser, Text: input})
			m.textarea.Reset()
			m.updateViewport()
			m.viewport.GotoBottom()

			// Input stays usable while the request is in flight; each
			// reply lands as its own botReplyMsg when it completes.
			m.inFlight++
			return m, tea.Batch(m.send(input), m.spinner.Tick)
		}

	case botReplyMsg:
		m.inFlight--
		m.transcript.Append(chat.Message{Sender: chat.SenderBot, Text: msg.text})
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.inFlight > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return pendingStyle.Render("  Starting...")
	}

	header := titleStyle.Render("📚 Libris") +
		statusStyle.Render("  book recommendations")

	var status string
	if m.inFlight > 0 {
		status = m.spinner.View() + pendingStyle.Render(" waiting for reply...")
	} else {
		status = statusStyle.Render("Enter send  •  Esc quit")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewport.View(),
		m.textarea.View(),
		status,
	)
}

// send posts one query to the backend and maps the outcome to reply text.
func (m Model) send(query string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		body, err := client.Ask(context.Background(), query)
		return botReplyMsg{text: chat.Reply(body, err)}
	}
}

// updateViewport rebuilds the viewport content from the transcript.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	bubbleWidth := m.viewport.Width - 6
	var content strings.Builder

	for i, msg := range m.transcript.All() {
		if i > 0 {
			content.WriteString("\n")
		}
		if msg.Sender == chat.SenderUser {
			content.WriteString(userLabelStyle.Render("You") + "\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(msg.Text))
		} else {
			rendered := renderMarkdown(normalizeReply(msg.Text), bubbleWidth-4)
			content.WriteString(botLabelStyle.Render("Libris") + "\n")
			content.WriteString(botBubbleStyle.Width(bubbleWidth).Render(rendered))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Run starts the chat TUI against the given backend client.
func Run(client asker) error {
	p := tea.NewProgram(
		NewModel(client),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
