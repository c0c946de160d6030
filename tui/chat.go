// ABOUTME: Terminal chat interface for the CRM assistant
// ABOUTME: Bubbletea model wiring user input to the agent pipeline
package tui

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zeroclick/crm/agent"
	"github.com/zeroclick/crm/directory"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type responseMsg struct {
	text string
	err  error
}

// Model is the bubbletea model for the chat view.
type Model struct {
	agent    *agent.Agent
	input    textinput.Model
	messages []string
	waiting  bool
	width    int
	height   int
}

// NewModel creates a chat model backed by the local database.
func NewModel(database *sql.DB) Model {
	dir := directory.NewSQLDirectory(database)
	crmAgent := agent.New(database, dir, agent.GatewayFromEnv(context.Background()))

	input := textinput.New()
	input.Placeholder = "Ask about your connected CRM data..."
	input.Focus()
	input.CharLimit = 500

	return Model{
		agent: crmAgent,
		input: input,
		width: 80,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) ask(query string) tea.Cmd {
	return func() tea.Msg {
		text, err := m.agent.Chat(context.Background(), query, nil)
		return responseMsg{text: text, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case responseMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages, errorStyle.Render("error: "+msg.err.Error()))
		} else {
			m.messages = append(m.messages, assistantStyle.Render(msg.text))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.waiting {
				return m, nil
			}
			m.messages = append(m.messages, userStyle.Render("> "+query))
			m.input.Reset()
			m.waiting = true
			return m, m.ask(query)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(userStyle.Render("Zero-Click CRM Assistant"))
	b.WriteString("\n\n")

	for _, msg := range m.messages {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}

	if m.waiting {
		b.WriteString(helpStyle.Render("thinking..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: send • esc: quit"))
	return b.String()
}

// Run starts the chat TUI.
func Run(database *sql.DB) error {
	p := tea.NewProgram(NewModel(database), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
