// Package tui is a terminal chat client running the pipeline in-process.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfoliochat/internal/domain/entities"
)

// ChatPort is the TUI-facing subset of the chat pipeline.
type ChatPort interface {
	Answer(ctx context.Context, question string, history *entities.ConversationHistory) (string, []entities.Document, error)
}

type answerMsg struct {
	question string
	answer   string
	sources  int
	err      error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	chat       ChatPort
	history    *entities.ConversationHistory
	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	status     string
	waiting    bool
	ready      bool
}

// New creates a new chat model over an already indexed pipeline.
func New(chat ChatPort, recordCount int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Stel een vraag over de portefeuille"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		chat:     chat,
		history:  &entities.ConversationHistory{},
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("%d panden geladen. Typ een vraag en druk op Enter.", recordCount),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := questionBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Fout: " + msg.err.Error()
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		}
		m.transcript = append(m.transcript,
			questionStyle.Render("Jij: ")+msg.question,
			answerStyle.Render("RealEstateGPT: ")+msg.answer,
		)
		m.status = fmt.Sprintf("Beantwoord met %d contextdocumenten.", msg.sources)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.input.SetValue("")
				m.waiting = true
				m.status = "Bezig met beantwoorden..."
				return m, m.ask(q)
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, sources, err := m.chat.Answer(context.Background(), question, m.history)
		return answerMsg{question: question, answer: answer, sources: len(sources), err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Laden..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("RealEstateGPT")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := questionBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "Nog geen gesprek."
	}
	return strings.Join(m.transcript, "\n\n")
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	answerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
