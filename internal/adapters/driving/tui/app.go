// Package tui provides an interactive chat interface for asking
// questions about ingested documents.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
)

// answerReceived carries a completed pipeline result into the update loop.
type answerReceived struct {
	result *domain.AnswerResult
}

// answerFailed carries a pipeline failure into the update loop.
type answerFailed struct {
	err error
}

// turn is one rendered question/answer exchange.
type turn struct {
	question string
	answer   string
	sources  []domain.SourceRef
}

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	answerService driving.AnswerService
	ctx           context.Context

	styles   *Styles
	input    textinput.Model
	viewport viewport.Model

	// conversationID threads all questions of this session through one
	// conversation. Empty until the first answer comes back.
	conversationID string

	turns   []turn
	waiting bool
	err     error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat application.
func NewApp(answerService driving.AnswerService) (*App, error) {
	if answerService == nil {
		return nil, fmt.Errorf("answer service is required")
	}

	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.CharLimit = 500
	input.Focus()

	return &App{
		answerService: answerService,
		ctx:           context.Background(),
		styles:        DefaultStyles(),
		input:         input,
		width:         80,
		height:        24,
	}, nil
}

// WithContext sets the context used for answer requests.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			return a, a.submit()
		}

	case answerReceived:
		a.waiting = false
		a.err = nil
		a.conversationID = msg.result.ConversationID
		if len(a.turns) > 0 {
			last := &a.turns[len(a.turns)-1]
			last.answer = msg.result.Answer
			last.sources = msg.result.Sources
		}
		a.refreshViewport()
		return a, nil

	case answerFailed:
		a.waiting = false
		a.err = msg.err
		if len(a.turns) > 0 {
			a.turns = a.turns[:len(a.turns)-1]
		}
		a.refreshViewport()
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)

	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// submit sends the current question through the answer pipeline.
func (a *App) submit() tea.Cmd {
	question := strings.TrimSpace(a.input.Value())
	if question == "" || a.waiting {
		return nil
	}

	a.input.Reset()
	a.err = nil
	a.waiting = true
	a.turns = append(a.turns, turn{question: question})
	a.refreshViewport()

	ctx := a.ctx
	conversationID := a.conversationID
	svc := a.answerService

	return func() tea.Msg {
		result, err := svc.Answer(ctx, question, conversationID)
		if err != nil {
			return answerFailed{err: err}
		}
		return answerReceived{result: result}
	}
}

// View renders the chat.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Askdoc"))
	b.WriteString("\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.styles.InputBorder.Width(a.width - 4).Render(a.input.View()))
	b.WriteString("\n")

	switch {
	case a.err != nil:
		b.WriteString(a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err)))
	case a.waiting:
		b.WriteString(a.styles.Muted.Render("Thinking..."))
	default:
		b.WriteString(a.styles.Muted.Render("Enter to ask, Esc to quit"))
	}

	return b.String()
}

// resize fits the viewport to the terminal, leaving room for the
// header, input box and status line.
func (a *App) resize() {
	height := a.height - 6
	if height < 3 {
		height = 3
	}
	if a.viewport.Width == 0 {
		a.viewport = viewport.New(a.width, height)
	} else {
		a.viewport.Width = a.width
		a.viewport.Height = height
	}
	a.refreshViewport()
}

// refreshViewport re-renders the transcript and scrolls to the bottom.
func (a *App) refreshViewport() {
	var b strings.Builder
	for i, t := range a.turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.styles.Question.Render("You: " + t.question))
		b.WriteString("\n")
		if t.answer == "" {
			b.WriteString(a.styles.Muted.Render("..."))
			b.WriteString("\n")
			continue
		}
		b.WriteString(a.styles.Answer.Render(t.answer))
		b.WriteString("\n")
		for j, src := range t.sources {
			line := fmt.Sprintf("  [%d] %s, chunk %d", j+1, src.DocumentFilename, src.ChunkIndex+1)
			b.WriteString(a.styles.Source.Render(line))
			b.WriteString("\n")
		}
	}
	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}
