package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/avolkov/briefgen/internal/cli/formatter"
	"github.com/avolkov/briefgen/internal/controller"
	"github.com/avolkov/briefgen/internal/domain"
)

// chatMode tracks which interaction mode the chat is in.
type chatMode int

const (
	modePrompt     chatMode = iota // Normal text input.
	modeWizard                     // huh brief form is active.
	modeGenerating                 // Research call in flight.
)

// promptResultMsg carries the outcome of an async generation.
type promptResultMsg struct {
	target domain.Target
	prompt string
	err    error
}

// chatModel is the bubbletea Model for the interactive chat REPL.
type chatModel struct {
	input textinput.Model
	form  *huh.Form // active brief wizard (nil when not in wizard mode)
	width int

	app    *App
	brief  *briefAnswers
	mode   chatMode
	target domain.Target // target of the in-flight generation

	history    []string
	historyIdx int
	draft      string // input saved while browsing history

	quitting bool
}

// newChatModel creates a new bubbletea chat model.
func newChatModel(app *App) chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 2000
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	hist := loadChatHistory()

	return chatModel{
		input:      ti,
		app:        app,
		history:    hist,
		historyIdx: len(hist),
	}
}

// runChat starts the interactive chat REPL.
func runChat(app *App) error {
	p := tea.NewProgram(newChatModel(app))
	_, err := p.Run()
	return err
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(formatter.FormatWelcome()),
	)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 12
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case promptResultMsg:
		m.mode = modePrompt
		if msg.err != nil {
			return m, tea.Println(formatErr(msg.err))
		}
		out := formatter.FormatPrompt(msg.target, msg.prompt)
		if result, ok := m.app.Controller.ResearchSummary(m.app.UserID); ok {
			out = formatter.FormatResearchSummary(result) + "\n\n" + out
		}
		return m, tea.Println(out)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeWizard:
			return m.updateWizard(msg)
		case modeGenerating:
			// Input is ignored while research runs.
			return m, nil
		default:
			return m.updatePrompt(msg)
		}
	}

	// Forward non-key messages to the huh form so it can function.
	if m.mode == modeWizard && m.form != nil {
		return m.updateWizard(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}

	switch m.mode {
	case modeWizard:
		if m.form != nil {
			return m.form.View()
		}
	case modeGenerating:
		return formatter.StyleYellow.Render("researching") + " " +
			formatter.Dim(fmt.Sprintf("building your %s prompt, this takes a few seconds…", m.target))
	}

	return m.promptPrefix() + m.input.View()
}

func (m *chatModel) promptPrefix() string {
	return formatter.StylePurple.Render("briefgen") + " " + formatter.Dim("❯") + " "
}

// ── prompt mode ─────────────────────────────────────────────────────────────

func (m chatModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if input == "" {
			return m, nil
		}
		m.addHistory(input)
		return m.execute(input)

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// execute routes one line of input: slash commands dispatch, everything
// else is collected as business context.
func (m chatModel) execute(input string) (tea.Model, tea.Cmd) {
	if !strings.HasPrefix(input, "/") {
		if err := m.app.Controller.OnMessage(m.app.UserID, input); err != nil {
			return m, tea.Println(formatErr(err))
		}
		status := m.app.Controller.OnStatus(m.app.UserID)
		return m, tea.Println(formatter.Dim(fmt.Sprintf("noted (%d turn(s) so far) — /v0 or /figma when ready", status.TranscriptLen)))
	}

	cmd, _, _ := strings.Cut(input[1:], " ")
	switch strings.ToLower(cmd) {
	case "start":
		m.app.Controller.OnStart(m.app.UserID)
		return m, tea.Println(formatter.FormatWelcome())
	case "help":
		return m, tea.Println(formatter.FormatHelp())
	case "brief":
		return m.startBriefWizard()
	case "v0":
		return m.startGeneration(domain.TargetV0)
	case "figma":
		return m.startGeneration(domain.TargetFigma)
	case "research":
		result, ok := m.app.Controller.ResearchSummary(m.app.UserID)
		if !ok {
			return m, tea.Println(formatter.Dim("No research yet. Generate a prompt first with /v0 or /figma."))
		}
		return m, tea.Println(formatter.FormatResearchSummary(result))
	case "status":
		status := m.app.Controller.OnStatus(m.app.UserID)
		return m, tea.Println(formatter.FormatStatus(status.State, status.TranscriptLen, status.HasResult))
	case "history":
		return m, tea.Println(m.renderHistory())
	case "clear":
		m.app.Controller.OnClear(m.app.UserID)
		return m, tea.Println(formatter.StyleGreen.Render("✓ ") + formatter.Dim("Session cleared. Describe a new business to start over."))
	case "quit", "exit":
		m.quitting = true
		return m, tea.Quit
	default:
		return m, tea.Println(formatter.Dim(fmt.Sprintf("Unknown command /%s — type /help for commands.", cmd)))
	}
}

// startGeneration kicks off research and composition off the UI loop.
func (m chatModel) startGeneration(target domain.Target) (tea.Model, tea.Cmd) {
	status := m.app.Controller.OnStatus(m.app.UserID)
	if status.State == domain.StateNew {
		return m, tea.Println(formatter.Dim("Nothing collected yet. Describe your business first, or run /brief."))
	}

	m.mode = modeGenerating
	m.target = target
	app := m.app
	return m, func() tea.Msg {
		prompt, err := app.Controller.OnGeneratePrompt(context.Background(), app.UserID, target)
		return promptResultMsg{target: target, prompt: prompt, err: err}
	}
}

func (m *chatModel) renderHistory() string {
	records, err := m.app.Archive.ListByUser(context.Background(), m.app.UserID, 20)
	if err != nil {
		return formatErr(fmt.Errorf("loading prompt history: %w", err))
	}
	if len(records) == 0 {
		return formatter.Dim("No prompts generated yet.")
	}
	var b strings.Builder
	b.WriteString(formatter.Header("Generated prompts") + "\n")
	for _, rec := range records {
		b.WriteString(formatter.FormatHistoryEntry(rec.CreatedAt, rec.Target, rec.Summary) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ── wizard mode ─────────────────────────────────────────────────────────────

func (m chatModel) startBriefWizard() (tea.Model, tea.Cmd) {
	m.brief = &briefAnswers{}
	m.form = newBriefForm(m.brief, m.width)
	m.mode = modeWizard
	return m, m.form.Init()
}

func (m chatModel) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the wizard.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.mode = modePrompt
		m.form = nil
		m.brief = nil
		return m, tea.Println(formatter.Dim("Cancelled."))
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.mode = modePrompt
		brief := m.brief
		m.form = nil
		m.brief = nil

		turns := brief.turns()
		if len(turns) == 0 {
			return m, tea.Batch(cmd, tea.Println(formatter.Dim("Every question was skipped; nothing to collect.")))
		}
		for _, turn := range turns {
			if err := m.app.Controller.OnMessage(m.app.UserID, turn); err != nil {
				return m, tea.Batch(cmd, tea.Println(formatErr(err)))
			}
		}
		done := tea.Println(formatter.StyleGreen.Render("✓ ") +
			formatter.Dim(fmt.Sprintf("Collected %d answer(s). Run /v0 or /figma to generate a prompt.", len(turns))))
		return m, tea.Batch(cmd, done)
	}
	return m, cmd
}

// ── input history ───────────────────────────────────────────────────────────

func (m *chatModel) addHistory(input string) {
	m.history = append(m.history, input)
	m.historyIdx = len(m.history)
	m.draft = ""
	appendChatHistory(input)
}

func (m *chatModel) historyUp() {
	if m.historyIdx == 0 || len(m.history) == 0 {
		return
	}
	if m.historyIdx == len(m.history) {
		m.draft = m.input.Value()
	}
	m.historyIdx--
	m.input.SetValue(m.history[m.historyIdx])
	m.input.CursorEnd()
}

func (m *chatModel) historyDown() {
	if m.historyIdx >= len(m.history) {
		return
	}
	m.historyIdx++
	if m.historyIdx == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[m.historyIdx])
	}
	m.input.CursorEnd()
}

func formatErr(err error) string {
	if controller.IsUserError(err) {
		return formatter.StyleYellow.Render("! ") + formatter.StyleFg.Render(err.Error())
	}
	return formatter.StyleRed.Render("✗ ") + formatter.StyleFg.Render(err.Error())
}
