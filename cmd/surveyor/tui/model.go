package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"surveyor/internal/api"
	"surveyor/internal/config"
	"surveyor/internal/dispatch"
	"surveyor/internal/history"
)

// ViewMode determines which pane is focused.
type ViewMode int

const (
	QueryView ViewMode = iota
	HistoryView
)

// generateResultMsg settles a submission.
type generateResultMsg struct {
	resp *api.GenerateResponse
	err  error
}

// historyItem adapts a history entry to the list component.
type historyItem struct {
	entry history.Entry
}

func (i historyItem) Title() string { return i.entry.Query }

func (i historyItem) Description() string {
	desc := i.entry.Date.Local().Format("2006-01-02 15:04")
	preview := i.entry.SummaryPreview
	if idx := strings.IndexByte(preview, '\n'); idx >= 0 {
		preview = preview[:idx]
	}
	if preview != "" {
		desc += "  " + preview
	}
	return desc
}

func (i historyItem) FilterValue() string { return i.entry.Query }

// Model is the bubbletea model for the interactive interface.
type Model struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	list     list.Model
	renderer *glamour.TermRenderer
	styles   Styles

	viewMode ViewMode

	// Interaction state; all transitions go through Update.
	state      dispatch.State
	validation string

	dispatcher *dispatch.Dispatcher

	width  int
	height int
	ready  bool
}

// New creates the initial model.
func New(d *dispatch.Dispatcher, cfg *config.Config) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about a research domain..."
	ta.Focus()
	ta.SetHeight(2)
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	delegate := list.NewDefaultDelegate()
	historyList := list.New(nil, delegate, 0, 0)
	historyList.Title = "Query History"
	historyList.SetShowStatusBar(false)

	m := Model{
		textarea:   ta,
		spinner:    sp,
		list:       historyList,
		styles:     DefaultStyles(),
		dispatcher: d,
		state: dispatch.State{
			UseLocalLLM: cfg.Backend.LocalLLM,
			Provider:    cfg.Backend.Provider,
		},
	}
	m.reloadHistoryItems()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// submitCmd runs the generation request off the UI loop. The submit
// control is disabled while one is in flight, so at most one of these is
// pending at a time.
func (m Model) submitCmd(question string) tea.Cmd {
	d := m.dispatcher
	local := m.state.UseLocalLLM
	provider := m.state.Provider
	return func() tea.Msg {
		resp, err := d.Run(context.Background(), question, local, provider)
		return generateResultMsg{resp: resp, err: err}
	}
}

func (m *Model) reloadHistoryItems() {
	if m.dispatcher == nil || m.dispatcher.History() == nil {
		return
	}
	entries := m.dispatcher.History().Entries()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{entry: e})
	}
	m.list.SetItems(items)
}

// Run starts the interactive program.
func Run(d *dispatch.Dispatcher, cfg *config.Config) error {
	p := tea.NewProgram(New(d, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
