package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"surveyor/internal/render"
)

// Update is the single state-transition point for the interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case generateResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 3
	inputHeight := 4
	footerHeight := 2
	viewportHeight := m.height - headerHeight - inputHeight - footerHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}

	m.textarea.SetWidth(m.width - 4)
	m.list.SetSize(m.width, m.height-2)

	// Re-wrap rendered markdown to the new width.
	if r, err := render.NewTermRenderer(m.width - 4); err == nil {
		m.renderer = r
		m.refreshResultView()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewMode == HistoryView {
		return m.handleHistoryKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit(m.textarea.Value())

	case tea.KeyTab:
		m.viewMode = HistoryView
		return m, nil

	case tea.KeyCtrlL:
		if !m.state.Loading() {
			m.state.UseLocalLLM = !m.state.UseLocalLLM
		}
		return m, nil

	case tea.KeyCtrlP:
		if !m.state.Loading() {
			m.state.Provider = nextProvider(m.state.Provider)
		}
		return m, nil

	case tea.KeyCtrlX:
		// Clear: fully reset the interaction state and the input box.
		m.state = m.state.Reset()
		m.validation = ""
		m.textarea.Reset()
		m.refreshResultView()
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case msg.Type == tea.KeyEsc, msg.Type == tea.KeyTab:
		m.viewMode = QueryView
		return m, nil

	case msg.Type == tea.KeyEnter:
		if item, ok := m.list.SelectedItem().(historyItem); ok {
			m.viewMode = QueryView
			m.textarea.SetValue(item.entry.Query)
			return m.submit(item.entry.Query)
		}
		return m, nil

	case msg.String() == "c":
		if m.dispatcher != nil && m.dispatcher.History() != nil {
			m.dispatcher.History().Clear()
			m.reloadHistoryItems()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// submit starts a generation request unless one is already in flight or
// the question is empty.
func (m Model) submit(question string) (tea.Model, tea.Cmd) {
	if m.state.Loading() {
		return m, nil
	}

	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		m.validation = "Please enter a question."
		return m, nil
	}

	m.validation = ""
	m.state = m.state.BeginSubmit(trimmed)
	m.textarea.Blur()
	m.refreshResultView()
	return m, tea.Batch(m.submitCmd(trimmed), m.spinner.Tick)
}

func (m Model) handleResult(msg generateResultMsg) (tea.Model, tea.Cmd) {
	m.state = m.state.Settle(msg.resp, msg.err)
	m.textarea.Focus()
	m.reloadHistoryItems()
	m.refreshResultView()
	return m, nil
}

// refreshResultView renders the settled state into the viewport.
func (m *Model) refreshResultView() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.resultContent())
	m.viewport.GotoTop()
}

// resultContent derives the display from the interaction state. The modes
// are mutually exclusive: loading, error, structured result, legacy
// result, empty.
func (m *Model) resultContent() string {
	s := m.state
	switch {
	case s.Loading():
		return m.styles.Muted.Render("Surveying the literature...")

	case s.Err != nil:
		return m.styles.Error.Render("Error: " + s.Err.Error())

	case s.Response != nil && s.Response.IsStructured():
		md := render.DashboardMarkdown(render.BuildDashboard(s.Response.StructuredData))
		return render.RenderTerminal(m.renderer, md)

	case s.Response != nil:
		md := render.NormalizeMathDelimiters(render.FlattenContent(s.Response))
		return render.RenderTerminal(m.renderer, md)

	default:
		return m.styles.Muted.Render("Submit a question to generate a literature survey.")
	}
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.viewMode == QueryView && !m.state.Loading() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func nextProvider(current string) string {
	providers := []string{"gemini", "mistral"}
	for i, p := range providers {
		if p == current {
			return providers[(i+1)%len(providers)]
		}
	}
	return providers[0]
}
