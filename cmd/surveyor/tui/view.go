package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.viewMode == HistoryView {
		help := m.styles.HelpBar.Render("enter: re-run query · c: clear history · esc: back")
		return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), help)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.styles.ResultBox.Render(m.viewport.View()),
		m.renderInput(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("Literature Surveyor")

	var badges []string
	if m.state.UseLocalLLM {
		badges = append(badges, m.styles.Badge.Render("local"))
	} else {
		badges = append(badges, m.styles.Badge.Render(m.state.Provider))
	}
	if m.state.UseLocalLLM {
		badges = append(badges, m.styles.BadgeOff.Render("provider off"))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", strings.Join(badges, " "))

	// Show which question produced the current result, even after the
	// input box has moved on.
	if q := m.state.OriginalQuestion; q != "" && !m.state.Loading() {
		line = lipgloss.JoinVertical(lipgloss.Left, line,
			m.styles.Question.Render("Q: "+q))
	} else {
		line = lipgloss.JoinVertical(lipgloss.Left, line, "")
	}

	return line
}

func (m Model) renderInput() string {
	if m.state.Loading() {
		return m.styles.InputBox.Render(m.spinner.View() + " waiting for the backend...")
	}
	return m.styles.InputBox.Render(m.textarea.View())
}

func (m Model) renderFooter() string {
	if m.validation != "" {
		return m.styles.Validation.Render(" " + m.validation)
	}
	return m.styles.HelpBar.Render(
		"enter: submit · tab: history · ctrl+l: local llm · ctrl+p: provider · ctrl+x: clear · esc: quit")
}
