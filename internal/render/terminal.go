package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewTermRenderer builds the glamour renderer used for terminal output.
func NewTermRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
}

// RenderTerminal renders markdown for the terminal with panic recovery.
// If glamour fails or panics, the plain text comes back unstyled; a broken
// formula is never worth losing the answer.
func RenderTerminal(r *glamour.TermRenderer, content string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			result = content
		}
	}()

	if r != nil && content != "" {
		rendered, err := r.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

// DashboardMarkdown lays the dashboard view model out as a markdown
// document, ready for glamour (terminal) or RenderHTML (export).
func DashboardMarkdown(d Dashboard) string {
	var sb strings.Builder

	if d.Domain != "" {
		sb.WriteString("# " + d.Domain + "\n\n")
	}

	if len(d.OverviewPoints) > 0 {
		sb.WriteString("## Overview\n\n")
		for _, point := range d.OverviewPoints {
			sb.WriteString("> " + point + "\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Papers) > 0 {
		sb.WriteString("## Papers\n\n")
		for i, p := range d.Papers {
			sb.WriteString(fmt.Sprintf("%d. [%s](%s)", i+1, p.Title, p.ScholarURL))
			var meta []string
			if p.Source != "" {
				meta = append(meta, p.Source)
			}
			if p.Year != 0 {
				meta = append(meta, fmt.Sprintf("%d", p.Year))
			}
			if p.CitedByCount > 0 {
				meta = append(meta, fmt.Sprintf("cited by %d", p.CitedByCount))
			}
			if len(meta) > 0 {
				sb.WriteString(" — " + strings.Join(meta, ", "))
			}
			sb.WriteString("\n")
			if p.Summary != "" {
				sb.WriteString("   " + p.Summary + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(d.Ideas) > 0 {
		sb.WriteString("## Research Ideas\n\n")
		for _, idea := range d.Ideas {
			sb.WriteString("- " + idea + "\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Conferences) > 0 || len(d.Journals) > 0 {
		sb.WriteString("## Venues\n\n")
		if len(d.Conferences) > 0 {
			sb.WriteString("**Conferences:** " + strings.Join(d.Conferences, ", ") + "\n\n")
		}
		if len(d.Journals) > 0 {
			sb.WriteString("**Journals:** " + strings.Join(d.Journals, ", ") + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}
