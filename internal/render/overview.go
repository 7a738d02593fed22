package render

import "strings"

// OverviewPoints reduces a multi-sentence overview to the single line shown
// on the dashboard. Precedence: the first non-empty line when the text is
// newline-delimited, else the first sentence (up to a period followed by
// whitespace), else the whole trimmed text. Deliberately lossy.
func OverviewPoints(overview string) []string {
	trimmed := strings.TrimSpace(overview)
	if trimmed == "" {
		return nil
	}

	if strings.Contains(trimmed, "\n") {
		for _, line := range strings.Split(trimmed, "\n") {
			if l := strings.TrimSpace(line); l != "" {
				return []string{l}
			}
		}
	}

	if sentence := firstSentence(trimmed); sentence != "" {
		return []string{sentence}
	}

	return []string{trimmed}
}

// firstSentence returns text up to and including the first period that is
// followed by whitespace, or "" when no such boundary exists.
func firstSentence(text string) string {
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '.' && isSpace(text[i+1]) {
			return text[:i+1]
		}
	}
	return ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
