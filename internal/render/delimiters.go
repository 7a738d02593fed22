package render

import "strings"

// NormalizeMathDelimiters rewrites the LaTeX delimiters the backend emits
// into the dollar forms the markdown renderer understands. The backend
// sometimes double-escapes delimiters (a literal backslash before \[ etc.),
// so the passes run in a fixed order: collapse doubled escapes first, then
// rewrite matched block delimiters, then matched inline delimiters. Later
// passes depend on the earlier ones having already un-escaped the text.
// The transform is idempotent: dollar-form input passes through unchanged,
// and unmatched delimiters are left alone.
func NormalizeMathDelimiters(text string) string {
	// Pass 1: collapse doubled block escapes.
	s := strings.ReplaceAll(text, `\\[`, `\[`)
	s = strings.ReplaceAll(s, `\\]`, `\]`)

	// Pass 2: collapse doubled inline escapes.
	s = strings.ReplaceAll(s, `\\(`, `\(`)
	s = strings.ReplaceAll(s, `\\)`, `\)`)

	// Pass 3: matched \[...\] becomes display math on its own lines.
	s = rewriteDelimited(s, `\[`, `\]`, func(inner string) string {
		return "$$\n" + strings.TrimSpace(inner) + "\n$$"
	})

	// Pass 4: matched \(...\) becomes inline math.
	s = rewriteDelimited(s, `\(`, `\)`, func(inner string) string {
		return "$" + strings.TrimSpace(inner) + "$"
	})

	return s
}

// rewriteDelimited replaces every matched opener...closer pair with
// replace(inner). An opener without a closer is copied through untouched.
func rewriteDelimited(s, opener, closer string, replace func(string) string) string {
	var sb strings.Builder
	for {
		start := strings.Index(s, opener)
		if start < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		end := strings.Index(s[start+len(opener):], closer)
		if end < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		end += start + len(opener)

		sb.WriteString(s[:start])
		sb.WriteString(replace(s[start+len(opener) : end]))
		s = s[end+len(closer):]
	}
}
