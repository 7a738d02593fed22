package render

import (
	"bytes"
	"html"
	"regexp"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// mathmlElements is the MathML tag set the math renderer emits. The
// sanitizer must admit every one of these or formulas are silently stripped
// from the output; treat this list as a contract, not an implementation
// detail.
var mathmlElements = []string{
	"math", "semantics", "annotation",
	"mrow", "mi", "mn", "mo", "mtext", "mspace",
	"mfrac", "msqrt", "mroot",
	"msub", "msup", "msubsup",
	"munder", "mover", "munderover",
	"mtable", "mtr", "mtd",
	"mstyle", "mpadded", "mphantom", "menclose",
}

// mathmlAttrs are the MathML presentation attributes allowed on the
// elements above.
var mathmlAttrs = []string{
	"mathvariant", "mathsize", "mathcolor", "mathbackground",
	"display", "displaystyle", "scriptlevel",
}

var mathClassRe = regexp.MustCompile(`^math(\s+(inline|display))?$`)

// markdown converts GitHub-flavored markdown to HTML. Soft line breaks are
// significant and LaTeX math spans ($...$, $$...$$) are recognized; the
// math extension renders malformed math best-effort rather than failing
// the whole parse. Raw HTML passes through unmodified: if goldmark
// neutered it instead, a script's body would survive as visible text,
// so the sanitizer must see the real tags. bluemonday is the sole XSS
// boundary.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, mathjax.MathJax),
	goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps(), goldmarkhtml.WithUnsafe()),
)

// sanitizer is the allow-listed XSS boundary every rendered HTML fragment
// passes through. It extends the default user-content policy with the
// MathML contract above.
var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements(mathmlElements...)
	// AllowElements alone is not enough: bluemonday drops an allowed
	// element that carries no attributes unless the policy says bare
	// occurrences are fine, and most MathML tags appear bare.
	p.AllowNoAttrs().OnElements(mathmlElements...)
	for _, attr := range mathmlAttrs {
		p.AllowAttrs(attr).OnElements(mathmlElements...)
	}
	// The math extension wraps formulas in classed spans and divs.
	p.AllowAttrs("class").Matching(mathClassRe).OnElements("span", "div")
	return p
}

// RenderHTML runs the legacy pipeline on markdown text: delimiter
// normalization, markdown parse, sanitization. It always returns renderable
// HTML; a parse failure degrades to the escaped source text instead of
// propagating an error.
func RenderHTML(text string) string {
	normalized := NormalizeMathDelimiters(text)

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(normalized), &buf); err != nil {
		return sanitizer.Sanitize("<pre>" + html.EscapeString(normalized) + "</pre>")
	}
	return sanitizer.Sanitize(buf.String())
}

// SanitizeHTML applies the allow-list policy to already-rendered HTML.
func SanitizeHTML(rendered string) string {
	return sanitizer.Sanitize(rendered)
}
