// Package markup renders the restricted inline markdown dialect used in
// signal summaries. It is a closed whitelist, not a markdown parser: bold,
// italic, http(s) links and line breaks. Everything else passes through as
// escaped literal text.
package markup

import (
	"regexp"
	"strings"
)

// escaper runs before any markup is injected. Raw text never reaches the
// output unescaped; the transforms below only ever wrap already-escaped
// spans. The ampersand rule must come first.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var (
	// Bold is applied before italic so a ** span is not half-eaten by
	// the single-asterisk rule.
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*\n]+)\*`)

	// Links are recognized only with an explicit http(s) scheme; the URL
	// here is already entity-escaped, which is valid inside href.
	linkRe = regexp.MustCompile(`\[([^\[\]]+)\]\((https?://[^\s()]+)\)`)

	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
)

// Render converts summary text to safe HTML.
func Render(text string) string {
	if text == "" {
		return ""
	}

	out := escaper.Replace(text)
	out = strings.ReplaceAll(out, "\r\n", "\n")

	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = linkRe.ReplaceAllString(out, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)

	out = blankLineRe.ReplaceAllString(out, "</p><p>")
	out = strings.ReplaceAll(out, "\n", "<br>")

	return "<p>" + out + "</p>"
}
