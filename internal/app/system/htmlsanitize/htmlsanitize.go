// Package htmlsanitize cleans free text that arrives from the remote API
// and prepares it for display.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag and attribute.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from s and returns trimmed text with
// entities decoded. The result is safe to escape again at render time.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsPlainText reports whether s looks free of tags.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and converts line breaks to <br>, wrapped in
// a single paragraph.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	return "<p>" + strings.Join(lines, "<br>") + "</p>"
}

// PrepareForDisplay strips markup from s and returns it as HTML that
// templates may emit without escaping.
func PrepareForDisplay(s string) template.HTML {
	return template.HTML(PlainTextToHTML(PlainText(s)))
}
