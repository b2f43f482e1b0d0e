// Package htmlsanitize cleans untrusted HTML before it is stored or
// rendered. Event descriptions and agendas are authored in the dashboard
// rich-text editor, so the output must keep normal formatting (headings,
// lists, tables, images) while stripping anything executable.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "mark", "sub", "sup")
	p.AllowTables()
	p.AllowAttrs("class", "style").OnElements(
		"table", "caption", "thead", "tbody", "tfoot", "tr", "td", "th")
	return p
}

// Sanitize returns the input with all unsafe HTML removed.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return policy.Sanitize(html)
}

// SanitizeToHTML sanitizes and wraps the result as template.HTML so it can
// be rendered without re-escaping.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}

// IsPlainText reports whether the input contains no HTML tags. A lone
// angle bracket ("5 < 10") does not count as markup.
func IsPlainText(s string) bool {
	lt := strings.IndexByte(s, '<')
	if lt < 0 {
		return true
	}
	return strings.IndexByte(s[lt:], '>') < 0
}

// PlainTextToHTML escapes plain text and converts newlines into <br> tags,
// wrapping the whole thing in a paragraph.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay renders stored content: plain text is escaped and
// paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
