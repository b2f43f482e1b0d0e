package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize_KeepsEditorFormatting(t *testing.T) {
	in := `<h2>Open Mic Night</h2><p>Bring your <strong>own</strong> material.</p>` +
		`<ul><li>Poetry</li><li>Stand-up</li></ul>` +
		`<table class="schedule"><tr><td>6pm</td><td>Doors</td></tr></table>` +
		`<p><u>Underlined</u> and <mark>highlighted</mark>.</p>`
	out := Sanitize(in)

	for _, want := range []string{"<h2>", "<strong>", "<ul>", "<li>", "<table", "<td>", "<u>", "<mark>"} {
		if !strings.Contains(out, want) {
			t.Errorf("sanitized output lost %s:\n%s", want, out)
		}
	}
}

func TestSanitize_StripsScriptsAndHandlers(t *testing.T) {
	cases := []struct {
		name string
		in   string
		bad  string
	}{
		{"script tag", `<p>Agenda</p><script>fetch("/admin")</script>`, "<script"},
		{"event handler", `<img src="x" onerror="alert(1)">`, "onerror"},
		{"javascript url", `<a href="javascript:alert(1)">details</a>`, "javascript:"},
		{"iframe", `<iframe src="https://evil.example"></iframe>`, "<iframe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Sanitize(tc.in)
			if strings.Contains(out, tc.bad) {
				t.Errorf("sanitized output still contains %q:\n%s", tc.bad, out)
			}
		})
	}
}

func TestSanitize_Empty(t *testing.T) {
	if out := Sanitize(""); out != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", out)
	}
}

func TestIsPlainText(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"A night of poetry and music", true},
		{"doors open 6 < 7 pm", true},
		{"", true},
		{"<p>formatted</p>", false},
		{"before <b>bold</b> after", false},
	}
	for _, tc := range cases {
		if got := IsPlainText(tc.in); got != tc.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	got := PlainTextToHTML("Open mic rules:\n1. Sign up early\n2. Five minutes each")
	want := "<p>Open mic rules:<br>1. Sign up early<br>2. Five minutes each</p>"
	if got != want {
		t.Errorf("PlainTextToHTML = %q, want %q", got, want)
	}

	if got := PlainTextToHTML("tickets < passes"); !strings.Contains(got, "&lt;") {
		t.Errorf("angle brackets not escaped: %q", got)
	}
	if got := PlainTextToHTML(""); got != "" {
		t.Errorf("PlainTextToHTML(\"\") = %q, want empty", got)
	}
}

func TestPrepareForDisplay(t *testing.T) {
	// Plain text from the mobile form: escaped and paragraph-wrapped.
	plain := PrepareForDisplay("Sketching session by the lake\nBring pencils")
	if !strings.Contains(string(plain), "<br>") || !strings.HasPrefix(string(plain), "<p>") {
		t.Errorf("plain text not wrapped: %q", plain)
	}

	// Rich text from the dashboard editor: sanitized, not double-escaped.
	rich := PrepareForDisplay(`<p>Agenda</p><script>alert(1)</script>`)
	if strings.Contains(string(rich), "<script") {
		t.Errorf("script survived: %q", rich)
	}
	if !strings.Contains(string(rich), "<p>Agenda</p>") {
		t.Errorf("markup lost: %q", rich)
	}

	if out := PrepareForDisplay(""); out != "" {
		t.Errorf("PrepareForDisplay(\"\") = %q, want empty", out)
	}
}
