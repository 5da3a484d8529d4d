package widgets

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// Text displays the descriptor's text as markdown. It has no state beyond
// a render cache.
type Text struct {
	id    string
	text  string
	style string

	cachedWidth int
	cached      string
}

func NewText(id, text string, env Env) *Text {
	return &Text{id: id, text: text, style: env.MarkdownStyle}
}

func (t *Text) ID() string                       { return t.id }
func (t *Text) Title() string                    { return "Text" }
func (t *Text) Init() tea.Cmd                    { return nil }
func (t *Text) Update(tea.Msg) (Widget, tea.Cmd) { return t, nil }
func (t *Text) Dispose()                         {}
func (t *Text) Content() string                  { return t.text }

func (t *Text) View(width int) string {
	if width <= 0 {
		return ""
	}
	if t.cachedWidth == width && t.cached != "" {
		return t.cached
	}
	t.cached = t.render(width)
	t.cachedWidth = width
	return t.cached
}

func (t *Text) render(width int) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch t.style {
	case "", "auto":
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(t.style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return wrap(t.text, width)
	}
	out, err := r.Render(t.text)
	if err != nil {
		return wrap(t.text, width)
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(trimLeadingSpaces(line, 2), " ")
	}
	return strings.Join(lines, "\n")
}

// trimLeadingSpaces drops up to n leading spaces glamour adds as margin.
func trimLeadingSpaces(s string, n int) string {
	for i := 0; i < n && strings.HasPrefix(s, " "); i++ {
		s = s[1:]
	}
	return s
}

// wrap is the plain text fallback when markdown rendering fails.
func wrap(text string, width int) string {
	return ansi.Wordwrap(text, width, "")
}
