package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/deskboard/internal/layout"
)

// MinPaneWidth is the narrowest pane Render will draw.
const MinPaneWidth = 4

// Pane draws one widget tile: a rounded box with the title set into the top
// border. The drop side is drawn as a heavy bar replacing that border edge.
type Pane struct {
	Title    string
	Content  string
	Accent   lipgloss.Color
	Selected bool
	Focused  bool
	Dragging bool
	DropSide layout.Side
}

// Render returns exactly height lines of exactly width cells.
func (p Pane) Render(width, height int) string {
	width = max(width, MinPaneWidth)
	if height < 3 {
		height = 3
	}

	border := colorBorder
	if p.Accent != "" {
		border = p.Accent
	}
	if p.Selected {
		border = colorAccent
	}
	if p.Focused {
		border = colorSuccess
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	contentStyle := lipgloss.NewStyle().Foreground(colorText)
	if p.Dragging {
		borderStyle = borderStyle.Faint(true)
		titleStyle = titleStyle.Faint(true)
		contentStyle = contentStyle.Faint(true)
	}
	dropStyle := lipgloss.NewStyle().Foreground(colorDrop).Bold(true)

	titlePrefix := "  "
	switch {
	case p.Dragging:
		titlePrefix = "⠿ "
	case p.Focused:
		titlePrefix = "● "
	case p.Selected:
		titlePrefix = "▶ "
	}
	title := strings.TrimSpace(titlePrefix + p.Title)
	if p.Dragging {
		title += " (moving)"
	}

	innerWidth := width - 2
	contentWidth := innerWidth - 2
	titleText := " " + title + " "
	if ansi.StringWidth(titleText) > innerWidth {
		titleText = " " + ansi.Truncate(title, max(1, innerWidth-2), "") + " "
	}
	dashes := max(0, innerWidth-ansi.StringWidth(titleText))
	leftDash := min(1, dashes)
	rightDash := dashes - leftDash

	left, right := borderStyle.Render("│"), borderStyle.Render("│")
	tl, tr := borderStyle.Render("╭"), borderStyle.Render("╮")
	bl, br := borderStyle.Render("╰"), borderStyle.Render("╯")
	switch p.DropSide {
	case layout.SideLeft:
		left, tl, bl = dropStyle.Render("┃"), dropStyle.Render("┏"), dropStyle.Render("┗")
	case layout.SideRight:
		right, tr, br = dropStyle.Render("┃"), dropStyle.Render("┓"), dropStyle.Render("┛")
	}

	rows := make([]string, 0, height)
	rows = append(rows, tl+
		borderStyle.Render(strings.Repeat("─", leftDash))+
		titleStyle.Render(titleText)+
		borderStyle.Render(strings.Repeat("─", rightDash))+
		tr)

	contentLines := strings.Split(p.Content, "\n")
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		line = contentStyle.Render(ansi.Truncate(line, contentWidth, ""))
		rows = append(rows, left+" "+PadRight(line, contentWidth)+" "+right)
	}
	rows = append(rows, bl+borderStyle.Render(strings.Repeat("─", innerWidth))+br)
	return strings.Join(rows, "\n")
}

// ContentWidth is the usable width inside a pane of the given outer width.
func ContentWidth(width int) int {
	return max(1, width-4)
}

// PadRight truncates or pads s to exactly width cells.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// SplitWidths divides total cells into n near-equal parts.
func SplitWidths(total, n int) []int {
	if n <= 0 {
		return nil
	}
	total = max(total, 0)
	out := make([]int, n)
	for i := range out {
		out[i] = total / n
	}
	for i := 0; i < total%n; i++ {
		out[i]++
	}
	return out
}

// center pads each line so it sits in the middle of width cells.
func center(width int, lines ...string) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		pad := max(0, (width-ansi.StringWidth(line))/2)
		out[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(out, "\n")
}
