package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/deskboard/internal/dashboard"
	"github.com/jask/deskboard/internal/layout"
	"github.com/jask/deskboard/internal/widgets"
)

const (
	gridGap        = 1
	minPaneHeight  = 5
	fallbackWidth  = 80
	headerTitle    = "Dashboard"
	editBadgeLabel = " EDIT "
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	badgeStyle  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#1e1e2e")).
			Background(lipgloss.Color("#f9e2af"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)

// View renders the header, the widget grid and the footer. It also records
// the screen bounds of every slot for mouse hit testing, so it needs the
// pointer receiver.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = fallbackWidth
	}

	header := a.renderHeader()
	top := lipgloss.Height(header) + 1

	grid := a.renderGrid(width, top)
	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, "", grid, "", footer)
}

func (a *App) renderHeader() string {
	title := headerStyle.Render(headerTitle)
	if a.board.Editing() {
		title += " " + badgeStyle.Render(editBadgeLabel)
	}
	return title
}

func (a *App) renderFooter() string {
	var b strings.Builder
	if a.status != "" {
		if a.statusErr {
			b.WriteString(errorStyle.Render(a.status))
		} else {
			b.WriteString(statusStyle.Render(a.status))
		}
		b.WriteString("\n")
	}
	a.keys.editing = a.board.Editing()
	a.keys.grabbing = a.grabbing
	a.keys.focused = a.capturing()
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// renderGrid lays the slots out row by row. Rows take the height of their
// tallest pane; a blank line separates rows.
func (a *App) renderGrid(width, top int) string {
	l := a.board.Layout()
	cols := a.opts.Columns
	// panes never draw narrower than MinPaneWidth, so the hit-test bounds
	// use the clamped width too
	widths := widgets.SplitWidths(width-gridGap*(cols-1), cols)
	for i := range widths {
		widths[i] = max(widths[i], widgets.MinPaneWidth)
	}
	a.slots = a.slots[:0]

	var rows []string
	y := top
	for start := 0; start < len(l); start += cols {
		end := min(start+cols, len(l))
		contents := make([]string, end-start)
		height := minPaneHeight
		for i := start; i < end; i++ {
			contents[i-start] = a.content(l[i], widgets.ContentWidth(widths[i-start]))
			height = max(height, lipgloss.Height(contents[i-start])+2)
		}

		cells := make([]string, 0, 2*(end-start))
		x := 0
		for i := start; i < end; i++ {
			w := widths[i-start]
			if i > start {
				cells = append(cells, strings.Repeat(" ", gridGap))
				x += gridGap
			}
			cells = append(cells, a.renderSlot(i, l[i], contents[i-start], w, height))
			a.slots = append(a.slots, slot{
				id:     l[i].ID,
				bounds: dashboard.Bounds{X: x, Y: y, Width: w, Height: height},
			})
			x += w
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		y += height + 1
	}
	return strings.Join(rows, "\n\n")
}

func (a *App) content(d layout.Descriptor, width int) string {
	w, ok := a.instances[d.ID]
	if !ok {
		return ""
	}
	return w.View(width)
}

// renderSlot draws one pane. A descriptor with no instance keeps its cell
// but renders blank.
func (a *App) renderSlot(i int, d layout.Descriptor, content string, width, height int) string {
	w, ok := a.instances[d.ID]
	if !ok {
		return blank(width, height)
	}
	st := a.board.SlotState(d.ID)
	return widgets.Pane{
		Title:    w.Title(),
		Content:  content,
		Accent:   widgets.Palette[layout.AccentIndex(d.ID, len(widgets.Palette))],
		Selected: a.board.Editing() && a.cursor == i,
		Focused:  a.focus == d.ID && !a.board.Editing(),
		Dragging: st.Dragging,
		DropSide: st.DropSide,
	}.Render(width, height)
}

func blank(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
