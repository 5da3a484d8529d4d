package widgets

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorDrop    lipgloss.Color = "#f9e2af"
)

// Palette is the set of accent colours panes are tinted with.
var Palette = []lipgloss.Color{
	"#89b4fa", // blue
	"#a6e3a1", // green
	"#f5c2e7", // pink
	"#fab387", // peach
	"#94e2d5", // teal
	"#cba6f7", // mauve
}
