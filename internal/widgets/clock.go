package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	clockTimeStyle = lipgloss.NewStyle().Bold(true)
	clockDateStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Clock shows the current time and date, refreshed by its own ticker.
type Clock struct {
	id         string
	now        time.Time
	loc        *time.Location
	timeFormat string
	dateFormat string
	tick       *ticker
}

func NewClock(id string, env Env) *Clock {
	loc := env.location()
	return &Clock{
		id:         id,
		now:        env.now().In(loc),
		loc:        loc,
		timeFormat: env.TimeFormat,
		dateFormat: env.DateFormat,
		tick:       newTicker(env.ClockInterval),
	}
}

func (c *Clock) ID() string    { return c.id }
func (c *Clock) Title() string { return "Clock" }

func (c *Clock) Init() tea.Cmd { return c.tick.schedule() }

func (c *Clock) Update(msg tea.Msg) (Widget, tea.Cmd) {
	if m, ok := msg.(TickMsg); ok && c.tick.accept(m) {
		c.now = m.Time.In(c.loc)
		return c, c.tick.schedule()
	}
	return c, nil
}

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) View(width int) string {
	return center(width,
		clockTimeStyle.Render(c.now.Format(c.timeFormat)),
		clockDateStyle.Render(c.now.Format(c.dateFormat)),
	)
}

func (c *Clock) Dispose() { c.tick.stop() }
