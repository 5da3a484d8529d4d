package widgets

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Widget is a dashboard tile bound to one layout descriptor.
type Widget interface {
	ID() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (Widget, tea.Cmd)
	View(width int) string
	// Dispose stops timers owned by the widget.
	Dispose()
}

// Focusable widgets accept keyboard focus.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
}

// Capturer is implemented by widgets that consume raw key input while
// focused, so single-letter app shortcuts must not fire.
type Capturer interface {
	Capturing() bool
}

// Env carries the settings and collaborators widgets are built with.
type Env struct {
	Location        *time.Location
	TimeFormat      string
	DateFormat      string
	ClockInterval   time.Duration
	WeatherLocation string
	WeatherInterval time.Duration
	MinTemp         int
	MaxTemp         int
	MarkdownStyle   string
	Rand            *rand.Rand
	Now             func() time.Time
	Logger          *slog.Logger
}

func DefaultEnv() Env {
	return Env{
		Location:        time.Local,
		TimeFormat:      "15:04:05",
		DateFormat:      "Monday, January 2, 2006",
		ClockInterval:   time.Second,
		WeatherLocation: "Stockholm",
		WeatherInterval: 10 * time.Second,
		MinTemp:         5,
		MaxTemp:         34,
		MarkdownStyle:   "dark",
	}
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) location() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e Env) rand() *rand.Rand {
	if e.Rand == nil {
		return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	return e.Rand
}

var lastInstance atomic.Int64

func nextInstance() int {
	return int(lastInstance.Add(1))
}

// TickMsg drives the periodic widgets. Each instance only accepts ticks it
// scheduled itself.
type TickMsg struct {
	Instance int
	Time     time.Time
	tag      int
}

// ticker is the cancellation handle of one periodic widget.
type ticker struct {
	instance int
	tag      int
	interval time.Duration
	stopped  bool
}

func newTicker(interval time.Duration) *ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &ticker{instance: nextInstance(), interval: interval}
}

func (t *ticker) schedule() tea.Cmd {
	if t.stopped {
		return nil
	}
	instance, tag := t.instance, t.tag
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{Instance: instance, Time: now, tag: tag}
	})
}

// accept reports whether msg belongs to this ticker and is still current.
func (t *ticker) accept(msg TickMsg) bool {
	return !t.stopped && msg.Instance == t.instance && msg.tag == t.tag
}

func (t *ticker) stop() {
	t.stopped = true
	t.tag++
}
