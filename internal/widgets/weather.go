package widgets

import (
	"fmt"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Conditions are the simulated weather states, picked uniformly.
var Conditions = []string{"Sunny", "Cloudy", "Rainy", "Snowy", "Windy"}

// Reading is one simulated observation.
type Reading struct {
	Temperature int
	Condition   string
	Location    string
}

var weatherTempStyle = lipgloss.NewStyle().Bold(true)

// Weather simulates a changing reading. Nothing is fetched.
type Weather struct {
	id       string
	reading  Reading
	min, max int
	rng      *rand.Rand
	tick     *ticker
}

func NewWeather(id string, env Env) *Weather {
	lo, hi := env.MinTemp, env.MaxTemp
	if hi < lo {
		lo, hi = hi, lo
	}
	return &Weather{
		id:      id,
		reading: Reading{Temperature: 22, Condition: "Sunny", Location: env.WeatherLocation},
		min:     lo,
		max:     hi,
		rng:     env.rand(),
		tick:    newTicker(env.WeatherInterval),
	}
}

func (w *Weather) ID() string       { return w.id }
func (w *Weather) Title() string    { return "Weather" }
func (w *Weather) Reading() Reading { return w.reading }
func (w *Weather) Init() tea.Cmd    { return w.tick.schedule() }
func (w *Weather) Dispose()         { w.tick.stop() }

func (w *Weather) Update(msg tea.Msg) (Widget, tea.Cmd) {
	if m, ok := msg.(TickMsg); ok && w.tick.accept(m) {
		w.randomize()
		return w, w.tick.schedule()
	}
	return w, nil
}

func (w *Weather) randomize() {
	w.reading.Temperature = w.min + w.rng.IntN(w.max-w.min+1)
	w.reading.Condition = Conditions[w.rng.IntN(len(Conditions))]
}

func (w *Weather) View(width int) string {
	return center(width,
		weatherTempStyle.Render(fmt.Sprintf("%d°C", w.reading.Temperature)),
		w.reading.Condition,
		w.reading.Location,
	)
}
