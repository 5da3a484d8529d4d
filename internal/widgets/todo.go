package widgets

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TodoItem is one entry of a todo list.
type TodoItem struct {
	ID        int64
	Text      string
	Completed bool
}

// TodoKeyMap binds the todo list actions.
type TodoKeyMap struct {
	Add    key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultTodoKeyMap() TodoKeyMap {
	return TodoKeyMap{
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev task")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next task")),
		Toggle: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle done")),
		Delete: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete task")),
	}
}

var (
	todoDoneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)
	todoCursorStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// Todo is an in-memory task list. Its items live only as long as the
// widget instance.
type Todo struct {
	id     string
	items  []TodoItem
	cursor int
	lastID int64
	input  textinput.Model
	keys   TodoKeyMap
	now    func() time.Time
}

func NewTodo(id string, env Env) *Todo {
	in := textinput.New()
	in.Placeholder = "Add a new task..."
	in.Prompt = "+ "
	in.CharLimit = 200
	return &Todo{
		id: id,
		items: []TodoItem{
			{ID: 1, Text: "Learn Go", Completed: true},
			{ID: 2, Text: "Build a dashboard"},
			{ID: 3, Text: "Deploy application"},
		},
		lastID: 3,
		input:  in,
		keys:   DefaultTodoKeyMap(),
		now:    env.now,
	}
}

func (t *Todo) ID() string       { return t.id }
func (t *Todo) Title() string    { return "Todo List" }
func (t *Todo) Init() tea.Cmd    { return nil }
func (t *Todo) Dispose()         {}
func (t *Todo) Keys() TodoKeyMap { return t.keys }

// Items returns a copy of the list.
func (t *Todo) Items() []TodoItem {
	return append([]TodoItem(nil), t.items...)
}

func (t *Todo) Focus() tea.Cmd { return t.input.Focus() }
func (t *Todo) Blur()          { t.input.Blur() }
func (t *Todo) Capturing() bool {
	return t.input.Focused()
}

// Add appends text as an open item. Blank input is ignored.
func (t *Todo) Add(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	t.items = append(t.items, TodoItem{ID: t.nextID(), Text: text})
	return true
}

// nextID derives ids from the clock, bumped so they keep increasing when
// two adds land in the same millisecond.
func (t *Todo) nextID() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

func (t *Todo) Toggle(id int64) bool {
	for i := range t.items {
		if t.items[i].ID == id {
			t.items[i].Completed = !t.items[i].Completed
			return true
		}
	}
	return false
}

func (t *Todo) Delete(id int64) bool {
	for i := range t.items {
		if t.items[i].ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			if t.cursor >= len(t.items) && t.cursor > 0 {
				t.cursor--
			}
			return true
		}
	}
	return false
}

func (t *Todo) selected() (TodoItem, bool) {
	if t.cursor < 0 || t.cursor >= len(t.items) {
		return TodoItem{}, false
	}
	return t.items[t.cursor], true
}

func (t *Todo) Update(msg tea.Msg) (Widget, tea.Cmd) {
	if !t.input.Focused() {
		return t, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		// cursor blink and other textinput internals
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	switch {
	case key.Matches(km, t.keys.Add):
		if t.Add(t.input.Value()) {
			t.input.Reset()
		}
		return t, nil
	case key.Matches(km, t.keys.Up):
		if t.cursor > 0 {
			t.cursor--
		}
		return t, nil
	case key.Matches(km, t.keys.Down):
		if t.cursor < len(t.items)-1 {
			t.cursor++
		}
		return t, nil
	case key.Matches(km, t.keys.Toggle):
		if it, ok := t.selected(); ok {
			t.Toggle(it.ID)
		}
		return t, nil
	case key.Matches(km, t.keys.Delete):
		if it, ok := t.selected(); ok {
			t.Delete(it.ID)
		}
		return t, nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *Todo) View(width int) string {
	t.input.Width = max(1, width-lipgloss.Width(t.input.Prompt)-1)
	lines := []string{t.input.View()}
	for i, it := range t.items {
		box, text := "[ ]", it.Text
		if it.Completed {
			box, text = "[x]", todoDoneStyle.Render(it.Text)
		}
		marker := "  "
		if t.input.Focused() && i == t.cursor {
			marker = todoCursorStyle.Render("▶ ")
		}
		lines = append(lines, marker+box+" "+text)
	}
	return strings.Join(lines, "\n")
}
