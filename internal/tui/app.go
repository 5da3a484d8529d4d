// Package tui is the dashboard container: it renders the widget grid and
// turns mouse and keyboard gestures into board operations.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/deskboard/internal/dashboard"
	"github.com/jask/deskboard/internal/layout"
	"github.com/jask/deskboard/internal/widgets"
)

// Options tunes the container.
type Options struct {
	Columns       int
	LeaveDebounce time.Duration
}

// slot is where a descriptor was drawn by the last View.
type slot struct {
	id     string
	bounds dashboard.Bounds
}

// App ties together the board, the widget instances and the screen.
type App struct {
	ctx      context.Context
	board    *dashboard.Board
	registry *widgets.Registry
	env      widgets.Env
	logger   *slog.Logger
	opts     Options

	// instances are keyed by descriptor id so they survive reorders.
	instances map[string]widgets.Widget
	focus     string
	cursor    int

	// keyboard drag: pointer walks the halves of the slots, 2 per slot
	grabbing bool
	pointer  int

	slots     []slot
	width     int
	height    int
	status    string
	statusErr bool
	keys      keyMap
	help      help.Model
}

func New(ctx context.Context, board *dashboard.Board, registry *widgets.Registry, env widgets.Env, opts Options, logger *slog.Logger) *App {
	if opts.Columns < 1 {
		opts.Columns = 2
	}
	if opts.LeaveDebounce <= 0 {
		opts.LeaveDebounce = 50 * time.Millisecond
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if env.Logger == nil {
		env.Logger = logger
	}
	return &App{
		ctx:       ctx,
		board:     board,
		registry:  registry,
		env:       env,
		logger:    logger,
		opts:      opts,
		instances: map[string]widgets.Widget{},
		keys:      newKeyMap(),
		help:      help.New(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.reconcile()
}

// reconcile builds instances for new descriptors and disposes the ones no
// longer in the layout. It returns the Init commands of new instances.
func (a *App) reconcile() tea.Cmd {
	l := a.board.Layout()
	seen := make(map[string]bool, len(l))
	var cmds []tea.Cmd
	for _, d := range l {
		seen[d.ID] = true
		if _, ok := a.instances[d.ID]; ok {
			continue
		}
		w, ok := a.registry.Build(d, a.env)
		if !ok {
			continue
		}
		a.instances[d.ID] = w
		cmds = append(cmds, w.Init())
	}
	for id, w := range a.instances {
		if !seen[id] {
			w.Dispose()
			delete(a.instances, id)
			if a.focus == id {
				a.focus = ""
			}
		}
	}
	a.cursor = clamp(a.cursor, 0, len(l)-1)
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(m)
	case tea.MouseMsg:
		return a, a.handleMouse(m)
	case leaveElapsedMsg:
		a.board.LeaveElapsed(m.token)
		return a, nil
	case statusMsg:
		a.setStatus(string(m), false)
		return a, nil
	case errMsg:
		a.logger.Error("dashboard", "err", m.error)
		a.setStatus("error: "+m.Error(), true)
		return a, nil
	}
	return a, a.broadcast(msg)
}

// broadcast hands msg to every widget; each one ignores what is not its own.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for id, w := range a.instances {
		next, cmd := w.Update(msg)
		a.instances[id] = next
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) setStatus(text string, isErr bool) {
	a.status, a.statusErr = text, isErr
}

func (a *App) focused() widgets.Widget {
	if a.focus == "" || a.board.Editing() {
		return nil
	}
	return a.instances[a.focus]
}

func (a *App) capturing() bool {
	c, ok := a.focused().(widgets.Capturer)
	return ok && c.Capturing()
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	if key.Matches(m, a.keys.Quit) {
		return tea.Quit
	}
	if a.grabbing {
		return a.handleGrabKey(m)
	}
	switch {
	case key.Matches(m, a.keys.ToggleEdit):
		return a.toggleEdit()
	case key.Matches(m, a.keys.Reset):
		return a.resetLayout()
	case key.Matches(m, a.keys.Focus):
		return a.cycleFocus(1)
	case key.Matches(m, a.keys.FocusBack):
		return a.cycleFocus(-1)
	}

	if w := a.focused(); w != nil && a.capturing() {
		if key.Matches(m, a.keys.Blur) {
			a.blur()
			return nil
		}
		next, cmd := w.Update(m)
		a.instances[a.focus] = next
		return cmd
	}

	switch {
	case key.Matches(m, a.keys.QuitPlain):
		return tea.Quit
	case key.Matches(m, a.keys.EditPlain):
		return a.toggleEdit()
	case key.Matches(m, a.keys.ResetPlain):
		return a.resetLayout()
	}
	if !a.board.Editing() {
		return nil
	}
	n := len(a.board.Layout())
	switch {
	case key.Matches(m, a.keys.Left):
		a.cursor = clamp(a.cursor-1, 0, n-1)
	case key.Matches(m, a.keys.Right):
		a.cursor = clamp(a.cursor+1, 0, n-1)
	case key.Matches(m, a.keys.Up):
		a.cursor = clamp(a.cursor-a.opts.Columns, 0, n-1)
	case key.Matches(m, a.keys.Down):
		a.cursor = clamp(a.cursor+a.opts.Columns, 0, n-1)
	case key.Matches(m, a.keys.Grab):
		a.grab()
	}
	return nil
}

func (a *App) toggleEdit() tea.Cmd {
	a.grabbing = false
	if a.board.ToggleEdit() {
		a.blur()
		return reportStatus("edit mode: drag widgets or use space to grab")
	}
	return reportStatus("layout locked")
}

func (a *App) resetLayout() tea.Cmd {
	a.grabbing = false
	err := a.board.Reset(a.ctx)
	cmd := a.reconcile()
	if err != nil {
		return tea.Batch(cmd, reportErr(err))
	}
	return tea.Batch(cmd, reportStatus("layout reset"))
}

func (a *App) cycleFocus(step int) tea.Cmd {
	l := a.board.Layout()
	if a.board.Editing() || len(l) == 0 {
		return nil
	}
	start := l.Index(a.focus)
	if start < 0 && step < 0 {
		start = 0
	}
	for i := 1; i <= len(l); i++ {
		idx := ((start+step*i)%len(l) + len(l)) % len(l)
		if _, ok := a.instances[l[idx].ID].(widgets.Focusable); ok {
			return a.focusOn(l[idx].ID)
		}
	}
	return reportStatus("no widget takes input")
}

func (a *App) focusOn(id string) tea.Cmd {
	if id == a.focus {
		return nil
	}
	a.blur()
	f, ok := a.instances[id].(widgets.Focusable)
	if !ok {
		return nil
	}
	a.focus = id
	return f.Focus()
}

func (a *App) blur() {
	if f, ok := a.instances[a.focus].(widgets.Focusable); ok {
		f.Blur()
	}
	a.focus = ""
}

// grab starts a keyboard drag on the selected slot.
func (a *App) grab() {
	l := a.board.Layout()
	if a.cursor < 0 || a.cursor >= len(l) {
		return
	}
	if !a.board.DragStart(l[a.cursor].ID) {
		return
	}
	a.grabbing = true
	a.pointer = a.cursor * 2
}

func (a *App) handleGrabKey(m tea.KeyMsg) tea.Cmd {
	l := a.board.Layout()
	switch {
	case key.Matches(m, a.keys.Left, a.keys.Up):
		a.movePointer(l, -1)
	case key.Matches(m, a.keys.Right, a.keys.Down):
		a.movePointer(l, 1)
	case key.Matches(m, a.keys.Drop):
		dragged := a.board.Session().Dragged()
		var cmd tea.Cmd
		if target := a.board.Session().Target(); target != "" {
			cmd = a.drop(target)
		}
		a.board.DragEnd()
		a.grabbing = false
		if i := a.board.Layout().Index(dragged); i >= 0 {
			a.cursor = i
		}
		return cmd
	case key.Matches(m, a.keys.Cancel):
		a.board.DragEnd()
		a.grabbing = false
	}
	return nil
}

// movePointer steps the virtual pointer by one slot half and replays it as
// a drag-over at that half.
func (a *App) movePointer(l layout.Layout, step int) {
	if len(l) == 0 {
		return
	}
	a.pointer = clamp(a.pointer+step, 0, len(l)*2-1)
	d := l[a.pointer/2]
	if d.ID == a.board.Session().Dragged() {
		a.board.LeaveElapsed(a.board.DragLeave())
		return
	}
	b := a.boundsOf(d.ID)
	x := b.X
	if a.pointer%2 == 1 {
		x = b.X + b.Width - 1
	}
	a.board.DragOver(d.ID, x, b)
}

func (a *App) boundsOf(id string) dashboard.Bounds {
	for _, s := range a.slots {
		if s.id == id {
			return s.bounds
		}
	}
	return dashboard.Bounds{Width: 2, Height: 1}
}

func (a *App) slotAt(x, y int) (slot, bool) {
	for _, s := range a.slots {
		if s.bounds.Contains(x, y) {
			return s, true
		}
	}
	return slot{}, false
}

// drop persists the gesture synchronously and refreshes instances.
func (a *App) drop(target string) tea.Cmd {
	changed, err := a.board.Drop(a.ctx, target)
	if !changed {
		return nil
	}
	if err != nil {
		return tea.Batch(a.reconcile(), reportErr(err))
	}
	return tea.Batch(a.reconcile(), reportStatus("layout saved"))
}

func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	if a.grabbing {
		return nil
	}
	hit, onSlot := a.slotAt(m.X, m.Y)
	session := a.board.Session()

	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft || !onSlot {
			return nil
		}
		if a.board.CanDrag() {
			// a release lost outside the window must not leak into this gesture
			a.board.DragEnd()
			a.board.DragStart(hit.id)
			if a.board.Editing() {
				a.cursor = a.board.Layout().Index(hit.id)
			}
			return nil
		}
		return a.focusOn(hit.id)

	case tea.MouseActionMotion:
		if session.Phase() == dashboard.PhaseIdle {
			return nil
		}
		if onSlot && hit.id != session.Dragged() {
			a.board.DragOver(hit.id, m.X, hit.bounds)
			return nil
		}
		if session.Target() == "" {
			return nil
		}
		token := a.board.DragLeave()
		return tea.Tick(a.opts.LeaveDebounce, func(time.Time) tea.Msg {
			return leaveElapsedMsg{token: token}
		})

	case tea.MouseActionRelease:
		if session.Phase() == dashboard.PhaseIdle {
			return nil
		}
		var cmd tea.Cmd
		if onSlot && hit.id != session.Dragged() {
			a.board.DragOver(hit.id, m.X, hit.bounds)
			cmd = a.drop(hit.id)
		}
		a.board.DragEnd()
		return cmd
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
