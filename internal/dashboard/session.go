// Package dashboard mediates drag gestures over the widget grid and turns a
// completed gesture into a new layout.
package dashboard

import "github.com/jask/deskboard/internal/layout"

// Phase is the coarse state of a drag gesture.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseHovering
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseHovering:
		return "hovering"
	default:
		return "idle"
	}
}

// Bounds is the on-screen box of a widget, in terminal cells.
type Bounds struct {
	X, Y          int
	Width, Height int
}

func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// SideOf reports which half of b the pointer column x falls in.
func (b Bounds) SideOf(x int) layout.Side {
	if x < b.X+b.Width/2 {
		return layout.SideLeft
	}
	return layout.SideRight
}

// Session tracks one drag gesture: idle, dragging(source) or
// hovering(source, target, side).
type Session struct {
	dragged string
	target  string
	side    layout.Side
	// seq invalidates pending leave timers when the pointer re-enters a target.
	seq uint64
}

func (s *Session) Phase() Phase {
	switch {
	case s.dragged == "":
		return PhaseIdle
	case s.target == "":
		return PhaseDragging
	default:
		return PhaseHovering
	}
}

func (s *Session) Dragged() string   { return s.dragged }
func (s *Session) Target() string    { return s.target }
func (s *Session) Side() layout.Side { return s.side }

// Start begins a gesture on id. It is ignored while another gesture is active.
func (s *Session) Start(id string) bool {
	if id == "" || s.dragged != "" {
		return false
	}
	s.dragged = id
	s.target, s.side = "", layout.SideNone
	s.seq++
	return true
}

// Over records candidate as the drop target, choosing the side from the
// pointer column. Hovering the dragged widget itself is ignored. It reports
// whether the visible state changed.
func (s *Session) Over(candidate string, pointerX int, box Bounds) bool {
	if s.dragged == "" || candidate == "" || candidate == s.dragged {
		return false
	}
	s.seq++
	side := box.SideOf(pointerX)
	if s.target == candidate && s.side == side {
		return false
	}
	s.target, s.side = candidate, side
	return true
}

// Leave arms a delayed clear of the drop target. Pass the token back to
// LeaveElapsed once the debounce delay has passed.
func (s *Session) Leave() uint64 {
	s.seq++
	return s.seq
}

// LeaveElapsed clears the drop target if nothing happened since the Leave
// that issued token.
func (s *Session) LeaveElapsed(token uint64) bool {
	if token != s.seq || s.target == "" {
		return false
	}
	s.target, s.side = "", layout.SideNone
	return true
}

// Drop applies the gesture to l. The target and side are cleared first;
// stale ids and self drops leave l untouched.
func (s *Session) Drop(l layout.Layout, target string) (layout.Layout, bool) {
	side := s.side
	if s.target != target {
		side = layout.SideNone
	}
	s.target, s.side = "", layout.SideNone
	s.seq++
	if s.dragged == "" {
		return l, false
	}
	next, ok := layout.Move(l, s.dragged, target, side)
	if !ok {
		return l, false
	}
	s.dragged = ""
	return next, true
}

// End resets the session to idle whatever happened before.
func (s *Session) End() {
	s.dragged, s.target, s.side = "", "", layout.SideNone
	s.seq++
}
