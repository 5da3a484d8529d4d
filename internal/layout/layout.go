// Package layout holds the ordered widget list shown on the dashboard and
// the reorder arithmetic applied when a widget is dropped on another one.
package layout

import "slices"

// Type tags the kind of widget a descriptor renders.
type Type string

const (
	TypeWeather Type = "weather"
	TypeClock   Type = "clock"
	TypeTodo    Type = "todo"
	TypeText    Type = "text"
)

// KnownTypes lists every type the registry can render, in display order.
var KnownTypes = []Type{TypeWeather, TypeClock, TypeTodo, TypeText}

// Descriptor identifies one widget slot. ID is stable across reorders and
// Type never changes once created.
type Descriptor struct {
	ID   string `json:"id"`
	Type Type   `json:"type"`
	Text string `json:"text,omitempty"`
}

// Layout is the rendering order of the dashboard. Values are treated as
// immutable: every mutation produces a new slice.
type Layout []Descriptor

const welcomeText = "Welcome to your dashboard! Toggle edit mode and drag widgets to rearrange them."

// Default returns a fresh copy of the built-in layout.
func Default() Layout {
	return Layout{
		{ID: "widget-1", Type: TypeWeather},
		{ID: "widget-2", Type: TypeClock},
		{ID: "widget-3", Type: TypeTodo},
		{ID: "widget-4", Type: TypeText, Text: welcomeText},
	}
}

func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}

// Index returns the position of id, or -1.
func (l Layout) Index(id string) int {
	for i, d := range l {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (l Layout) IDs() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.ID
	}
	return out
}

func (l Layout) Equal(other Layout) bool {
	return slices.Equal(l, other)
}

// Side is the half of a drop target the pointer is over.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Move removes draggedID and reinserts it next to targetID on the given
// side. The input is never modified. It reports false, returning l as is,
// when the ids are equal or either one is missing.
//
// Removing the dragged entry shifts everything after it left by one, so the
// insertion index depends on whether the dragged entry started before or
// after the target. SideNone inserts before the target.
func Move(l Layout, draggedID, targetID string, side Side) (Layout, bool) {
	if draggedID == targetID {
		return l, false
	}
	from, to := l.Index(draggedID), l.Index(targetID)
	if from < 0 || to < 0 {
		return l, false
	}

	dragged := l[from]
	out := make(Layout, 0, len(l))
	out = append(out, l[:from]...)
	out = append(out, l[from+1:]...)

	var at int
	switch {
	case side == SideRight && from < to:
		at = to
	case side == SideRight:
		at = to + 1
	case from < to:
		at = to - 1
	default:
		at = to
	}
	return slices.Insert(out, at, dragged), true
}
