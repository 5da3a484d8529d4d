package widgets

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/deskboard/internal/layout"
)

// Factory builds the widget for a descriptor.
type Factory func(d layout.Descriptor, env Env) Widget

// Registry is the closed type -> widget mapping consulted when rendering.
type Registry struct {
	factories map[layout.Type]Factory
	warned    map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		factories: map[layout.Type]Factory{
			layout.TypeWeather: func(d layout.Descriptor, env Env) Widget { return NewWeather(d.ID, env) },
			layout.TypeClock:   func(d layout.Descriptor, env Env) Widget { return NewClock(d.ID, env) },
			layout.TypeTodo:    func(d layout.Descriptor, env Env) Widget { return NewTodo(d.ID, env) },
			layout.TypeText:    func(d layout.Descriptor, env Env) Widget { return NewText(d.ID, d.Text, env) },
		},
		warned: map[string]bool{},
	}
}

// Known reports whether t has a widget.
func (r *Registry) Known(t layout.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Build returns the widget for d. Unknown types yield false and the caller
// leaves the slot empty.
func (r *Registry) Build(d layout.Descriptor, env Env) (Widget, bool) {
	f, ok := r.factories[d.Type]
	if !ok {
		if !r.warned[d.ID] {
			r.warned[d.ID] = true
			args := []any{"widget", d.ID, "type", string(d.Type)}
			if s, ok := Suggest(d.Type); ok {
				args = append(args, "did_you_mean", string(s))
			}
			env.logger().Warn("unknown widget type, slot left empty", args...)
		}
		return nil, false
	}
	return f(d, env), true
}

// Suggest returns the known type closest to t by edit distance, if any is
// within two edits.
func Suggest(t layout.Type) (layout.Type, bool) {
	needle := strings.ToLower(strings.TrimSpace(string(t)))
	if needle == "" {
		return "", false
	}
	best, bestDist := layout.Type(""), 3
	for _, k := range layout.KnownTypes {
		if d := levenshtein.ComputeDistance(needle, string(k)); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, best != ""
}
