// Package widgets contains the self-contained dashboard widgets, the
// registry that maps a layout type to its widget, and the pane primitives
// used to draw them.
//
// Widgets are bubbletea sub-models. They never talk to each other and own
// all of their state; a widget recreated by the registry starts fresh.
package widgets
