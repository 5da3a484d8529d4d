package dashboard

import (
	"context"
	"log/slog"

	"github.com/jask/deskboard/internal/layout"
)

// SlotState is the per-widget styling derived from the drag session.
type SlotState struct {
	Dragging bool
	DropSide layout.Side
}

// Board owns the layout store, the edit mode flag and the drag session. All
// layout mutations go through Drop and Reset.
type Board struct {
	store   *layout.Store
	logger  *slog.Logger
	session Session
	editing bool
	// gated requires edit mode before a drag may start.
	gated bool
}

func NewBoard(store *layout.Store, gated bool, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Board{store: store, gated: gated, logger: logger}
}

func (b *Board) Layout() layout.Layout { return b.store.Layout() }
func (b *Board) Editing() bool         { return b.editing }
func (b *Board) Gated() bool           { return b.gated }
func (b *Board) Session() *Session     { return &b.session }

// CanDrag reports whether gestures are currently accepted.
func (b *Board) CanDrag() bool {
	return !b.gated || b.editing
}

// ToggleEdit flips edit mode. Leaving edit mode abandons any gesture.
func (b *Board) ToggleEdit() bool {
	b.editing = !b.editing
	if !b.editing {
		b.session.End()
	}
	b.logger.Debug("edit mode toggled", "editing", b.editing)
	return b.editing
}

func (b *Board) DragStart(id string) bool {
	if !b.CanDrag() || b.store.Layout().Index(id) < 0 {
		return false
	}
	return b.session.Start(id)
}

func (b *Board) DragOver(candidate string, pointerX int, box Bounds) bool {
	if !b.CanDrag() || b.store.Layout().Index(candidate) < 0 {
		return false
	}
	return b.session.Over(candidate, pointerX, box)
}

func (b *Board) DragLeave() uint64 {
	return b.session.Leave()
}

func (b *Board) LeaveElapsed(token uint64) bool {
	return b.session.LeaveElapsed(token)
}

// Drop completes the gesture on target and persists the new layout. It
// reports whether the order changed; the error is only about persistence.
func (b *Board) Drop(ctx context.Context, target string) (bool, error) {
	dragged := b.session.Dragged()
	next, ok := b.session.Drop(b.store.Layout(), target)
	if !ok {
		return false, nil
	}
	b.logger.Info("widget moved", "widget", dragged, "target", target, "order", next.IDs())
	return true, b.store.Replace(ctx, next)
}

// DragEnd always returns the session to idle.
func (b *Board) DragEnd() {
	b.session.End()
}

// Reset restores the default layout. It is available outside edit mode.
func (b *Board) Reset(ctx context.Context) error {
	b.session.End()
	b.logger.Info("layout reset")
	return b.store.Reset(ctx)
}

func (b *Board) SlotState(id string) SlotState {
	st := SlotState{Dragging: id != "" && id == b.session.Dragged()}
	if id != "" && id == b.session.Target() {
		st.DropSide = b.session.Side()
	}
	return st
}
