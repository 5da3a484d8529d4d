package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/deskboard/internal/layout"
)

const slot = "dashboard-layout"

func newBoard(t *testing.T, gated bool) (*Board, *layout.MemoryStorage) {
	t.Helper()
	mem := layout.NewMemoryStorage()
	store := layout.Load(context.Background(), mem, slot, nil)
	return NewBoard(store, gated, nil), mem
}

func TestBoardEditGate(t *testing.T) {
	b, _ := newBoard(t, true)
	require.False(t, b.CanDrag())
	require.False(t, b.DragStart("widget-1"))

	require.True(t, b.ToggleEdit())
	require.True(t, b.DragStart("widget-1"))
	require.True(t, b.DragOver("widget-3", 25, box))
	require.Equal(t, SlotState{DropSide: layout.SideRight}, b.SlotState("widget-3"))
	require.Equal(t, SlotState{Dragging: true}, b.SlotState("widget-1"))

	require.False(t, b.ToggleEdit())
	require.Equal(t, PhaseIdle, b.Session().Phase(), "leaving edit mode ends the gesture")
	require.Equal(t, SlotState{}, b.SlotState("widget-3"))
}

func TestBoardUngatedAllowsDrag(t *testing.T) {
	b, _ := newBoard(t, false)
	require.True(t, b.CanDrag())
	require.True(t, b.DragStart("widget-2"))
}

func TestBoardDropPersists(t *testing.T) {
	ctx := context.Background()
	b, mem := newBoard(t, true)
	b.ToggleEdit()

	require.True(t, b.DragStart("widget-1"))
	require.True(t, b.DragOver("widget-4", 25, box))
	changed, err := b.Drop(ctx, "widget-4")
	require.NoError(t, err)
	require.True(t, changed)
	b.DragEnd()

	want := []string{"widget-2", "widget-3", "widget-4", "widget-1"}
	require.Equal(t, want, b.Layout().IDs())
	require.Equal(t, want, layout.Load(ctx, mem, slot, nil).Layout().IDs())
	require.Equal(t, PhaseIdle, b.Session().Phase())
}

func TestBoardIgnoresUnknownIDs(t *testing.T) {
	ctx := context.Background()
	b, mem := newBoard(t, false)

	require.False(t, b.DragStart("ghost"))
	require.True(t, b.DragStart("widget-1"))
	require.False(t, b.DragOver("ghost", 0, box))

	changed, err := b.Drop(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, changed)
	require.True(t, b.Layout().Equal(layout.Default()))

	_, found, err := mem.Get(ctx, slot)
	require.NoError(t, err)
	require.False(t, found, "no-op drops do not write")
}

func TestBoardResetAnyTime(t *testing.T) {
	ctx := context.Background()
	b, mem := newBoard(t, true)
	b.ToggleEdit()
	b.DragStart("widget-2")
	b.DragOver("widget-1", 0, box)
	_, err := b.Drop(ctx, "widget-1")
	require.NoError(t, err)
	b.ToggleEdit()

	require.False(t, b.Layout().Equal(layout.Default()))
	require.NoError(t, b.Reset(ctx))
	require.True(t, b.Layout().Equal(layout.Default()))
	require.True(t, layout.Load(ctx, mem, slot, nil).Layout().Equal(layout.Default()))
}
