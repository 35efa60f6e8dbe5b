package locator

import (
	"testing"

	"slotfinder-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, fromSlot, toSlot int) MoveEntry {
	return MoveEntry{
		ProductID: id,
		From:      models.Location{BoxNo: 1, RowNo: 1, SlotNo: fromSlot},
		To:        models.Location{BoxNo: 1, RowNo: 1, SlotNo: toSlot},
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(10)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.PeekUndo()
	assert.False(t, ok)
	_, ok = h.PeekRedo()
	assert.False(t, ok)

	// Stepping past the ends is a no-op.
	h.StepBack()
	h.StepForward()
	assert.Equal(t, 0, h.Len())
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	h.Push(entry("p1", 1, 2))
	h.Push(entry("p1", 2, 3))

	e, ok := h.PeekUndo()
	require.True(t, ok)
	assert.Equal(t, 3, e.To.SlotNo)
	h.StepBack()

	e, ok = h.PeekUndo()
	require.True(t, ok)
	assert.Equal(t, 2, e.To.SlotNo)

	e, ok = h.PeekRedo()
	require.True(t, ok)
	assert.Equal(t, 3, e.To.SlotNo)
	h.StepForward()

	assert.False(t, h.CanRedo())
	assert.True(t, h.CanUndo())
}

func TestHistoryPushTruncatesRedoTail(t *testing.T) {
	h := NewHistory(10)
	h.Push(entry("p1", 1, 2))
	h.Push(entry("p1", 2, 3))
	h.StepBack()

	h.Push(entry("p1", 2, 5))

	assert.Equal(t, 2, h.Len())
	assert.False(t, h.CanRedo())
	e, ok := h.PeekUndo()
	require.True(t, ok)
	assert.Equal(t, 5, e.To.SlotNo)
}

func TestHistoryBounded(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(entry("p1", i, i+1))
	}
	assert.Equal(t, 3, h.Len())

	// Oldest entries fell off; the newest survives.
	e, ok := h.PeekUndo()
	require.True(t, ok)
	assert.Equal(t, 6, e.To.SlotNo)
}
