package history_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/domain"
	"github.com/aretw0/casetree/pkg/history"
	"github.com/aretw0/casetree/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nav(page int) domain.NavState {
	return domain.NavState{Section: "Boundary conditions", Page: page}
}

// mutate records and applies one change: a new wall with its roughness set to i.
func mutate(t *testing.T, doc *casedoc.Document, h *history.Controller, i int) {
	t.Helper()
	require.NoError(t, h.RecordBeforeChange(fmt.Sprintf("wall %d", i), nav(i)))
	w, err := boundary.NewWall(doc, fmt.Sprintf("w%d", i))
	require.NoError(t, err)
	require.NoError(t, w.SetRoughness(float64(i)))
}

func TestUndoRedo_Exactness(t *testing.T) {
	doc := casedoc.New()
	h := history.New(doc)

	const n = 5
	states := []*tree.Node{doc.Root().Clone()}
	for i := 1; i <= n; i++ {
		mutate(t, doc, h, i)
		states = append(states, doc.Root().Clone())
	}

	for i := n; i >= 1; i-- {
		got, err := h.Undo()
		require.NoError(t, err)
		assert.Equal(t, nav(i), got)
		assert.True(t, tree.Equal(states[i-1], doc.Root()), "after undo of change %d", i)
	}
	assert.False(t, h.CanUndo())

	for i := 1; i <= n; i++ {
		got, err := h.Redo()
		require.NoError(t, err)
		assert.Equal(t, nav(i), got)
		assert.True(t, tree.Equal(states[i], doc.Root()), "after redo of change %d", i)
	}
	assert.False(t, h.CanRedo())
	assert.True(t, tree.Equal(states[n], doc.Root()))
}

func TestUndo_RightAfterRecord(t *testing.T) {
	doc := casedoc.New()
	h := history.New(doc)
	before := doc.Root().Clone()

	mutate(t, doc, h, 1)
	require.False(t, tree.Equal(before, doc.Root()))
	doc.ClearModified()

	_, err := h.Undo()
	require.NoError(t, err)
	assert.True(t, tree.Equal(before, doc.Root()))
	assert.True(t, doc.IsModified(), "undo is an edit")
}

func TestRecord_ClearsRedo(t *testing.T) {
	doc := casedoc.New()
	h := history.New(doc)

	mutate(t, doc, h, 1)
	mutate(t, doc, h, 2)
	_, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, "wall 2", h.RedoLabel())

	mutate(t, doc, h, 3)
	assert.False(t, h.CanRedo())
	assert.Equal(t, "wall 3", h.UndoLabel())

	_, err = h.Redo()
	assert.ErrorIs(t, err, domain.ErrNothingToRedo)
}

func TestEmptyHistory(t *testing.T) {
	h := history.New(casedoc.New())

	_, err := h.Undo()
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)
	_, err = h.Redo()
	assert.ErrorIs(t, err, domain.ErrNothingToRedo)
	assert.ErrorIs(t, h.Rollback(), domain.ErrNothingToUndo)
	assert.Empty(t, h.UndoLabel())
	assert.Empty(t, h.RedoLabel())
	assert.Equal(t, domain.StateClean, h.State())
}

func TestState(t *testing.T) {
	doc := casedoc.New()
	h := history.New(doc)
	assert.Equal(t, domain.StateClean, h.State())

	mutate(t, doc, h, 1)
	assert.Equal(t, domain.StateDirty, h.State())

	_, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, domain.StateDirty, h.State(), "returning to the saved tree is not special-cased")

	doc.ClearModified()
	h.Reset()
	assert.Equal(t, domain.StateClean, h.State())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.False(t, doc.IsModified())
}

func TestWithLimit(t *testing.T) {
	doc := casedoc.New()
	h := history.New(doc, history.WithLimit(2))

	for i := 1; i <= 4; i++ {
		mutate(t, doc, h, i)
	}
	undo, redo := h.Depth()
	assert.Equal(t, 2, undo)
	assert.Zero(t, redo)

	_, err := h.Undo()
	require.NoError(t, err)
	_, err = h.Undo()
	require.NoError(t, err)
	assert.Len(t, boundary.List(doc), 2, "only the last two changes are undoable")
}

func TestRollback(t *testing.T) {
	doc := casedoc.New()
	h := history.New(doc)
	before := doc.Root().Clone()

	mutate(t, doc, h, 1)
	require.NoError(t, h.Rollback())
	assert.True(t, tree.Equal(before, doc.Root()))
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, domain.StateClean, h.State())
}

func TestRollback_KeepsRedoBranch(t *testing.T) {
	doc := casedoc.New()
	h := history.New(doc)

	mutate(t, doc, h, 1)
	_, err := h.Undo()
	require.NoError(t, err)
	require.True(t, h.CanRedo())
	afterUndo := doc.Root().Clone()

	require.NoError(t, h.RecordBeforeChange("abandoned", nav(9)))
	assert.False(t, h.CanRedo(), "recording clears the redo branch")
	require.NoError(t, h.Rollback())

	assert.True(t, tree.Equal(afterUndo, doc.Root()))
	assert.False(t, h.CanUndo())
	assert.True(t, h.CanRedo(), "an abandoned change must not discard the redo branch")
	assert.Equal(t, "wall 1", h.RedoLabel())
	assert.Equal(t, domain.StateDirty, h.State())

	_, err = h.Redo()
	require.NoError(t, err)
	assert.Len(t, boundary.List(doc), 1)
}

func TestHooks(t *testing.T) {
	var recorded []domain.HistoryEvent
	doc := casedoc.New()
	h := history.New(doc, history.WithHooks(domain.LifecycleHooks{
		OnRecord: func(e *domain.HistoryEvent) { recorded = append(recorded, *e) },
		OnUndo:   func(e *domain.HistoryEvent) { recorded = append(recorded, *e) },
	}))

	mutate(t, doc, h, 1)
	_, err := h.Undo()
	require.NoError(t, err)

	require.Len(t, recorded, 2)
	assert.Equal(t, domain.EventRecord, recorded[0].Type)
	assert.Equal(t, 1, recorded[0].UndoDepth)
	assert.Equal(t, domain.EventUndo, recorded[1].Type)
	assert.Equal(t, 1, recorded[1].RedoDepth)
	assert.Equal(t, doc.ID, recorded[1].CaseID)
}
