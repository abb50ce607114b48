package domain

// NavState is the UI-navigation state needed to re-select the page that produced a change.
// The core never interprets it.
type NavState struct {
	// Section is the tree-sidebar entry (e.g. "Boundary conditions").
	Section string `json:"section" yaml:"section"`
	// Page is the entry row inside the section, -1 when none is selected.
	Page int `json:"page" yaml:"page"`
}

// HistoryState classifies a case with respect to its undo history.
type HistoryState string

const (
	StateClean HistoryState = "clean" // No undoable change since the last save or load
	StateDirty HistoryState = "dirty" // At least one change was recorded
)
