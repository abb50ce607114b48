// Package history implements linear undo/redo over whole-case snapshots.
//
// The owner calls RecordBeforeChange before every undoable mutation. A new record clears the redo branch, so
// the history never forks. Save and load call Reset: a fresh case has nothing to undo.
package history
