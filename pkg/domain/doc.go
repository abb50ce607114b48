/*
Package domain contains the types shared by every layer of the case editor.

It is kept free of I/O and of the document model itself so that the tree, history, boundary and persistence
packages can all depend on it.

# Key Entities

  - Sentinel errors: ErrCaseNotFound, ErrCaseAlreadyOpen, ErrPreconditionNotMet, ErrNothingToUndo, ErrNothingToRedo.
  - NavState: the opaque navigation state attached to undo records.
  - HistoryState: Clean or Dirty with respect to the undo history.
  - LifecycleHooks: observability callbacks for record/undo/redo/load/save.
*/
package domain
