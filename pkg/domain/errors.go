package domain

import "errors"

// ErrCaseNotFound is returned when a case name cannot be found in the store.
var ErrCaseNotFound = errors.New("case not found")

// ErrCaseAlreadyOpen is returned when a case with the same source is already open in the registry.
var ErrCaseAlreadyOpen = errors.New("case already open")

// ErrPreconditionNotMet is returned when a boundary variant is requested while its physical model is disabled.
var ErrPreconditionNotMet = errors.New("precondition not met")

// ErrNothingToUndo is returned by Undo on an empty history.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned by Redo on an empty redo branch.
var ErrNothingToRedo = errors.New("nothing to redo")

// ErrUnnamedCase is returned when saving a case that has never been given a name.
var ErrUnnamedCase = errors.New("case has no name")
