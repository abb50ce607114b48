package casetree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/casetree/internal/logging"
	"github.com/aretw0/casetree/pkg/adapters/memory"
	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/domain"
	"github.com/aretw0/casetree/pkg/history"
	"github.com/aretw0/casetree/pkg/ports"
	"github.com/aretw0/casetree/pkg/session"
)

// Editor is the high-level entry point for the library.
// It binds one case document to its undo history, a store and an optional open-case registry.
// An Editor is not safe for concurrent use.
type Editor struct {
	doc       *casedoc.Document
	history   *history.Controller
	store     ports.CaseStore
	registry  *session.Registry
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	undoLimit int

	// Name is the store key of the case, empty until the first Open or SaveAs.
	Name string
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore sets where cases are loaded from and saved to. Defaults to an in-memory store.
func WithStore(store ports.CaseStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithRegistry makes the editor claim its case in r so the same case cannot be opened twice.
func WithRegistry(r *session.Registry) Option {
	return func(e *Editor) {
		e.registry = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithUndoLimit bounds the undo history. Zero keeps every change.
func WithUndoLimit(n int) Option {
	return func(e *Editor) {
		e.undoLimit = n
	}
}

func build(name string, opts []Option) *Editor {
	e := &Editor{Name: name}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	e.doc = casedoc.New(casedoc.WithPath(name), casedoc.WithLogger(e.logger))
	e.logger = e.logger.With("case_id", e.doc.ID)
	e.history = history.New(e.doc,
		history.WithLimit(e.undoLimit),
		history.WithHooks(e.hooks),
		history.WithLogger(e.logger),
	)
	return e
}

// New creates an editor over an empty, unnamed case.
func New(opts ...Option) *Editor {
	return build("", opts)
}

// Open loads the case stored under name. It fails with domain.ErrCaseAlreadyOpen when another editor sharing
// the registry holds it, and with a *casedoc.LoadError when the stored bytes are rejected.
func Open(ctx context.Context, name string, opts ...Option) (*Editor, error) {
	e := build(name, opts)

	if e.registry != nil {
		if err := e.registry.Register(name, e.doc.ID); err != nil {
			return nil, err
		}
	}

	data, err := e.store.Load(ctx, name)
	if err == nil {
		err = e.doc.Load(data)
	}
	if err != nil {
		if e.registry != nil {
			e.registry.Unregister(name)
		}
		e.emitDocument(domain.EventLoadFailed, len(data), err)
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	e.history.Reset()
	e.emitDocument(domain.EventLoad, len(data), nil)
	e.logger.Info("Case opened", "name", name, "bytes", len(data))
	return e, nil
}

// Document returns the edited case.
func (e *Editor) Document() *casedoc.Document {
	return e.doc
}

// History returns the undo controller.
func (e *Editor) History() *history.Controller {
	return e.history
}

// IsModified reports whether the case has unsaved changes.
func (e *Editor) IsModified() bool {
	return e.doc.IsModified()
}

// Edit records an undo point labelled label, then runs fn. When fn fails the case is rolled back to the
// recorded point and the error is returned.
func (e *Editor) Edit(label string, nav domain.NavState, fn func(doc *casedoc.Document) error) error {
	wasModified := e.doc.IsModified()
	if err := e.history.RecordBeforeChange(label, nav); err != nil {
		return err
	}
	if err := fn(e.doc); err != nil {
		if rbErr := e.history.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		if !wasModified {
			e.doc.ClearModified()
		}
		e.logger.Debug("Edit rolled back", "label", label, "err", err)
		return err
	}
	return nil
}

// Boundary returns the typed view of the boundary zone label. The view is created when absent; building it is
// not recorded in the history.
func (e *Editor) Boundary(nature boundary.Nature, label string) (boundary.Boundary, error) {
	return boundary.Make(nature, label, e.doc)
}

// Undo reverts the last edit and returns the navigation state that produced it.
func (e *Editor) Undo() (domain.NavState, error) {
	return e.history.Undo()
}

// Redo re-applies the last undone edit.
func (e *Editor) Redo() (domain.NavState, error) {
	return e.history.Redo()
}

// Check re-validates every stored boundary value.
func (e *Editor) Check() error {
	return boundary.Check(e.doc)
}

// Save writes the case under its current name and clears both the modified flag and the undo history.
func (e *Editor) Save(ctx context.Context) error {
	if e.Name == "" {
		return domain.ErrUnnamedCase
	}
	return e.save(ctx, e.Name)
}

// SaveAs writes the case under a new name, which becomes its current name. With a registry, the claim moves
// from the old name to the new one.
func (e *Editor) SaveAs(ctx context.Context, name string) error {
	if e.registry != nil {
		if err := e.registry.Move(e.Name, name, e.doc.ID); err != nil {
			return err
		}
	}
	if err := e.save(ctx, name); err != nil {
		if e.registry != nil && e.Name != "" {
			_ = e.registry.Move(name, e.Name, e.doc.ID)
		} else if e.registry != nil {
			e.registry.Unregister(name)
		}
		return err
	}
	e.Name = name
	e.doc.Path = name
	return nil
}

func (e *Editor) save(ctx context.Context, name string) error {
	data, err := e.doc.Save()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", name, err)
	}
	if err := e.store.Save(ctx, name, data); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}

	e.doc.ClearModified()
	e.history.Reset()
	e.logger.Info("Case saved", "name", name, "bytes", len(data))
	if e.hooks.OnSave != nil {
		e.hooks.OnSave(&domain.DocumentEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSave, CaseID: e.doc.ID},
			Name:      name,
			Bytes:     len(data),
		})
	}
	return nil
}

// Close releases the case in the registry. The editor must not be used afterwards.
func (e *Editor) Close() {
	if e.registry != nil && e.Name != "" {
		e.registry.Unregister(e.Name)
	}
}

func (e *Editor) emitDocument(typ domain.EventType, size int, err error) {
	if e.hooks.OnLoad == nil {
		return
	}
	evt := &domain.DocumentEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, CaseID: e.doc.ID},
		Name:      e.Name,
		Bytes:     size,
		Err:       err,
	}
	var le *casedoc.LoadError
	if errors.As(err, &le) {
		evt.Kind = string(le.Kind)
	} else if errors.Is(err, domain.ErrCaseNotFound) {
		evt.Kind = "not_found"
	} else if err != nil {
		evt.Kind = "io"
	}
	e.hooks.OnLoad(evt)
}
