package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/casetree/internal/logging"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/domain"
)

// Record is an immutable snapshot of the whole case taken before a change.
type Record struct {
	Label    string
	Nav      domain.NavState
	snapshot []byte
}

// Snapshot returns a copy of the serialized case.
func (r Record) Snapshot() []byte {
	return append([]byte(nil), r.snapshot...)
}

// Controller keeps a linear undo/redo history for one case. It is not safe for concurrent use.
type Controller struct {
	doc    *casedoc.Document
	undo   []Record
	redo   []Record
	limit  int
	state  domain.HistoryState
	hooks  domain.LifecycleHooks
	logger *slog.Logger

	// dropped is the redo branch cleared by the last record, kept until Rollback or the next step.
	dropped []Record
	// prior is the state before the last record, empty once it can no longer be rolled back.
	prior domain.HistoryState
}

// Option configures a Controller.
type Option func(*Controller)

// WithLimit bounds the undo stack. The oldest records are dropped first. Zero means unbounded.
func WithLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates an empty, clean history for doc.
func New(doc *casedoc.Document, opts ...Option) *Controller {
	c := &Controller{
		doc:    doc,
		state:  domain.StateClean,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecordBeforeChange snapshots the current case so the next mutation can be undone. It clears the redo branch.
func (c *Controller) RecordBeforeChange(label string, nav domain.NavState) error {
	snap, err := c.doc.Snapshot()
	if err != nil {
		return fmt.Errorf("record %q: %w", label, err)
	}

	c.dropped = c.redo
	c.prior = c.state
	c.undo = append(c.undo, Record{Label: label, Nav: nav, snapshot: snap})
	if c.limit > 0 && len(c.undo) > c.limit {
		dropped := len(c.undo) - c.limit
		clear(c.undo[:dropped])
		c.undo = c.undo[dropped:]
	}
	c.redo = nil
	c.state = domain.StateDirty

	c.logger.Debug("Recorded change", "label", label, "undo_depth", len(c.undo))
	c.emit(c.hooks.OnRecord, domain.EventRecord, label, nav)
	return nil
}

// Undo restores the case as it was before the last recorded change and returns the navigation state of that
// change. The current case moves onto the redo branch.
func (c *Controller) Undo() (domain.NavState, error) {
	if len(c.undo) == 0 {
		return domain.NavState{}, domain.ErrNothingToUndo
	}
	rec, err := c.step(&c.undo, &c.redo)
	if err != nil {
		return domain.NavState{}, fmt.Errorf("undo %q: %w", rec.Label, err)
	}
	c.logger.Debug("Undo", "label", rec.Label, "undo_depth", len(c.undo), "redo_depth", len(c.redo))
	c.emit(c.hooks.OnUndo, domain.EventUndo, rec.Label, rec.Nav)
	return rec.Nav, nil
}

// Redo re-applies the last undone change.
func (c *Controller) Redo() (domain.NavState, error) {
	if len(c.redo) == 0 {
		return domain.NavState{}, domain.ErrNothingToRedo
	}
	rec, err := c.step(&c.redo, &c.undo)
	if err != nil {
		return domain.NavState{}, fmt.Errorf("redo %q: %w", rec.Label, err)
	}
	c.logger.Debug("Redo", "label", rec.Label, "undo_depth", len(c.undo), "redo_depth", len(c.redo))
	c.emit(c.hooks.OnRedo, domain.EventRedo, rec.Label, rec.Nav)
	return rec.Nav, nil
}

// step pops from src, pushes the current case onto dst under the same label and restores the popped snapshot.
// On failure both stacks are left as they were.
func (c *Controller) step(src, dst *[]Record) (Record, error) {
	rec := (*src)[len(*src)-1]

	current, err := c.doc.Snapshot()
	if err != nil {
		return rec, err
	}
	if err := c.doc.Restore(rec.snapshot); err != nil {
		return rec, err
	}

	*src = (*src)[:len(*src)-1]
	*dst = append(*dst, Record{Label: rec.Label, Nav: rec.Nav, snapshot: current})
	c.dropped, c.prior = nil, ""
	return rec, nil
}

// Rollback restores the last record and drops it. Right after RecordBeforeChange it also brings back the redo
// branch and the state that record replaced, so an abandoned edit leaves the history as it found it.
func (c *Controller) Rollback() error {
	if len(c.undo) == 0 {
		return domain.ErrNothingToUndo
	}
	rec := c.undo[len(c.undo)-1]
	if err := c.doc.Restore(rec.snapshot); err != nil {
		return fmt.Errorf("rollback %q: %w", rec.Label, err)
	}
	c.undo = c.undo[:len(c.undo)-1]
	if c.prior != "" {
		c.redo = c.dropped
		c.state = c.prior
	} else if len(c.undo) == 0 && len(c.redo) == 0 {
		c.state = domain.StateClean
	}
	c.dropped, c.prior = nil, ""
	c.logger.Debug("Rolled back change", "label", rec.Label, "redo_depth", len(c.redo))
	return nil
}

// Reset clears both stacks. Call it after a save or a successful load; the modified flag is left to the caller.
func (c *Controller) Reset() {
	c.undo = nil
	c.redo = nil
	c.dropped, c.prior = nil, ""
	c.state = domain.StateClean
}

func (c *Controller) CanUndo() bool { return len(c.undo) > 0 }
func (c *Controller) CanRedo() bool { return len(c.redo) > 0 }

// UndoLabel names the change Undo would revert, "" when there is none.
func (c *Controller) UndoLabel() string {
	if len(c.undo) == 0 {
		return ""
	}
	return c.undo[len(c.undo)-1].Label
}

// RedoLabel names the change Redo would re-apply, "" when there is none.
func (c *Controller) RedoLabel() string {
	if len(c.redo) == 0 {
		return ""
	}
	return c.redo[len(c.redo)-1].Label
}

// Depth returns the sizes of the undo and redo stacks.
func (c *Controller) Depth() (undo, redo int) {
	return len(c.undo), len(c.redo)
}

// State reports Dirty once a change was recorded since the last Reset. Undo and Redo never change it.
func (c *Controller) State() domain.HistoryState {
	return c.state
}

func (c *Controller) emit(hook func(*domain.HistoryEvent), typ domain.EventType, label string, nav domain.NavState) {
	if hook == nil {
		return
	}
	hook(&domain.HistoryEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, CaseID: c.doc.ID},
		Label:     label,
		Nav:       nav,
		UndoDepth: len(c.undo),
		RedoDepth: len(c.redo),
	})
}
