package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRecord     EventType = "record"
	EventUndo       EventType = "undo"
	EventRedo       EventType = "redo"
	EventLoad       EventType = "load"
	EventLoadFailed EventType = "load_failed"
	EventSave       EventType = "save"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	CaseID    string    `json:"case_id"`
}

// HistoryEvent reports an undo-history transition.
type HistoryEvent struct {
	EventBase
	Label     string   `json:"label"`
	Nav       NavState `json:"nav"`
	UndoDepth int      `json:"undo_depth"`
	RedoDepth int      `json:"redo_depth"`
}

// DocumentEvent reports a load or save of a case document.
type DocumentEvent struct {
	EventBase
	Name  string `json:"name"`
	Bytes int    `json:"bytes,omitempty"`
	// Kind is the load error kind for EventLoadFailed.
	Kind string `json:"kind,omitempty"`
	Err  error  `json:"-"`
}

// LifecycleHooks defines callbacks for editor observability. Nil hooks are skipped.
type LifecycleHooks struct {
	OnRecord func(*HistoryEvent)
	OnUndo   func(*HistoryEvent)
	OnRedo   func(*HistoryEvent)
	OnLoad   func(*DocumentEvent)
	OnSave   func(*DocumentEvent)
}

// Chain combines hooks so that each callback of h runs before the matching callback of next.
func (h LifecycleHooks) Chain(next LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRecord: chainHistory(h.OnRecord, next.OnRecord),
		OnUndo:   chainHistory(h.OnUndo, next.OnUndo),
		OnRedo:   chainHistory(h.OnRedo, next.OnRedo),
		OnLoad:   chainDocument(h.OnLoad, next.OnLoad),
		OnSave:   chainDocument(h.OnSave, next.OnSave),
	}
}

func chainHistory(a, b func(*HistoryEvent)) func(*HistoryEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *HistoryEvent) {
		a(e)
		b(e)
	}
}

func chainDocument(a, b func(*DocumentEvent)) func(*DocumentEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *DocumentEvent) {
		a(e)
		b(e)
	}
}
