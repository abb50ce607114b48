package session

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/casetree/internal/logging"
	"github.com/aretw0/casetree/pkg/domain"
)

// Entry describes one open case.
type Entry struct {
	Key      string
	CaseID   string
	OpenedAt time.Time
}

// Registry tracks which cases are open so the same source is never loaded twice.
// It is passed explicitly to the components that open cases. Safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	open   map[string]Entry
	logger *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		open:   make(map[string]Entry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key normalizes a source name to a cleaned absolute path so that equivalent spellings collide, relative
// names resolving against the working directory. A blank source yields "".
func Key(source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return ""
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return filepath.Clean(source)
	}
	return abs
}

// Register marks source as open by caseID.
// Returns domain.ErrCaseAlreadyOpen if another case holds it.
func (r *Registry) Register(source, caseID string) error {
	key := Key(source)
	if key == "" {
		return fmt.Errorf("register: empty source")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.open[key]; ok {
		if e.CaseID == caseID {
			return nil
		}
		return fmt.Errorf("%s: %w", key, domain.ErrCaseAlreadyOpen)
	}
	r.open[key] = Entry{Key: key, CaseID: caseID, OpenedAt: time.Now()}
	r.logger.Debug("Case registered", "key", key, "case_id", caseID)
	return nil
}

// Unregister releases source. It reports whether the source was open.
func (r *Registry) Unregister(source string) bool {
	key := Key(source)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.open[key]; !ok {
		return false
	}
	delete(r.open, key)
	r.logger.Debug("Case unregistered", "key", key)
	return true
}

// Move re-keys the case held by caseID from oldSource to newSource, e.g. after "save as".
// Returns domain.ErrCaseAlreadyOpen if newSource belongs to another case.
func (r *Registry) Move(oldSource, newSource, caseID string) error {
	oldKey, newKey := Key(oldSource), Key(newSource)
	if newKey == "" {
		return fmt.Errorf("move: empty source")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.open[newKey]; ok && e.CaseID != caseID {
		return fmt.Errorf("%s: %w", newKey, domain.ErrCaseAlreadyOpen)
	}
	entry, ok := r.open[oldKey]
	if !ok || entry.CaseID != caseID {
		entry = Entry{CaseID: caseID, OpenedAt: time.Now()}
	} else {
		delete(r.open, oldKey)
	}
	entry.Key = newKey
	r.open[newKey] = entry
	return nil
}

// Lookup returns the entry holding source.
func (r *Registry) Lookup(source string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.open[Key(source)]
	return e, ok
}

// IsOpen reports whether source is held by any case.
func (r *Registry) IsOpen(source string) bool {
	_, ok := r.Lookup(source)
	return ok
}

// List returns the open cases sorted by key.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.open))
	for _, e := range r.open {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
	return out
}
