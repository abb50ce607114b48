package casedoc

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/casetree/internal/logging"
	"github.com/aretw0/casetree/pkg/domain"
	"github.com/aretw0/casetree/pkg/tree"
	"github.com/google/uuid"
)

const (
	// RootTag is the tag every persisted case must carry on its root element.
	RootTag = "Code_Saturne_GUI"
	// SchemaVersion is the only version accepted by Load.
	SchemaVersion = "2.0"
	// VersionAttr is the root attribute holding the schema version.
	VersionAttr = "version"
)

// Top-level sections created for every new case.
const (
	SectionModels     = "thermophysical_models"
	SectionBoundaries = "boundary_conditions"
)

// SessionState holds UI state attached to an open case. It is never persisted.
type SessionState struct {
	CurrentTab    int
	SelectedEntry string
	Nav           domain.NavState
	ExpertMode    bool
}

// Document owns one case tree plus its identity metadata.
// A Document is not safe for concurrent use; confine it to one goroutine.
type Document struct {
	// Path is the source file, empty for an unsaved case.
	Path string
	// ID identifies the case for the lifetime of the process.
	ID string
	// Session is scratch UI state.
	Session SessionState

	root     *tree.Node
	modified bool
	logger   *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithPath sets the source path.
func WithPath(path string) Option {
	return func(d *Document) {
		d.Path = path
	}
}

// WithLogger configures a logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// New creates an empty case.
func New(opts ...Option) *Document {
	d := &Document{
		ID:     uuid.NewString(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	root := tree.New(RootTag,
		tree.A(VersionAttr, SchemaVersion),
		tree.A("study", ""),
		tree.A("case", caseName(d.Path)),
	)
	root.FindOrCreate(SectionModels)
	root.FindOrCreate(SectionBoundaries)
	d.root = root
	return d
}

// Open creates a Document from its persisted form.
func Open(data []byte, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := d.Load(data); err != nil {
		return nil, err
	}
	return d, nil
}

func caseName(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Root returns the root node.
func (d *Document) Root() *tree.Node {
	return d.root
}

// Section returns the named top-level section, creating it when absent.
func (d *Document) Section(name string) *tree.Node {
	return d.root.FindOrCreate(name)
}

// Version returns the schema version carried by the root.
func (d *Document) Version() string {
	v, _ := d.root.Attr(VersionAttr)
	return v
}

// IsModified reports whether the case changed since it was last loaded or saved.
func (d *Document) IsModified() bool {
	return d.modified
}

// MarkModified flags the case as changed.
func (d *Document) MarkModified() {
	d.modified = true
}

// ClearModified resets the flag, typically after a save.
func (d *Document) ClearModified() {
	d.modified = false
}

// Load replaces the tree with a parsed persisted form. On failure the current tree is kept and a
// *LoadError is returned.
func (d *Document) Load(data []byte) error {
	root, err := d.check(data)
	if err != nil {
		d.logger.Warn("Rejected case document", "path", d.Path, "kind", err.Kind, "detail", err.Detail)
		return err
	}

	d.root = root
	d.modified = false
	d.Session = SessionState{}
	d.logger.Debug("Case document loaded", "path", d.Path, "nodes", root.Count())
	return nil
}

func (d *Document) check(data []byte) (*tree.Node, *LoadError) {
	root, err := tree.Parse(data)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, tree.ErrEmptyDocument) {
			detail = "no root element"
		}
		return nil, &LoadError{Kind: LoadMalformed, Path: d.Path, Detail: detail, Err: err}
	}

	if root.Tag != RootTag {
		return nil, &LoadError{
			Kind:   LoadWrongRoot,
			Path:   d.Path,
			Detail: fmt.Sprintf("root element <%s>, expected <%s>", root.Tag, RootTag),
		}
	}

	version, ok := root.Attr(VersionAttr)
	if !ok {
		return nil, &LoadError{Kind: LoadWrongVersion, Path: d.Path, Detail: "missing version attribute"}
	}
	if version != SchemaVersion {
		return nil, &LoadError{
			Kind:   LoadWrongVersion,
			Path:   d.Path,
			Detail: fmt.Sprintf("version %q, expected %q", version, SchemaVersion),
		}
	}

	return root, nil
}

// Save serializes the case. There is no validation gate: constraint violations are rejected when values are
// written, so any tree reachable through the accessors is saveable.
func (d *Document) Save() ([]byte, error) {
	return tree.Serialize(d.root)
}

// Snapshot captures the whole tree for the undo history.
func (d *Document) Snapshot() ([]byte, error) {
	return tree.Serialize(d.root)
}

// Restore replaces the tree with a snapshot and marks the case modified.
func (d *Document) Restore(snapshot []byte) error {
	root, err := tree.Parse(snapshot)
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	d.root = root
	d.modified = true
	return nil
}
