package casedoc

import "fmt"

// LoadErrorKind classifies why a persisted document was rejected.
type LoadErrorKind string

const (
	LoadMalformed    LoadErrorKind = "malformed"     // Not well-formed XML, or no root element
	LoadWrongRoot    LoadErrorKind = "wrong_root"    // Root tag differs from RootTag
	LoadWrongVersion LoadErrorKind = "wrong_version" // Version attribute absent or different from SchemaVersion
)

// LoadError is returned by Load and Open. The previously loaded document is left untouched.
type LoadError struct {
	Kind   LoadErrorKind
	Path   string // Source path, empty for in-memory data
	Detail string
	Err    error // Underlying parse error, if any
}

func (e *LoadError) Error() string {
	src := e.Path
	if src == "" {
		src = "<memory>"
	}
	return fmt.Sprintf("load %s: %s: %s", src, e.Kind, e.Detail)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
