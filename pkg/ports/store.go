package ports

import "context"

// CaseStore persists serialized case documents by name.
type CaseStore interface {
	// Save writes the document, replacing any previous version.
	Save(ctx context.Context, name string, data []byte) error

	// Load returns the stored document.
	// Returns domain.ErrCaseNotFound if no case has this name.
	Load(ctx context.Context, name string) ([]byte, error)

	// Delete removes the case. Deleting an absent case is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored cases, sorted.
	List(ctx context.Context) ([]string, error)
}
