package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/casetree/internal/adapters/file"
	"github.com/aretw0/casetree/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.CaseStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunCaseStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(filepath.Join(dir, "nested"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "pipe", []byte("<a/>")))
	data, err := os.ReadFile(filepath.Join(dir, "nested", "pipe.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<a/>", string(data))

	// The extension is optional in names.
	loaded, err := store.Load(ctx, "pipe.xml")
	require.NoError(t, err)
	assert.Equal(t, data, loaded)

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file left behind")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "notes.txt"), []byte("x"), 0o644))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pipe"}, names)
}

func TestFileStore_RejectsUnsafeNames(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "  ", "../escape", "a/b", `a\b`, "/etc/passwd", "x..y"} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, store.Save(ctx, name, []byte("<a/>")))
			_, err := store.Load(ctx, name)
			assert.Error(t, err)
			assert.Error(t, store.Delete(ctx, name))
		})
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
