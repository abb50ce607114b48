package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/casetree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCaseStoreContract runs a suite of tests to verify that a CaseStore implementation
// adheres to the defined interface contract.
func RunCaseStoreContract(t *testing.T, store CaseStore) {
	ctx := context.Background()
	name := "contract-case-" + time.Now().Format("20060102150405")
	doc := []byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n" + `<Code_Saturne_GUI version="2.0"></Code_Saturne_GUI>` + "\n")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, name, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		next := []byte(`<Code_Saturne_GUI version="2.0" case="next"/>`)
		require.NoError(t, store.Save(ctx, name, next))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, next, loaded)
	})

	t.Run("Stored Bytes Are Isolated", func(t *testing.T) {
		buf := append([]byte(nil), doc...)
		require.NoError(t, store.Save(ctx, name, buf))
		buf[0] = 'X'

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, doc, loaded, "mutating the saved slice must not change the store")

		loaded[0] = 'Y'
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, doc, again, "mutating a loaded slice must not change the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrCaseNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, doc))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrCaseNotFound, "Load after Delete should return ErrCaseNotFound")

		assert.NoError(t, store.Delete(ctx, name), "deleting twice is fine")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id2, doc)
		_ = store.Save(ctx, id1, doc)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})

	t.Run("Empty Name", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, "", doc))
		_, err := store.Load(ctx, "")
		assert.Error(t, err)
	})
}
