package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/casetree/internal/config"
	"github.com/aretw0/casetree/pkg/boundary"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.StoreDir = t.TempDir()
	cfg.LogLevel = "error"
	cfg.Color = "never"
	cfg.Metrics = true
	return cfg
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	app, err := NewApp(testConfig(t), &out, &errOut)
	require.NoError(t, err)
	return app, &out, &errOut
}

func TestApp_CreateModifyOpen(t *testing.T) {
	ctx := context.Background()
	app, _, errOut := newTestApp(t)

	ed, err := app.Create(ctx, "duct")
	require.NoError(t, err)
	ed.Close()

	_, err = app.Create(ctx, "duct")
	assert.ErrorContains(t, err, "already exists")

	err = app.Modify(ctx, "duct", "wall", func(doc *casedoc.Document) error {
		w, err := boundary.NewWall(doc, "mur")
		if err != nil {
			return err
		}
		return SetProperty(w, "roughness", "0.05")
	})
	require.NoError(t, err)

	ed, err = app.Open(ctx, "duct")
	require.NoError(t, err)
	defer ed.Close()
	w, err := boundary.NewWall(ed.Document(), "mur")
	require.NoError(t, err)
	v, err := w.Roughness()
	require.NoError(t, err)
	assert.Equal(t, 0.05, v)

	require.NoError(t, app.Finish())
	assert.Contains(t, errOut.String(), `casetree_edits_total{label="wall"} 1`)
	assert.Contains(t, errOut.String(), "casetree_saves_total 2")
}

func TestApp_ModifyFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	app, _, _ := newTestApp(t)

	ed, err := app.Create(ctx, "duct")
	require.NoError(t, err)
	ed.Close()
	before, err := app.Store.Load(ctx, "duct")
	require.NoError(t, err)

	err = app.Modify(ctx, "duct", "wall", func(doc *casedoc.Document) error {
		w, err := boundary.NewWall(doc, "mur")
		if err != nil {
			return err
		}
		return SetProperty(w, "roughness", "-1")
	})
	require.Error(t, err)

	after, err := app.Store.Load(ctx, "duct")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Empty(t, app.Registry.List(), "the case must be released")
}

func TestApp_OpenMissing(t *testing.T) {
	app, _, _ := newTestApp(t)
	_, err := app.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
}

func TestApp_Profile(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.Equal(t, termenv.Ascii, app.Profile())
	assert.False(t, app.Color())

	app.Config.Color = "auto"
	assert.Equal(t, termenv.Ascii, app.Profile(), "a buffer is not a terminal")
}

func TestApp_EncryptedStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.EncryptionKey = strings.Repeat("ab", 32)

	var out, errOut bytes.Buffer
	app, err := NewApp(cfg, &out, &errOut)
	require.NoError(t, err)

	ed, err := app.Create(ctx, "secret")
	require.NoError(t, err)
	ed.Close()

	raw, err := os.ReadFile(filepath.Join(cfg.StoreDir, "secret.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "encrypted_case")
	assert.NotContains(t, string(raw), "Code_Saturne_GUI")

	ed, err = app.Open(ctx, "secret")
	require.NoError(t, err)
	ed.Close()

	plain := testConfig(t)
	plain.StoreDir = cfg.StoreDir
	plainApp, err := NewApp(plain, &out, &errOut)
	require.NoError(t, err)
	_, err = plainApp.Open(ctx, "secret")
	var le *casedoc.LoadError
	assert.ErrorAs(t, err, &le, "an encrypted file is not a case")
}
