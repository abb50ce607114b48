package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/casetree"
	"github.com/aretw0/casetree/internal/adapters/file"
	"github.com/aretw0/casetree/internal/config"
	"github.com/aretw0/casetree/internal/metrics"
	"github.com/aretw0/casetree/pkg/casedoc"
	"github.com/aretw0/casetree/pkg/domain"
	"github.com/aretw0/casetree/pkg/persistence/middleware"
	"github.com/aretw0/casetree/pkg/ports"
	"github.com/aretw0/casetree/pkg/session"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// App carries what every command needs: settings, logger, case store and open-case registry.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    ports.CaseStore
	Registry *session.Registry
	// Metrics is nil unless enabled in the config.
	Metrics *metrics.Metrics

	Out io.Writer
	Err io.Writer
}

// NewApp wires an App from cfg. Command output goes to out, diagnostics to errOut.
func NewApp(cfg config.Config, out, errOut io.Writer) (*App, error) {
	logger := cfg.Logger()
	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Registry: session.NewRegistry(session.WithLogger(logger)),
		Out:      out,
		Err:      errOut,
	}
	if cfg.Metrics {
		a.Metrics = metrics.New()
	}
	return a, nil
}

// createStore opens the case directory, encrypted at rest when a key is configured.
func createStore(cfg config.Config) (ports.CaseStore, error) {
	var store ports.CaseStore = file.New(cfg.StoreDir)
	if cfg.EncryptionKey == "" {
		return store, nil
	}

	key, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	if err != nil {
		return nil, err
	}
	return middleware.Chain(store, mw), nil
}

func (a *App) options() []casetree.Option {
	hooks := createDebugHooks(a.Logger)
	if a.Metrics != nil {
		hooks = hooks.Chain(a.Metrics.Hooks())
	}
	return []casetree.Option{
		casetree.WithStore(a.Store),
		casetree.WithRegistry(a.Registry),
		casetree.WithLogger(a.Logger),
		casetree.WithLifecycleHooks(hooks),
		casetree.WithUndoLimit(a.Config.UndoLimit),
	}
}

// Create saves a new empty case under name. It refuses to overwrite an existing case.
func (a *App) Create(ctx context.Context, name string) (*casetree.Editor, error) {
	if _, err := a.Store.Load(ctx, name); err == nil {
		return nil, fmt.Errorf("case %q already exists", name)
	} else if !errors.Is(err, domain.ErrCaseNotFound) {
		return nil, err
	}

	ed := casetree.New(a.options()...)
	if err := ed.SaveAs(ctx, name); err != nil {
		return nil, err
	}
	return ed, nil
}

// Open loads the case stored under name.
func (a *App) Open(ctx context.Context, name string) (*casetree.Editor, error) {
	return casetree.Open(ctx, name, a.options()...)
}

// Modify opens name, applies fn as one undoable edit labelled label and saves the result. Nothing is written
// when fn fails or leaves the case unmodified.
func (a *App) Modify(ctx context.Context, name, label string, fn func(doc *casedoc.Document) error) error {
	ed, err := a.Open(ctx, name)
	if err != nil {
		return err
	}
	defer ed.Close()

	if err := ed.Edit(label, domain.NavState{Section: label, Page: -1}, fn); err != nil {
		return err
	}
	if !ed.IsModified() {
		a.Logger.Debug("Edit left the case unchanged", "name", name, "label", label)
		return nil
	}
	return ed.Save(ctx)
}

// Profile returns the colour profile for Out according to the color setting.
func (a *App) Profile() termenv.Profile {
	switch a.Config.Color {
	case "never":
		return termenv.Ascii
	case "always":
		return termenv.EnvColorProfile()
	}
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.EnvColorProfile()
	}
	return termenv.Ascii
}

// Color reports whether Out gets colours.
func (a *App) Color() bool {
	return a.Profile() != termenv.Ascii
}

// Finish dumps the collected metrics to Err when enabled.
func (a *App) Finish() error {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics.WriteText(a.Err)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRecord: func(e *domain.HistoryEvent) {
			logger.Debug("Record", "label", e.Label, "undo_depth", e.UndoDepth)
		},
		OnUndo: func(e *domain.HistoryEvent) {
			logger.Debug("Undo", "label", e.Label, "redo_depth", e.RedoDepth)
		},
		OnRedo: func(e *domain.HistoryEvent) {
			logger.Debug("Redo", "label", e.Label, "undo_depth", e.UndoDepth)
		},
		OnLoad: func(e *domain.DocumentEvent) {
			if e.Err != nil {
				logger.Debug("Load failed", "name", e.Name, "kind", e.Kind, "err", e.Err)
				return
			}
			logger.Debug("Load", "name", e.Name, "bytes", e.Bytes)
		},
		OnSave: func(e *domain.DocumentEvent) {
			logger.Debug("Save", "name", e.Name, "bytes", e.Bytes)
		},
	}
}
