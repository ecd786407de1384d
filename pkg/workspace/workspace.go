// Package workspace runs the agentsync operations against one local
// workspace and one registry: validate, sync, promote, import, diff and
// listing.
//
// Every operation loads the registry and the local files fresh and hands
// them to the reconcile and resolve packages explicitly. Operations process
// items one at a time; a declined prompt, an unresolved name or a failed
// copy affects only that item. Completed copies stay in place when a run is
// interrupted.
package workspace

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/catalogs"
	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/errors"
	"github.com/agentstation/agentsync/pkg/logging"
	"github.com/agentstation/agentsync/pkg/manifest"
)

// Dialog asks the user for confirmation and free-text input.
type Dialog interface {
	Confirm(ctx context.Context, message string) (bool, error)
	Input(ctx context.Context, message string) (string, error)
}

// Notifier receives the user-facing status line of each item.
type Notifier interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Skip(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// Options configures a Workspace.
type Options struct {
	// Fs is the filesystem; defaults to the OS filesystem.
	Fs afero.Fs
	// RegistryRoot is the canonical registry directory. Required.
	RegistryRoot string
	// WorkspaceRoot is the local workspace directory, ".agent" by default.
	WorkspaceRoot string
	// ManifestPath is the manifest file, "agent-manifest.json" by default.
	ManifestPath string
	// Layout names the type folders; the default layout fills gaps.
	Layout artifacts.Layout
	// Ignore lists doublestar patterns of keys to leave out of every catalog.
	Ignore []string
	// Dialog answers prompts; nil denies every confirmation.
	Dialog Dialog
	// Notifier prints status lines; nil discards them.
	Notifier Notifier
	// Logger receives diagnostics; defaults to the global logger.
	Logger *zerolog.Logger
	// DryRun reports what sync and promote would copy without writing or
	// prompting.
	DryRun bool
}

// Workspace runs operations for one workspace/registry pair.
type Workspace struct {
	fs       afero.Fs
	registry string
	root     string
	layout   artifacts.Layout
	ignore   []string
	dialog   Dialog
	notify   Notifier
	logger   *zerolog.Logger
	dryRun   bool
	manifest *manifest.Store
}

// New creates a Workspace.
func New(opts Options) (*Workspace, error) {
	if strings.TrimSpace(opts.RegistryRoot) == "" {
		return nil, errors.NewConfigError("registry", "registry root is required", errors.ErrInvalidInput)
	}

	w := &Workspace{
		fs:       opts.Fs,
		registry: filepath.Clean(opts.RegistryRoot),
		root:     opts.WorkspaceRoot,
		layout:   opts.Layout,
		ignore:   opts.Ignore,
		dialog:   opts.Dialog,
		notify:   opts.Notifier,
		logger:   opts.Logger,
		dryRun:   opts.DryRun,
	}
	if w.fs == nil {
		w.fs = afero.NewOsFs()
	}
	if w.root == "" {
		w.root = constants.DefaultWorkspaceDir
	}
	w.root = filepath.Clean(w.root)
	if w.layout == nil {
		w.layout = artifacts.DefaultLayout()
	}
	if w.dialog == nil {
		w.dialog = denyDialog{}
	}
	if w.notify == nil {
		w.notify = nopNotifier{}
	}
	if w.logger == nil {
		w.logger = logging.Default()
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = constants.DefaultManifestFile
	}
	w.manifest = manifest.NewStore(w.fs, manifestPath)

	return w, nil
}

// RegistryRoot returns the registry directory.
func (w *Workspace) RegistryRoot() string {
	return w.registry
}

// Root returns the local workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Manifest returns the manifest store.
func (w *Workspace) Manifest() *manifest.Store {
	return w.manifest
}

// Registry loads every registry catalog.
func (w *Workspace) Registry() (*catalogs.Set, error) {
	exists, err := afero.DirExists(w.fs, w.registry)
	if err != nil {
		return nil, errors.WrapIO("stat", w.registry, err)
	}
	if !exists {
		w.logger.Warn().Str("registry", w.registry).Msg("Registry directory does not exist")
	}
	return catalogs.LoadRegistry(w.fs, w.registry, w.layout, w.loadOptions()...)
}

// Local lists every artifact file in the workspace.
func (w *Workspace) Local() ([]catalogs.LocalFile, error) {
	return catalogs.ListLocal(w.fs, w.root, w.layout, w.loadOptions()...)
}

func (w *Workspace) loadOptions() []catalogs.Option {
	return []catalogs.Option{catalogs.WithIgnore(w.ignore...), catalogs.WithLogger(w.logger)}
}

// registryPath returns the registry location of an artifact.
func (w *Workspace) registryPath(a artifacts.Artifact) string {
	return filepath.Join(w.registry, w.layout.Folder(a.ArtifactType()), filepath.FromSlash(a.RelPath()))
}

// localPath returns the workspace location of an artifact.
func (w *Workspace) localPath(a artifacts.Artifact) string {
	return w.localPathFor(a.ArtifactType(), a.RelPath())
}

func (w *Workspace) localPathFor(t artifacts.Type, rel string) string {
	return filepath.Join(w.root, w.layout.Folder(t), filepath.FromSlash(rel))
}

// locate maps a workspace file to the type folder containing it and its
// slash path inside that folder. Files outside every folder are personas
// keyed by their basename.
func (w *Workspace) locate(p string) (artifacts.Type, string) {
	abs := absPath(p)
	for _, t := range artifacts.Types {
		dir := absPath(filepath.Join(w.root, w.layout.Folder(t)))
		rel, err := filepath.Rel(dir, abs)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return t, filepath.ToSlash(rel)
	}
	return artifacts.Persona, path.Base(filepath.ToSlash(p))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// displayPath shortens p relative to the workspace or registry root.
func (w *Workspace) displayPath(p string) string {
	for _, root := range []string{w.root, w.registry} {
		if rel, err := filepath.Rel(root, p); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(filepath.Join(filepath.Base(root), rel))
		}
	}
	return p
}

// canceled returns a cancellation error once ctx is done.
func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(errors.ErrCanceled, err)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

type denyDialog struct{}

func (denyDialog) Confirm(context.Context, string) (bool, error) { return false, nil }
func (denyDialog) Input(context.Context, string) (string, error) { return "", nil }

type nopNotifier struct{}

func (nopNotifier) Info(string, ...any)    {}
func (nopNotifier) Success(string, ...any) {}
func (nopNotifier) Skip(string, ...any)    {}
func (nopNotifier) Warning(string, ...any) {}
func (nopNotifier) Error(string, ...any)   {}
