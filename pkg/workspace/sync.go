package workspace

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/internal/copier"
	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/catalogs"
	"github.com/agentstation/agentsync/pkg/errors"
	"github.com/agentstation/agentsync/pkg/manifest"
	"github.com/agentstation/agentsync/pkg/resolve"
)

// SyncedItem is a manifest name that resolved and was copied.
type SyncedItem struct {
	// Requested is the manifest type list the name came from.
	Requested   artifacts.Type `json:"requested" yaml:"requested"`
	Name        string         `json:"name" yaml:"name"`
	Artifact    string         `json:"artifact" yaml:"artifact"`
	Score       float64        `json:"score" yaml:"score"`
	Source      string         `json:"source" yaml:"source"`
	Destination string         `json:"destination" yaml:"destination"`
}

// MissingItem is a manifest name that resolved to nothing.
type MissingItem struct {
	Requested artifacts.Type `json:"requested" yaml:"requested"`
	Name      string         `json:"name" yaml:"name"`
}

// FailedItem is an item whose copy or removal failed.
type FailedItem struct {
	Name  string `json:"name" yaml:"name"`
	Error string `json:"error" yaml:"error"`
}

// SyncReport summarises a sync run.
type SyncReport struct {
	DryRun  bool          `json:"dry_run" yaml:"dry_run"`
	Synced  []SyncedItem  `json:"synced" yaml:"synced"`
	Missing []MissingItem `json:"missing" yaml:"missing"`
	Failed  []FailedItem  `json:"failed,omitempty" yaml:"failed,omitempty"`
	// Removed are stray copies deleted after confirmation.
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	// Kept are stray copies the user chose to keep, or a dry run found.
	Kept []string `json:"kept,omitempty" yaml:"kept,omitempty"`
}

// Summary returns a one-line description of the run.
func (r *SyncReport) Summary() string {
	verb := "Synced"
	if r.DryRun {
		verb = "Would sync"
	}
	s := fmt.Sprintf("%s %d %s", verb, len(r.Synced), plural(len(r.Synced), "artifact"))
	if len(r.Missing) > 0 {
		s += fmt.Sprintf(", %d not found", len(r.Missing))
	}
	if len(r.Failed) > 0 {
		s += fmt.Sprintf(", %d failed", len(r.Failed))
	}
	if len(r.Removed) > 0 {
		s += fmt.Sprintf(", %d %s removed", len(r.Removed), plural(len(r.Removed), "stray"))
	}
	return s
}

// Sync copies every artifact requested by the manifest from the registry
// into the workspace. A missing manifest is a configuration error.
func (w *Workspace) Sync(ctx context.Context) (*SyncReport, error) {
	m, err := w.manifest.Load()
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewConfigError("manifest", fmt.Sprintf("%s not found", w.manifest.Path()), err)
		}
		return nil, err
	}
	return w.syncManifest(ctx, m)
}

func (w *Workspace) syncManifest(ctx context.Context, m *manifest.Manifest) (*SyncReport, error) {
	set, err := w.Registry()
	if err != nil {
		return nil, err
	}

	report := &SyncReport{DryRun: w.dryRun}
	for _, t := range artifacts.Types {
		for _, name := range m.Names(t) {
			if err := canceled(ctx); err != nil {
				return report, err
			}
			if err := w.syncOne(ctx, set, t, name, report); err != nil {
				return report, err
			}
		}
	}

	w.logger.Debug().
		Int("synced", len(report.Synced)).
		Int("missing", len(report.Missing)).
		Int("failed", len(report.Failed)).
		Bool("dry_run", w.dryRun).
		Msg("Sync finished")
	return report, nil
}

// syncOne resolves and copies one manifest name. Only cancellation is
// returned as an error; every other failure is recorded in the report.
func (w *Workspace) syncOne(ctx context.Context, set *catalogs.Set, t artifacts.Type, name string, report *SyncReport) error {
	match, ok := resolve.Resolve(name, set)
	if !ok {
		w.notify.Warning("%s %q not found in registry", t.Title(), name)
		report.Missing = append(report.Missing, MissingItem{Requested: t, Name: name})
		return nil
	}

	a := match.Artifact
	src, dst := w.registryPath(a), w.localPath(a)
	item := SyncedItem{
		Requested:   t,
		Name:        name,
		Artifact:    a.String(),
		Score:       match.Score,
		Source:      src,
		Destination: dst,
	}
	w.logger.Debug().Str("name", name).Str("artifact", a.String()).Float64("score", match.Score).Msg("Resolved manifest name")

	if w.dryRun {
		w.notify.Info("Would sync %s: %s", a.ArtifactType().Title(), w.displayPath(dst))
	} else {
		var err error
		if a.Kind() == artifacts.KindDirectory {
			err = copier.CopyDir(w.fs, src, dst)
		} else {
			err = copier.CopyFile(w.fs, src, dst)
		}
		if err != nil {
			w.notify.Error("Failed to sync %s: %v", name, err)
			w.logger.Error().Err(err).Str("name", name).Str("destination", dst).Msg("Copy failed")
			report.Failed = append(report.Failed, FailedItem{Name: name, Error: err.Error()})
			return nil
		}
		w.notify.Success("Synced %s: %s", a.ArtifactType().Title(), a.RelPath())
	}
	report.Synced = append(report.Synced, item)

	return w.handleStrays(ctx, a, report)
}

// handleStrays offers to delete copies of a in the other type folders.
func (w *Workspace) handleStrays(ctx context.Context, a artifacts.Artifact, report *SyncReport) error {
	strays, err := w.findStrays(a)
	if err != nil {
		w.logger.Warn().Err(err).Str("artifact", a.String()).Msg("Stray scan failed")
		return nil
	}

	for _, stray := range strays {
		shown := w.displayPath(stray)
		if w.dryRun {
			w.notify.Info("Would offer to remove stray copy %s", shown)
			report.Kept = append(report.Kept, stray)
			continue
		}

		ok, err := w.dialog.Confirm(ctx, fmt.Sprintf("Found stray copy of %s at %s. Delete it?", a.RelPath(), shown))
		if err != nil {
			return err
		}
		if !ok {
			w.notify.Skip("Kept %s", shown)
			report.Kept = append(report.Kept, stray)
			continue
		}

		if err := copier.Remove(w.fs, stray); err != nil {
			w.notify.Error("Failed to remove %s: %v", shown, err)
			report.Failed = append(report.Failed, FailedItem{Name: stray, Error: err.Error()})
			continue
		}
		w.notify.Success("Removed %s", shown)
		report.Removed = append(report.Removed, stray)
	}
	return nil
}

// findStrays lists copies of a in the three type folders it does not
// belong to: same top-level directory for directory artifacts, same
// relative key for generic filenames, same basename otherwise.
func (w *Workspace) findStrays(a artifacts.Artifact) ([]string, error) {
	var strays []string
	for _, t := range artifacts.Types {
		if t == a.ArtifactType() {
			continue
		}

		if a.Kind() == artifacts.KindDirectory {
			p := w.localPathFor(t, a.RelPath())
			ok, err := afero.DirExists(w.fs, p)
			if err != nil {
				return nil, errors.WrapIO("stat", p, err)
			}
			if ok {
				strays = append(strays, p)
			}
			continue
		}

		key := a.RelPath()
		if artifacts.IsGeneric(key) {
			p := w.localPathFor(t, key)
			ok, err := afero.Exists(w.fs, p)
			if err != nil {
				return nil, errors.WrapIO("stat", p, err)
			}
			if ok {
				strays = append(strays, p)
			}
			continue
		}

		local, err := catalogs.Load(w.fs, w.localPathFor(t, ""), t, catalogs.WithLogger(w.logger))
		if err != nil {
			return nil, err
		}
		for _, k := range local.Keys() {
			if path.Base(k) == path.Base(key) {
				strays = append(strays, w.localPathFor(t, k))
			}
		}
	}
	return strays, nil
}
