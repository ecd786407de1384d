package workspace

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/catalogs"
	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/manifest"
)

// ImportReport summarises an import run.
type ImportReport struct {
	Added map[artifacts.Type][]string `json:"added" yaml:"added"`
	// Created is set when the manifest did not exist before.
	Created bool        `json:"created" yaml:"created"`
	Sync    *SyncReport `json:"sync,omitempty" yaml:"sync,omitempty"`
}

// Summary returns a one-line description of the run.
func (r *ImportReport) Summary() string {
	added := 0
	for _, names := range r.Added {
		added += len(names)
	}
	s := fmt.Sprintf("Added %d %s to the manifest", added, plural(added, "name"))
	if r.Sync != nil {
		s += ". " + r.Sync.Summary()
	}
	return s
}

// Import offers, per type, the registry artifacts the manifest does not
// request yet, adds the selected names to the manifest (creating it when
// absent), saves it and runs Sync.
func (w *Workspace) Import(ctx context.Context) (*ImportReport, error) {
	existed, err := w.manifest.Exists()
	if err != nil {
		return nil, err
	}
	m, err := w.manifest.LoadOrNew()
	if err != nil {
		return nil, err
	}
	set, err := w.Registry()
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Added: make(map[artifacts.Type][]string), Created: !existed}
	for _, t := range artifacts.Types {
		if err := canceled(ctx); err != nil {
			return report, err
		}

		options := importOptions(set, m, t)
		if len(options) == 0 {
			continue
		}

		answer, err := w.dialog.Input(ctx, importMessage(t, options))
		if err != nil {
			return report, err
		}
		if added := m.Add(t, parseSelection(answer, options)...); len(added) > 0 {
			report.Added[t] = added
			w.notify.Success("Added %d %s to manifest", len(added), w.layout.Folder(t))
		}
	}

	if len(report.Added) == 0 && existed {
		w.notify.Info("Manifest unchanged")
	} else if w.dryRun {
		w.notify.Info("Would write %s", w.manifest.Path())
	} else {
		if err := w.manifest.Save(m); err != nil {
			return report, err
		}
		w.notify.Success("Wrote %s", w.manifest.Path())
	}

	report.Sync, err = w.syncManifest(ctx, m)
	return report, err
}

// importOptions lists the names of type t not requested yet: file keys
// without their extension, plus skill directories for skills. Files inside
// a skill directory are offered through the directory.
func importOptions(set *catalogs.Set, m *manifest.Manifest, t artifacts.Type) []string {
	dirs := make(map[string]bool)
	var options []string
	if t == artifacts.Skill {
		for _, d := range set.SkillDirs() {
			dirs[d] = true
			if !m.Has(t, d) {
				options = append(options, d)
			}
		}
	}

	for _, key := range set.Catalog(t).Keys() {
		if first, _, nested := strings.Cut(key, "/"); nested && dirs[first] {
			continue
		}
		name := strings.TrimSuffix(key, constants.DocumentExt)
		if !m.Has(t, name) && !m.Has(t, key) {
			options = append(options, name)
		}
	}
	return options
}

func importMessage(t artifacts.Type, options []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Available %ss:\n", t)
	for i, o := range options {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, o)
	}
	b.WriteString("Select (comma-separated names or numbers, blank to skip)")
	return b.String()
}

// parseSelection turns a comma-separated answer into names. Numbers pick
// from options (1-based); anything else is taken as a name.
func parseSelection(answer string, options []string) []string {
	var names []string
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			if n >= 1 && n <= len(options) {
				names = append(names, options[n-1])
			}
			continue
		}
		names = append(names, part)
	}
	return names
}
