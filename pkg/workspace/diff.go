package workspace

import (
	"context"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/pkg/errors"
	"github.com/agentstation/agentsync/pkg/reconcile"
)

// FileDiff is the unified diff from a canonical entry to the local file
// that matched it.
type FileDiff struct {
	Verdict reconcile.Verdict `json:"verdict" yaml:"verdict"`
	Diff    string            `json:"diff" yaml:"diff"`
}

// Diff returns unified diffs for every modified or duplicate local file.
// A non-empty target limits the result to the file at that path or with
// that relative key.
func (w *Workspace) Diff(ctx context.Context, target string) ([]FileDiff, error) {
	verdicts, set, err := w.classify(ctx)
	if err != nil {
		return nil, err
	}

	var diffs []FileDiff
	for _, v := range verdicts {
		if v.Status != reconcile.Modified && v.Status != reconcile.Duplicate {
			continue
		}
		if target != "" && filepath.Clean(target) != filepath.Clean(v.Path) && target != v.Rel {
			continue
		}

		canonical, ok := set.Catalog(v.Type).Get(v.Key)
		if !ok {
			continue
		}
		local, err := afero.ReadFile(w.fs, v.Path)
		if err != nil {
			return diffs, errors.WrapIO("read", v.Path, err)
		}

		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(canonical.Content),
			B:        difflib.SplitLines(string(local)),
			FromFile: w.displayPath(w.registryPath(canonical.Artifact())),
			ToFile:   w.displayPath(v.Path),
			Context:  3,
		})
		if err != nil {
			return diffs, errors.WrapResource("diff", "artifact", v.Rel, err)
		}
		diffs = append(diffs, FileDiff{Verdict: v, Diff: text})
	}

	if target != "" && len(diffs) == 0 {
		w.notify.Info("No differences for %s", target)
	}
	return diffs, nil
}
