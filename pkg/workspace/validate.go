package workspace

import (
	"context"

	"github.com/agentstation/agentsync/pkg/catalogs"
	"github.com/agentstation/agentsync/pkg/reconcile"
)

// Validate classifies every local artifact file against the registry. It
// never writes.
func (w *Workspace) Validate(ctx context.Context) ([]reconcile.Verdict, error) {
	verdicts, _, err := w.classify(ctx)
	return verdicts, err
}

func (w *Workspace) classify(ctx context.Context) ([]reconcile.Verdict, *catalogs.Set, error) {
	set, err := w.Registry()
	if err != nil {
		return nil, nil, err
	}
	local, err := w.Local()
	if err != nil {
		return nil, nil, err
	}

	verdicts := make([]reconcile.Verdict, 0, len(local))
	for _, f := range local {
		if err := canceled(ctx); err != nil {
			return verdicts, set, err
		}
		v := reconcile.Classify(reconcile.FromLocal(f), set)
		v.LocalType = f.Type
		verdicts = append(verdicts, v)

		w.logger.Debug().
			Str("path", f.Path).
			Str("status", v.Status.String()).
			Str("key", v.Key).
			Msg("Classified local file")
	}
	return verdicts, set, nil
}
