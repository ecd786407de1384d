package workspace

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/internal/copier"
	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/errors"
	"github.com/agentstation/agentsync/pkg/reconcile"
)

// PromoteItem is one local file proposed for the registry.
type PromoteItem struct {
	Status      reconcile.Status `json:"status" yaml:"status"`
	Source      string           `json:"source" yaml:"source"`
	Type        artifacts.Type   `json:"type" yaml:"type"`
	Key         string           `json:"key" yaml:"key"`
	Destination string           `json:"destination" yaml:"destination"`
}

// PromoteReport summarises a promote run.
type PromoteReport struct {
	DryRun   bool          `json:"dry_run" yaml:"dry_run"`
	Promoted []PromoteItem `json:"promoted" yaml:"promoted"`
	Skipped  []PromoteItem `json:"skipped" yaml:"skipped"`
	Failed   []FailedItem  `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Summary returns a one-line description of the run.
func (r *PromoteReport) Summary() string {
	if r.DryRun {
		return fmt.Sprintf("Would promote %d %s", len(r.Skipped), plural(len(r.Skipped), "artifact"))
	}
	s := fmt.Sprintf("Promoted %d %s", len(r.Promoted), plural(len(r.Promoted), "artifact"))
	if len(r.Skipped) > 0 {
		s += fmt.Sprintf(", %d skipped", len(r.Skipped))
	}
	if len(r.Failed) > 0 {
		s += fmt.Sprintf(", %d failed", len(r.Failed))
	}
	return s
}

// Promote copies local changes into the registry. With a target, only that
// file or skill directory is promoted, as a new artifact placed according
// to the type folder containing it. Without one, every modified, duplicate
// and new file found by Validate is proposed. Each item needs confirmation.
func (w *Workspace) Promote(ctx context.Context, target string) (*PromoteReport, error) {
	var items []PromoteItem
	if target != "" {
		item, err := w.explicitItem(target)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	} else {
		verdicts, err := w.Validate(ctx)
		if err != nil {
			return nil, err
		}
		items = w.promoteItems(verdicts)
	}

	report := &PromoteReport{DryRun: w.dryRun}
	if len(items) == 0 {
		w.notify.Info("Nothing to promote")
		return report, nil
	}

	for _, item := range items {
		if err := canceled(ctx); err != nil {
			return report, err
		}
		if err := w.promoteOne(ctx, item, report); err != nil {
			return report, err
		}
	}

	w.logger.Debug().
		Int("promoted", len(report.Promoted)).
		Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).
		Bool("dry_run", w.dryRun).
		Msg("Promote finished")
	return report, nil
}

func (w *Workspace) explicitItem(target string) (PromoteItem, error) {
	exists, err := afero.Exists(w.fs, target)
	if err != nil {
		return PromoteItem{}, errors.WrapIO("stat", target, err)
	}
	if !exists {
		return PromoteItem{}, errors.NewConfigError("promote", fmt.Sprintf("file %s not found", target), errors.NewNotFoundError("file", target))
	}

	t, rel := w.locate(target)
	return PromoteItem{
		Status:      reconcile.New,
		Source:      target,
		Type:        t,
		Key:         rel,
		Destination: w.registryPath(artifacts.FileArtifact{Type: t, Key: rel}),
	}, nil
}

// promoteItems turns verdicts into promotion items. Modified and duplicate
// files overwrite the entry they matched; new files mirror their position
// under their local type folder.
func (w *Workspace) promoteItems(verdicts []reconcile.Verdict) []PromoteItem {
	var items []PromoteItem
	for _, v := range verdicts {
		if !v.Status.Promotable() {
			continue
		}

		item := PromoteItem{Status: v.Status, Source: v.Path}
		if match, ok := v.Match(); ok {
			item.Type, item.Key = match.Type, match.Key
		} else {
			item.Type, item.Key = v.LocalType, v.Rel
			if item.Type == "" {
				item.Type = artifacts.Persona
			}
		}
		item.Destination = w.registryPath(artifacts.FileArtifact{Type: item.Type, Key: item.Key})
		items = append(items, item)
	}
	return items
}

func (w *Workspace) promoteOne(ctx context.Context, item PromoteItem, report *PromoteReport) error {
	dest := fmt.Sprintf("%s/%s", w.layout.Folder(item.Type), item.Key)

	if w.dryRun {
		w.notify.Info("Would promote %s (%s) to %s", w.displayPath(item.Source), item.Status, dest)
		report.Skipped = append(report.Skipped, item)
		return nil
	}

	ok, err := w.dialog.Confirm(ctx, fmt.Sprintf("Promote %s (%s) to %s?", w.displayPath(item.Source), item.Status, dest))
	if err != nil {
		return err
	}
	if !ok {
		w.notify.Skip("Skipped %s", w.displayPath(item.Source))
		report.Skipped = append(report.Skipped, item)
		return nil
	}

	if err := copier.Copy(w.fs, item.Source, item.Destination); err != nil {
		w.notify.Error("Failed to promote %s: %v", item.Source, err)
		w.logger.Error().Err(err).Str("source", item.Source).Str("destination", item.Destination).Msg("Promote failed")
		report.Failed = append(report.Failed, FailedItem{Name: item.Source, Error: err.Error()})
		return nil
	}

	w.notify.Success("Promoted %s to %s", w.displayPath(item.Source), dest)
	report.Promoted = append(report.Promoted, item)
	return nil
}
