package workspace_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsync/internal/cmd/prompt"
	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/errors"
	"github.com/agentstation/agentsync/pkg/logging"
	"github.com/agentstation/agentsync/pkg/reconcile"
	"github.com/agentstation/agentsync/pkg/workspace"
)

const (
	registryRoot = "/reg"
	localRoot    = "/ws/.agent"
	manifestPath = "/ws/agent-manifest.json"
)

// recorder collects status lines by level.
type recorder struct {
	lines []string
}

func (r *recorder) add(level, format string, args ...any) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recorder) Info(format string, args ...any)    { r.add("info", format, args...) }
func (r *recorder) Success(format string, args ...any) { r.add("success", format, args...) }
func (r *recorder) Skip(format string, args ...any)    { r.add("skip", format, args...) }
func (r *recorder) Warning(format string, args ...any) { r.add("warning", format, args...) }
func (r *recorder) Error(format string, args ...any)   { r.add("error", format, args...) }

func (r *recorder) has(prefix string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for p, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, fs afero.Fs, p string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, p)
	require.NoError(t, err)
	return string(data)
}

func exists(t *testing.T, fs afero.Fs, p string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, p)
	require.NoError(t, err)
	return ok
}

func newRegistry(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/reg/personas/software-engineer/staff-engineer.md": "---\ndescription: Senior technical leader\n---\n# Staff Engineer\n",
		"/reg/personas/tech-lead.md":                        "lead the team",
		"/reg/workflows/release.md":                         "release steps",
		"/reg/skills/pdf-tools/SKILL.md":                    "# PDF Tools\nwork with pdf",
		"/reg/skills/pdf-tools/scripts/run.md":              "run it",
		"/reg/skills/summarize.md":                          "summarize text",
		"/reg/config/rules.md":                              "be kind",
	})
	return fs
}

func newWorkspace(t *testing.T, fs afero.Fs, dialog workspace.Dialog, dryRun bool) (*workspace.Workspace, *recorder) {
	t.Helper()
	rec := &recorder{}
	w, err := workspace.New(workspace.Options{
		Fs:            fs,
		RegistryRoot:  registryRoot,
		WorkspaceRoot: localRoot,
		ManifestPath:  manifestPath,
		Dialog:        dialog,
		Notifier:      rec,
		DryRun:        dryRun,
	})
	require.NoError(t, err)
	return w, rec
}

func TestNew(t *testing.T) {
	_, err := workspace.New(workspace.Options{})
	assert.True(t, errors.IsConfig(err))

	w, err := workspace.New(workspace.Options{Fs: afero.NewMemMapFs(), RegistryRoot: "/reg/"})
	require.NoError(t, err)
	assert.Equal(t, "/reg", w.RegistryRoot())
	assert.Equal(t, ".agent", w.Root())
	assert.Equal(t, "agent-manifest.json", w.Manifest().Path())
}

func TestSyncMissingManifest(t *testing.T) {
	w, _ := newWorkspace(t, newRegistry(t), nil, false)

	_, err := w.Sync(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
	assert.Contains(t, err.Error(), manifestPath)
}

func TestSyncEndToEnd(t *testing.T) {
	t.Run("unresolved name warns and writes nothing", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{
			"/reg/workflows/release.md": "release steps",
			manifestPath:                `{"workflows": ["staff-engineer"]}`,
		})
		w, rec := newWorkspace(t, fs, nil, false)

		report, err := w.Sync(context.Background())
		require.NoError(t, err)
		assert.Empty(t, report.Synced)
		require.Len(t, report.Missing, 1)
		assert.Equal(t, "staff-engineer", report.Missing[0].Name)
		assert.True(t, rec.has(`warning Workflow "staff-engineer" not found`))
		assert.False(t, exists(t, fs, localRoot))
	})

	t.Run("resolved name is copied at its canonical path", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		content := "# Staff Engineer workflow\n\nsteps\n"
		writeFiles(t, fs, map[string]string{
			"/reg/workflows/engineering/staff-engineer.md": content,
			manifestPath: `{"workflows": ["staff-engineer"]}`,
		})
		w, rec := newWorkspace(t, fs, nil, false)

		report, err := w.Sync(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Synced, 1)
		assert.Equal(t, "workflow:engineering/staff-engineer.md", report.Synced[0].Artifact)
		assert.Equal(t, content, readFile(t, fs, "/ws/.agent/workflows/engineering/staff-engineer.md"))
		assert.True(t, rec.has("success Synced Workflow: engineering/staff-engineer.md"))
	})
}

func TestSync(t *testing.T) {
	t.Run("every type and skill directories", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{
			manifestPath: `{
				"agents": ["staff-engineer", "tech-lead", "staff-engineer"],
				"skills": ["pdf-tools", "summarize"],
				"config": ["rules"],
				"notes": "kept"
			}`,
			"/ws/.agent/skills/pdf-tools/obsolete.md": "old",
		})
		w, _ := newWorkspace(t, fs, nil, false)

		report, err := w.Sync(context.Background())
		require.NoError(t, err)
		assert.Len(t, report.Synced, 5)
		assert.Empty(t, report.Missing)

		assert.Equal(t, "lead the team", readFile(t, fs, "/ws/.agent/personas/tech-lead.md"))
		assert.True(t, exists(t, fs, "/ws/.agent/personas/software-engineer/staff-engineer.md"))
		assert.Equal(t, "run it", readFile(t, fs, "/ws/.agent/skills/pdf-tools/scripts/run.md"))
		assert.False(t, exists(t, fs, "/ws/.agent/skills/pdf-tools/obsolete.md"))
		assert.True(t, exists(t, fs, "/ws/.agent/skills/summarize.md"))
		assert.True(t, exists(t, fs, "/ws/.agent/config/rules.md"))
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{manifestPath: `{"agents": ["tech-lead"], "skills": ["pdf-tools"]}`})
		w, rec := newWorkspace(t, fs, nil, true)

		report, err := w.Sync(context.Background())
		require.NoError(t, err)
		assert.True(t, report.DryRun)
		assert.Len(t, report.Synced, 2)
		assert.False(t, exists(t, fs, localRoot))
		assert.True(t, rec.has("info Would sync Persona"))
	})

	t.Run("canceled context stops before the first item", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{manifestPath: `{"agents": ["tech-lead"]}`})
		w, _ := newWorkspace(t, fs, nil, false)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := w.Sync(ctx)
		assert.True(t, errors.IsCanceled(err))
		assert.False(t, exists(t, fs, "/ws/.agent/personas/tech-lead.md"))
	})
}

func TestSyncStrays(t *testing.T) {
	setup := func(t *testing.T) afero.Fs {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{
			manifestPath:                       `{"workflows": ["release"], "skills": ["pdf-tools"]}`,
			"/ws/.agent/personas/release.md":   "stray release",
			"/ws/.agent/config/old/release.md": "another stray",
			"/ws/.agent/personas/pdf-tools/x":  "stray dir",
		})
		return fs
	}

	t.Run("confirmed strays are removed", func(t *testing.T) {
		fs := setup(t)
		dialog := prompt.NewScripted("y", "y", "y")
		w, _ := newWorkspace(t, fs, dialog, false)

		report, err := w.Sync(context.Background())
		require.NoError(t, err)
		assert.Len(t, report.Removed, 3)
		assert.Len(t, dialog.Asked, 3)
		assert.False(t, exists(t, fs, "/ws/.agent/personas/release.md"))
		assert.False(t, exists(t, fs, "/ws/.agent/config/old/release.md"))
		assert.False(t, exists(t, fs, "/ws/.agent/personas/pdf-tools"))
		assert.True(t, exists(t, fs, "/ws/.agent/workflows/release.md"))
	})

	t.Run("declined strays are kept", func(t *testing.T) {
		fs := setup(t)
		w, rec := newWorkspace(t, fs, prompt.NewScripted("n", "y", "n"), false)

		report, err := w.Sync(context.Background())
		require.NoError(t, err)
		assert.Len(t, report.Removed, 1)
		assert.Len(t, report.Kept, 2)
		assert.True(t, exists(t, fs, "/ws/.agent/personas/release.md"))
		assert.True(t, rec.has("skip Kept"))
	})

	t.Run("generic filenames only match the same key", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{
			"/reg/skills/single/SKILL.md":            "single",
			manifestPath:                             `{"skills": ["single/SKILL.md"]}`,
			"/ws/.agent/personas/other/SKILL.md":     "unrelated",
			"/ws/.agent/workflows/single/SKILL.md":   "stray",
		})
		dialog := prompt.NewScripted("y")
		w, _ := newWorkspace(t, fs, dialog, false)

		report, err := w.Sync(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Synced, 1)
		assert.Equal(t, "skill:single/SKILL.md", report.Synced[0].Artifact)
		assert.Len(t, dialog.Asked, 1)
		assert.True(t, exists(t, fs, "/ws/.agent/personas/other/SKILL.md"))
		assert.False(t, exists(t, fs, "/ws/.agent/workflows/single/SKILL.md"))
	})
}

func TestValidate(t *testing.T) {
	fs := newRegistry(t)
	writeFiles(t, fs, map[string]string{
		"/ws/.agent/personas/tech-lead.md":      "lead the team\n",
		"/ws/.agent/personas/new-one.md":        "something entirely different",
		"/ws/.agent/workflows/release.md":       "release steps, revised",
		"/ws/.agent/skills/mine/SKILL.md":       "not the pdf skill",
		"/ws/.agent/config/renamed-rules.md":    "be kind",
		"/ws/.agent/personas/README.md":         "overview",
	})
	w, _ := newWorkspace(t, fs, nil, false)

	verdicts, err := w.Validate(context.Background())
	require.NoError(t, err)

	got := make(map[string]reconcile.Status)
	for _, v := range verdicts {
		got[v.Rel] = v.Status
	}
	assert.Equal(t, map[string]reconcile.Status{
		"new-one.md":        reconcile.New,
		"tech-lead.md":      reconcile.Synced,
		"release.md":        reconcile.Modified,
		"mine/SKILL.md":     reconcile.New,
		"renamed-rules.md":  reconcile.Duplicate,
	}, got)
}

func TestPromote(t *testing.T) {
	t.Run("all changes with per-item confirmation", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{
			"/ws/.agent/personas/new-one.md":   "brand new persona",
			"/ws/.agent/personas/tech-lead.md": "lead the team well",
			"/ws/.agent/config/rules.md":       "be kind",
			"/ws/.agent/workflows/ops/deploy.md": "deploy things",
		})
		dialog := prompt.NewScripted("n", "y", "y")
		w, rec := newWorkspace(t, fs, dialog, false)

		report, err := w.Promote(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, dialog.Asked, 3)
		assert.Contains(t, dialog.Asked[0], "new-one.md")

		assert.Len(t, report.Skipped, 1)
		assert.Len(t, report.Promoted, 2)
		assert.False(t, exists(t, fs, "/reg/personas/new-one.md"), "declined item leaves registry unchanged")
		assert.Equal(t, "lead the team well", readFile(t, fs, "/reg/personas/tech-lead.md"))
		assert.Equal(t, "deploy things", readFile(t, fs, "/reg/workflows/ops/deploy.md"))
		assert.True(t, rec.has("skip Skipped"))
	})

	t.Run("duplicate overwrites the matched entry", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{
			"/reg/workflows/review.md":            "a b c d e f g h i j",
			"/ws/.agent/workflows/code-review.md": "a b c d e f g h i j k",
		})
		w, _ := newWorkspace(t, fs, prompt.AutoApprove{}, false)

		report, err := w.Promote(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, report.Promoted, 1)
		assert.Equal(t, reconcile.Duplicate, report.Promoted[0].Status)
		assert.Equal(t, "a b c d e f g h i j k", readFile(t, fs, "/reg/workflows/review.md"))
		assert.False(t, exists(t, fs, "/reg/workflows/code-review.md"))
	})

	t.Run("explicit file is new under its folder", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{
			"/ws/.agent/skills/csv/SKILL.md": "csv skill",
			"/ws/notes/idea.md":              "loose file",
		})
		w, _ := newWorkspace(t, fs, prompt.AutoApprove{}, false)

		report, err := w.Promote(context.Background(), "/ws/.agent/skills/csv/SKILL.md")
		require.NoError(t, err)
		require.Len(t, report.Promoted, 1)
		assert.Equal(t, artifacts.Skill, report.Promoted[0].Type)
		assert.Equal(t, "csv skill", readFile(t, fs, "/reg/skills/csv/SKILL.md"))

		_, err = w.Promote(context.Background(), "/ws/notes/idea.md")
		require.NoError(t, err)
		assert.Equal(t, "loose file", readFile(t, fs, "/reg/personas/idea.md"))
	})

	t.Run("explicit skill directory", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{
			"/ws/.agent/skills/charts/SKILL.md":     "charts",
			"/ws/.agent/skills/charts/ref/style.md": "style",
		})
		w, _ := newWorkspace(t, fs, prompt.AutoApprove{}, false)

		_, err := w.Promote(context.Background(), "/ws/.agent/skills/charts")
		require.NoError(t, err)
		assert.Equal(t, "style", readFile(t, fs, "/reg/skills/charts/ref/style.md"))
	})

	t.Run("missing target is a configuration error", func(t *testing.T) {
		w, _ := newWorkspace(t, newRegistry(t), prompt.AutoApprove{}, false)
		_, err := w.Promote(context.Background(), "/ws/nope.md")
		assert.True(t, errors.IsConfig(err))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("dry run neither prompts nor writes", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{"/ws/.agent/personas/new-one.md": "brand new persona"})
		dialog := prompt.NewScripted("y")
		w, _ := newWorkspace(t, fs, dialog, true)

		report, err := w.Promote(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, dialog.Asked)
		assert.Len(t, report.Skipped, 1)
		assert.False(t, exists(t, fs, "/reg/personas/new-one.md"))
	})

	t.Run("nothing to promote", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{"/ws/.agent/personas/tech-lead.md": "lead the team"})
		w, rec := newWorkspace(t, fs, nil, false)

		report, err := w.Promote(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, report.Promoted)
		assert.True(t, rec.has("info Nothing to promote"))
	})
}

func TestImport(t *testing.T) {
	fs := newRegistry(t)
	// personas, workflows, skills, config
	dialog := prompt.NewScripted("2", "", "pdf-tools, 2, 9", "")
	w, _ := newWorkspace(t, fs, dialog, false)

	report, err := w.Import(context.Background())
	require.NoError(t, err)
	require.Len(t, dialog.Asked, 4)
	assert.Contains(t, dialog.Asked[0], "1. software-engineer/staff-engineer")
	assert.Contains(t, dialog.Asked[2], "1. pdf-tools")
	assert.NotContains(t, dialog.Asked[2], "pdf-tools/SKILL")

	assert.True(t, report.Created)
	assert.Equal(t, map[artifacts.Type][]string{
		artifacts.Persona: {"tech-lead"},
		artifacts.Skill:   {"pdf-tools", "summarize"},
	}, report.Added)

	m, err := w.Manifest().Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"tech-lead"}, m.Names(artifacts.Persona))

	require.NotNil(t, report.Sync)
	assert.Len(t, report.Sync.Synced, 3)
	assert.True(t, exists(t, fs, "/ws/.agent/skills/pdf-tools/SKILL.md"))

	t.Run("requested names are not offered again", func(t *testing.T) {
		again := prompt.NewScripted()
		w2, rec := newWorkspace(t, fs, again, false)
		_, err := w2.Import(context.Background())
		require.NoError(t, err)
		for _, q := range again.Asked {
			assert.NotContains(t, q, "tech-lead")
			assert.NotContains(t, q, "summarize")
		}
		assert.True(t, rec.has("info Manifest unchanged"))
	})
}

func TestDiff(t *testing.T) {
	fs := newRegistry(t)
	writeFiles(t, fs, map[string]string{
		"/ws/.agent/personas/tech-lead.md": "lead the whole team\nwith care\n",
		"/ws/.agent/config/rules.md":       "be kind",
	})
	w, _ := newWorkspace(t, fs, nil, false)

	diffs, err := w.Diff(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "tech-lead.md", diffs[0].Verdict.Rel)
	assert.Contains(t, diffs[0].Diff, "--- reg/personas/tech-lead.md")
	assert.Contains(t, diffs[0].Diff, "+++ .agent/personas/tech-lead.md")
	assert.Contains(t, diffs[0].Diff, "-lead the team")
	assert.Contains(t, diffs[0].Diff, "+lead the whole team")
	assert.Contains(t, diffs[0].Diff, "+with care")

	diffs, err = w.Diff(context.Background(), "rules.md")
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestEntries(t *testing.T) {
	fs := newRegistry(t)
	writeFiles(t, fs, map[string]string{manifestPath: `{"agents": ["tech-lead"], "skills": ["pdf-tools"]}`})
	w, _ := newWorkspace(t, fs, nil, false)

	items, err := w.Entries()
	require.NoError(t, err)

	byName := make(map[string]workspace.ListItem)
	for _, it := range items {
		byName[it.Name] = it
	}
	assert.Len(t, items, 6)
	assert.NotContains(t, byName, "pdf-tools/SKILL")

	assert.Equal(t, "Senior technical leader", byName["software-engineer/staff-engineer"].Description)
	assert.True(t, byName["tech-lead"].Requested)
	assert.False(t, byName["release"].Requested)

	dir := byName["pdf-tools"]
	assert.True(t, dir.Directory)
	assert.True(t, dir.Requested)
	assert.Equal(t, "PDF Tools", dir.Description)
	assert.Equal(t, "skills/pdf-tools/", dir.Path)

	skills, err := w.Entries(artifacts.Skill)
	require.NoError(t, err)
	assert.Len(t, skills, 2)
}

func TestReportSummaries(t *testing.T) {
	sync := &workspace.SyncReport{
		Synced:  []workspace.SyncedItem{{Name: "a"}, {Name: "b"}},
		Missing: []workspace.MissingItem{{Name: "c"}},
		Removed: []string{"/ws/.agent/config/a.md"},
	}
	assert.Equal(t, "Synced 2 artifacts, 1 not found, 1 stray removed", sync.Summary())

	dry := &workspace.SyncReport{DryRun: true, Synced: []workspace.SyncedItem{{Name: "a"}}}
	assert.Equal(t, "Would sync 1 artifact", dry.Summary())

	promote := &workspace.PromoteReport{
		Promoted: []workspace.PromoteItem{{Source: "a.md"}},
		Skipped:  []workspace.PromoteItem{{Source: "b.md"}},
	}
	assert.Equal(t, "Promoted 1 artifact, 1 skipped", promote.Summary())
	assert.Equal(t, "Would promote 1 artifact", (&workspace.PromoteReport{DryRun: true, Skipped: promote.Skipped}).Summary())

	imported := &workspace.ImportReport{
		Added: map[artifacts.Type][]string{artifacts.Skill: {"pdf-tools", "summarize"}},
		Sync:  dry,
	}
	assert.Equal(t, "Added 2 names to the manifest. Would sync 1 artifact", imported.Summary())
}

func TestValidateLogsClassification(t *testing.T) {
	fs := newRegistry(t)
	writeFiles(t, fs, map[string]string{"/ws/.agent/config/rules.md": "be kind"})
	logger := logging.NewTestLogger(t)

	w, err := workspace.New(workspace.Options{
		Fs:            fs,
		RegistryRoot:  registryRoot,
		WorkspaceRoot: localRoot,
		Logger:        logger.Logger,
	})
	require.NoError(t, err)

	_, err = w.Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, logger.Contains(`"message":"Classified local file"`))
	assert.True(t, logger.Contains(`"status":"synced"`))
}
