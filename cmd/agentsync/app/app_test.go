package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsync/pkg/errors"
)

func testConfig() *Config {
	return &Config{
		Registry:  "/reg",
		Workspace: "/ws/.agent",
		Manifest:  "/ws/agent-manifest.json",
		LogFormat: "json",
		LogOutput: "discard",
	}
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

// newTestApp creates an app on fs that reads answers from stdin and
// captures stdout.
func newTestApp(t *testing.T, fs afero.Fs, stdin string) (*App, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	logger := zerolog.Nop()
	app, err := New("1.2.3", "abc123", "2026-01-01", "test",
		WithConfig(testConfig()),
		WithLogger(&logger),
		WithFs(fs),
		WithIO(strings.NewReader(stdin), &stdout, &stderr),
	)
	require.NoError(t, err)
	return app, &stdout
}

func newRegistry(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/reg/personas/tech-lead.md": "lead the team",
		"/reg/skills/summarize.md":   "summarize text",
	})
	return fs
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

// TestApp_WithOptions tests functional options pattern.
func TestApp_WithOptions(t *testing.T) {
	config := &Config{Format: "json", NoColor: true}
	logger := zerolog.Nop()

	app, err := New("1.0.0", "test", "2024-01-01", "test", WithConfig(config), WithLogger(&logger))
	require.NoError(t, err)

	assert.Same(t, config, app.Config())
	assert.Same(t, &logger, app.Logger())
	assert.Equal(t, "json", app.OutputFormat())
	assert.False(t, app.UseColor())
}

func TestApp_Workspace(t *testing.T) {
	app, _ := newTestApp(t, afero.NewMemMapFs(), "")

	ws, err := app.Workspace()
	require.NoError(t, err)
	assert.Equal(t, "/reg", ws.RegistryRoot())
	assert.Equal(t, "/ws/.agent", ws.Root())
	assert.Equal(t, "/ws/agent-manifest.json", ws.Manifest().Path())
}

func TestExecuteSync(t *testing.T) {
	fs := newRegistry(t)
	writeFiles(t, fs, map[string]string{"/ws/agent-manifest.json": `{"agents": ["tech-lead"]}`})
	app, stdout := newTestApp(t, fs, "")

	require.NoError(t, app.Execute(context.Background(), []string{"sync"}))

	assert.Equal(t, "lead the team", readFile(t, fs, "/ws/.agent/personas/tech-lead.md"))
	assert.Contains(t, stdout.String(), "Synced Persona: tech-lead.md")
	assert.Contains(t, stdout.String(), "Synced 1 artifact\n")
}

func TestExecuteSyncFlags(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{"/ws/agent-manifest.json": `{"skills": ["summarize"]}`})
		app, stdout := newTestApp(t, fs, "")

		require.NoError(t, app.Execute(context.Background(), []string{"sync", "--dry-run"}))

		exists, err := afero.Exists(fs, "/ws/.agent/skills/summarize.md")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Contains(t, stdout.String(), "Would sync 1 artifact")
	})

	t.Run("manifest flag overrides config", func(t *testing.T) {
		fs := newRegistry(t)
		writeFiles(t, fs, map[string]string{"/elsewhere/manifest.json": `{"skills": ["summarize"]}`})
		app, _ := newTestApp(t, fs, "")

		require.NoError(t, app.Execute(context.Background(), []string{"sync", "--manifest", "/elsewhere/manifest.json"}))
		assert.Equal(t, "summarize text", readFile(t, fs, "/ws/.agent/skills/summarize.md"))
	})

	t.Run("missing manifest is a configuration error", func(t *testing.T) {
		app, _ := newTestApp(t, newRegistry(t), "")

		err := app.Execute(context.Background(), []string{"sync"})
		require.Error(t, err)
		assert.True(t, errors.IsConfig(err))
	})
}

func TestExecuteValidate(t *testing.T) {
	fs := newRegistry(t)
	writeFiles(t, fs, map[string]string{
		"/ws/.agent/personas/tech-lead.md": "lead the team",
		"/ws/.agent/skills/mine.md":        "something of my own",
	})

	t.Run("json", func(t *testing.T) {
		app, stdout := newTestApp(t, fs, "")
		require.NoError(t, app.Execute(context.Background(), []string{"validate", "-o", "json"}))
		assert.Contains(t, stdout.String(), `"status": "synced"`)
		assert.Contains(t, stdout.String(), `"status": "new"`)
		assert.Contains(t, stdout.String(), `"total": 2`)
	})

	t.Run("table", func(t *testing.T) {
		app, stdout := newTestApp(t, fs, "")
		require.NoError(t, app.Execute(context.Background(), []string{"validate", "-o", "table"}))
		assert.Contains(t, stdout.String(), "persona:tech-lead.md")
		assert.Contains(t, stdout.String(), "2 artifacts: 1 synced, 0 modified, 0 duplicate, 1 new")
	})

	t.Run("invalid format", func(t *testing.T) {
		app, _ := newTestApp(t, fs, "")
		err := app.Execute(context.Background(), []string{"validate", "-o", "xml"})
		assert.True(t, errors.IsConfig(err))
	})
}

func TestExecutePromote(t *testing.T) {
	fs := newRegistry(t)
	writeFiles(t, fs, map[string]string{"/ws/.agent/workflows/new-flow.md": "fresh steps"})
	app, stdout := newTestApp(t, fs, "y\n")

	require.NoError(t, app.Execute(context.Background(), []string{"promote"}))

	assert.Equal(t, "fresh steps", readFile(t, fs, "/reg/workflows/new-flow.md"))
	assert.Contains(t, stdout.String(), "Promote .agent/workflows/new-flow.md (new) to workflows/new-flow.md? (y/N): ")
	assert.Contains(t, stdout.String(), "Promoted 1 artifact")
}

func TestExecuteImport(t *testing.T) {
	fs := newRegistry(t)
	app, stdout := newTestApp(t, fs, "1\n\n")

	require.NoError(t, app.Execute(context.Background(), []string{"import"}))

	assert.JSONEq(t, `{"agents": ["tech-lead"], "workflows": [], "skills": [], "config": []}`,
		readFile(t, fs, "/ws/agent-manifest.json"))
	assert.Equal(t, "lead the team", readFile(t, fs, "/ws/.agent/personas/tech-lead.md"))
	assert.Contains(t, stdout.String(), "Added 1 name to the manifest. Synced 1 artifact")
}

func TestExecuteList(t *testing.T) {
	fs := newRegistry(t)
	app, stdout := newTestApp(t, fs, "")

	require.NoError(t, app.Execute(context.Background(), []string{"list", "skills", "-o", "yaml"}))
	assert.Contains(t, stdout.String(), "name: summarize")
	assert.NotContains(t, stdout.String(), "tech-lead")

	err := app.Execute(context.Background(), []string{"list", "gadgets"})
	assert.True(t, errors.IsValidationError(err))
}

func TestExecuteVersion(t *testing.T) {
	app, stdout := newTestApp(t, afero.NewMemMapFs(), "")

	require.NoError(t, app.Execute(context.Background(), []string{"version"}))
	assert.Equal(t, "agentsync 1.2.3\n", stdout.String())
}
