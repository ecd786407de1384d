package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/errors"
)

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ".agent", config.Workspace)
	assert.Equal(t, "agent-manifest.json", config.Manifest)
	assert.NotEmpty(t, config.LogFormat)
	assert.Equal(t, artifacts.DefaultLayout(), config.Layout())
}

// TestConfig_EnvironmentVariables verifies AGENTSYNC_* loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("AGENTSYNC_REGISTRY", "/srv/registry")
	t.Setenv("AGENTSYNC_WORKSPACE", "agents")
	t.Setenv("AGENTSYNC_FOLDERS_SKILLS", "abilities")
	t.Setenv("AGENTSYNC_FORMAT", "yaml")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/registry", config.Registry)
	assert.Equal(t, "agents", config.Workspace)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "debug", config.EnvLogLevel)
	assert.Empty(t, config.LogLevel)
	assert.Equal(t, "abilities", config.Layout().Folder(artifacts.Skill))
	assert.Equal(t, "personas", config.Layout().Folder(artifacts.Persona))
}

// TestConfig_File verifies an explicit config file.
func TestConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentsync.yaml")
	content := `registry: /opt/agent-utils
manifest: agents.json
ignore:
  - "drafts/**"
  - "**/*.wip.md"
folders:
  personas: roles
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "/opt/agent-utils", config.Registry)
	assert.Equal(t, "agents.json", config.Manifest)
	assert.Equal(t, ".agent", config.Workspace)
	assert.Equal(t, []string{"drafts/**", "**/*.wip.md"}, config.Ignore)
	assert.Equal(t, "roles", config.Layout().Folder(artifacts.Persona))
}

func TestConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}

func TestConfig_RegistryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		registry string
		want     string
	}{
		{"", filepath.Join(home, "agent-utils")},
		{"~", home},
		{"~/shared/agents", filepath.Join(home, "shared/agents")},
		{"/srv/registry", "/srv/registry"},
		{"relative/registry", "relative/registry"},
	}
	for _, tt := range tests {
		t.Run(tt.registry, func(t *testing.T) {
			got, err := (&Config{Registry: tt.registry}).RegistryPath()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
