package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Workspace configuration
	Registry  string
	Workspace string
	Manifest  string
	Ignore    []string
	Folders   map[artifacts.Type]string

	// Run behavior
	Force  bool
	Yes    bool
	DryRun bool

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL and ranks below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. AGENTSYNC_* environment variables
// 3. .env files
// 4. Config file (configFile, or .agentsync.yaml in the working directory or $HOME)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("workspace", constants.DefaultWorkspaceDir)
	v.SetDefault("manifest", constants.DefaultManifestFile)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Registry:  v.GetString("registry"),
		Workspace: v.GetString("workspace"),
		Manifest:  v.GetString("manifest"),
		Ignore:    v.GetStringSlice("ignore"),
		Folders:   make(map[artifacts.Type]string),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	layout := artifacts.DefaultLayout()
	for _, t := range artifacts.Types {
		if name := v.GetString("folders." + layout[t]); name != "" {
			config.Folders[t] = name
		}
	}

	return config, nil
}

// UpdateFromFlags copies the flags the user set explicitly into c, so they
// take precedence over config file and environment values.
func (c *Config) UpdateFromFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	setBool := func(name string, dst *bool) {
		if flags.Changed(name) {
			if val, err := flags.GetBool(name); err == nil {
				*dst = val
			}
		}
	}
	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			if val, err := flags.GetString(name); err == nil {
				*dst = val
			}
		}
	}

	setBool("verbose", &c.Verbose)
	setBool("quiet", &c.Quiet)
	setBool("no-color", &c.NoColor)
	setBool("force", &c.Force)
	setBool("yes", &c.Yes)
	setBool("dry-run", &c.DryRun)
	setString("format", &c.Format)
	setString("log-level", &c.LogLevel)
	setString("registry", &c.Registry)
	setString("workspace", &c.Workspace)
	setString("manifest", &c.Manifest)
}

// RegistryPath returns the registry directory with "~" expanded, defaulting
// to ~/agent-utils.
func (c *Config) RegistryPath() (string, error) {
	registry := c.Registry
	if registry != "" && registry != "~" && !strings.HasPrefix(registry, "~/") {
		return registry, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewConfigError("registry", "cannot determine home directory; set --registry", err)
	}
	if registry == "" {
		return filepath.Join(home, constants.DefaultRegistryDir), nil
	}
	return filepath.Join(home, strings.TrimPrefix(registry, "~")), nil
}

// Layout returns the configured type folder names.
func (c *Config) Layout() artifacts.Layout {
	layout := artifacts.DefaultLayout()
	for t, name := range c.Folders {
		layout[t] = name
	}
	return layout
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
