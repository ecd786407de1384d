// Package application provides the application interface for agentsync commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            ws, err := app.Workspace()
//	            if err != nil {
//	                return err
//	            }
//	            report, err := ws.Sync(cmd.Context())
//	            // ... render report
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    WorkspaceFunc: func() (*workspace.Workspace, error) {
//	        return workspace.New(workspace.Options{Fs: afero.NewMemMapFs(), RegistryRoot: "/reg"})
//	    },
//	}
//	cmd := sync.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/agentsync/pkg/workspace"
)

// Application provides the application interface that commands need.
// The App struct from cmd/agentsync/app implements this interface.
type Application interface {
	// Workspace returns a workspace configured from flags, environment and
	// config file, wired to the terminal for prompts and status lines.
	Workspace() (*workspace.Workspace, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, wide, json,
	// yaml), or "" when none was requested.
	OutputFormat() string

	// UseColor reports whether terminal output may be colored.
	UseColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
