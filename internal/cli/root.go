package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/espembed/docsembed/pkg/buildinfo"
	"github.com/espembed/docsembed/pkg/store"
	"github.com/espembed/docsembed/pkg/sync"
)

// Execute runs the docsembed CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (init-diagram,
// ci-from-diagram, diagram-from-ci, launchpad-config, targets, upload),
// configures logging based on the --verbose flag, and executes the command
// tree against ctx.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		dir     string
	)

	root := &cobra.Command{
		Use:          "docsembed",
		Short:        "docsembed keeps CI manifests, Wokwi diagrams, and LaunchPad configs in sync",
		Long:         `docsembed is a CLI tool for embedded example projects: it generates Wokwi simulation diagrams, folds hand-edited diagrams back into the CI manifest, produces ESP LaunchPad flashing configurations, and uploads the generated artifacts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&dir, "path", "p", ".", "project directory containing the CI manifest and diagrams")

	root.AddCommand(newInitDiagramCmd(&dir))
	root.AddCommand(newCIFromDiagramCmd(&dir))
	root.AddCommand(newDiagramFromCICmd(&dir))
	root.AddCommand(newLaunchpadConfigCmd(&dir))
	root.AddCommand(newTargetsCmd())
	root.AddCommand(newUploadCmd(&dir))

	return root.ExecuteContext(ctx)
}

// engineFor opens the project directory and builds a sync engine around it,
// wired to the command's logger.
func engineFor(cmd *cobra.Command, dir string) (*sync.Engine, *store.FileStore, error) {
	s, err := store.NewFileStore(dir)
	if err != nil {
		return nil, nil, err
	}
	e := &sync.Engine{
		Manifests: s,
		Diagrams:  s,
		Logger:    loggerFromContext(cmd.Context()),
	}
	return e, s, nil
}
