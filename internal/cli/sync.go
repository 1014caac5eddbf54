package cli

import (
	"github.com/spf13/cobra"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/sync"
)

// newCIFromDiagramCmd creates the ci-from-diagram command, which folds the
// persisted diagrams back into the CI manifest.
func newCIFromDiagramCmd(dir *string) *cobra.Command {
	var (
		platforms []string
		override  bool
	)

	cmd := &cobra.Command{
		Use:   "ci-from-diagram",
		Short: "Update the CI manifest from the diagram files",
		Long: `Read the diagram.<target>.json files, extract what differs from the
generated boilerplate, and record those customizations in the CI manifest.
Manifest entries for targets outside the processed set are never touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			engine, s, err := engineFor(cmd, *dir)
			if err != nil {
				return err
			}

			if _, err := s.LoadManifest(ctx); err == nil && !override {
				printWarning("%s already exists. Use --override to update it.", s.ManifestPath())
				return nil
			} else if err != nil && !errors.Is(err, errors.ErrCodeMissingArtifact) {
				return err
			}

			m, report, err := engine.ManifestFromDiagrams(ctx, platforms)
			if err != nil {
				return err
			}
			printReport(report)

			if err := s.SaveManifest(ctx, m, true); err != nil {
				return err
			}
			printFile(s.ManifestPath())

			prog.done("Synchronized " + plural(len(report.Processed), "target"))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "restrict the sync to these targets (default: every diagram on disk)")
	cmd.Flags().BoolVar(&override, "override", false, "update an existing manifest file")

	return cmd
}

// newDiagramFromCICmd creates the diagram-from-ci command, which materializes
// diagram files from the CI manifest.
func newDiagramFromCICmd(dir *string) *cobra.Command {
	var (
		platforms []string
		override  bool
	)

	cmd := &cobra.Command{
		Use:   "diagram-from-ci",
		Short: "Generate diagram files from the CI manifest",
		Long: `Generate one diagram.<target>.json per manifest target, applying any
customizations the manifest records for it. Existing diagram files are left
untouched unless --override is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			engine, s, err := engineFor(cmd, *dir)
			if err != nil {
				return err
			}

			report, err := engine.DiagramsFromManifest(ctx, platforms, override)
			if err != nil {
				return err
			}
			printReport(report)
			for _, target := range report.Processed {
				printFile(s.DiagramPath(target))
			}

			prog.done("Generated " + plural(len(report.Processed), "diagram"))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "restrict generation to these targets (default: every manifest target)")
	cmd.Flags().BoolVar(&override, "override", false, "replace existing diagram files")

	return cmd
}

// printReport surfaces a sync report's warnings on the terminal.
func printReport(r *sync.Report) {
	for _, w := range r.Warnings {
		printWarning("%s", w)
	}
}
