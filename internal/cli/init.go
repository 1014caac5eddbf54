package cli

import (
	"github.com/spf13/cobra"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/manifest"
	"github.com/espembed/docsembed/pkg/sync"
)

// newInitDiagramCmd creates the init-diagram command, which writes
// boilerplate simulation diagrams for the requested targets.
func newInitDiagramCmd(dir *string) *cobra.Command {
	var (
		platforms []string
		override  bool
	)

	cmd := &cobra.Command{
		Use:   "init-diagram",
		Short: "Create boilerplate Wokwi diagrams for the given targets",
		Long: `Create one diagram.<target>.json per requested target, containing the
target's dev board wired to a serial monitor. Existing diagram files are left
untouched unless --override is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			_, s, err := engineFor(cmd, *dir)
			if err != nil {
				return err
			}

			written := 0
			for _, target := range platforms {
				d, err := sync.Generate(target, manifest.Override{})
				if err != nil {
					return err
				}
				if err := s.SaveDiagram(ctx, target, d, override); err != nil {
					if errors.Is(err, errors.ErrCodeExistingFile) {
						printWarning("%s already exists. Use --override to replace it.", s.DiagramPath(target))
						continue
					}
					return err
				}
				printFile(s.DiagramPath(target))
				written++
			}

			prog.done("Created " + plural(written, "diagram"))
			if written > 0 {
				printNextStep("Fold edits back into the manifest", "docsembed ci-from-diagram")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&platforms, "platforms", nil, "targets to create diagrams for (e.g. esp32,esp32s3)")
	cmd.Flags().BoolVar(&override, "override", false, "replace existing diagram files")
	_ = cmd.MarkFlagRequired("platforms")

	return cmd
}
