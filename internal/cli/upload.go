package cli

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/store"
	"github.com/espembed/docsembed/pkg/upload"
)

// newUploadCmd creates the upload command, which pushes the project's
// generated artifacts to remote storage.
func newUploadCmd(dir *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "upload [file...]",
		Short: "Upload generated artifacts to remote storage",
		Long: `Upload the project's generated artifacts (diagram files, launchpad.toml,
firmware binaries) to the storage server configured through the STORAGE_URL
and STORAGE_TOKEN environment variables. Explicit file arguments replace the
default artifact selection.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			s, err := store.NewFileStore(*dir)
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 {
				files, err = defaultArtifacts(ctx, s)
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				printInfo("Nothing to upload")
				return nil
			}

			abs, err := filepath.Abs(*dir)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", *dir)
			}
			project := filepath.Base(abs)

			if dryRun {
				for _, f := range files {
					printDetail("would upload %s", f)
				}
				return nil
			}

			cfg, err := upload.ConfigFromEnv()
			if err != nil {
				return err
			}
			client := upload.NewClient(cfg)
			logger.Debug("uploading", "server", client.String(), "files", len(files))

			for _, f := range files {
				dest := client.Dest(filepath.ToSlash(filepath.Join(project, filepath.Base(f))))
				ack, err := client.UploadFile(ctx, f, dest)
				if err != nil {
					printError("Upload failed for %s", f)
					return err
				}
				printFile(dest)
				logger.Debug("uploaded", "dest", dest, "sha256", ack.SHA256, "bytes", ack.Bytes)
			}

			prog.done("Uploaded " + plural(len(files), "file"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be uploaded without uploading")

	return cmd
}

// defaultArtifacts lists the generated files in the project directory:
// per-target diagrams, launchpad.toml, and firmware binaries.
func defaultArtifacts(ctx context.Context, s *store.FileStore) ([]string, error) {
	var files []string

	targets, err := s.ListTargets(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		files = append(files, s.DiagramPath(t))
	}

	if p := filepath.Join(s.Dir(), configFileName); fileExists(p) {
		files = append(files, p)
	}

	bins, err := filepath.Glob(filepath.Join(s.Dir(), "*.bin"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan %s", s.Dir())
	}
	files = append(files, bins...)

	sort.Strings(files)
	return files, nil
}
