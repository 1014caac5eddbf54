package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/launchpad"
	"github.com/espembed/docsembed/pkg/store"
)

// configFileName is the generated ESP LaunchPad configuration file.
const configFileName = "launchpad.toml"

// newLaunchpadConfigCmd creates the launchpad-config command, which projects
// the CI manifest into a launchpad.toml flashing configuration.
func newLaunchpadConfigCmd(dir *string) *cobra.Command {
	var (
		storagePrefix string
		repoPrefix    string
		override      bool
	)

	cmd := &cobra.Command{
		Use:   "launchpad-config",
		Short: "Generate an ESP LaunchPad flashing configuration",
		Long: `Generate a launchpad.toml for the project, listing one firmware image per
manifest target. The storage and repository URL prefixes fall back to the
STORAGE_URL_PREFIX and REPO_URL_PREFIX environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if storagePrefix == "" {
				return errors.New(errors.ErrCodeInvalidInput,
					"a storage URL prefix is required (--storage-url-prefix or STORAGE_URL_PREFIX)")
			}

			s, err := store.NewFileStore(*dir)
			if err != nil {
				return err
			}
			m, err := s.LoadManifest(ctx)
			if err != nil {
				return err
			}

			abs, err := filepath.Abs(*dir)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", *dir)
			}
			readme := fileExists(filepath.Join(abs, "README.md"))

			doc, err := launchpad.Generate(m, launchpad.Options{
				StorageURLPrefix: storagePrefix,
				RepoURLPrefix:    repoPrefix,
				ProjectName:      filepath.Base(abs),
				ProjectPath:      filepath.ToSlash(filepath.Clean(*dir)),
				ReadmeExists:     readme,
			})
			if err != nil {
				return err
			}

			out := filepath.Join(*dir, configFileName)
			if !override && fileExists(out) {
				printWarning("%s already exists. Use --override to replace it.", out)
				return nil
			}
			if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
			}
			printSuccess("Flashing config covers %s", plural(len(m.Targets), "target"))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&storagePrefix, "storage-url-prefix", os.Getenv("STORAGE_URL_PREFIX"), "base URL hosting the firmware binaries")
	cmd.Flags().StringVar(&repoPrefix, "repo-url-prefix", os.Getenv("REPO_URL_PREFIX"), "base URL of the source repository")
	cmd.Flags().BoolVar(&override, "override", false, "replace an existing launchpad.toml")

	return cmd
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
