// Package launchpad generates and parses ESP LaunchPad flashing
// configuration documents (launchpad.toml).
//
// Generation projects a CI manifest into a deterministic line-oriented TOML
// document; parsing reads an existing document back, which is how
// config-derived simulation tabs obtain their firmware image names.
package launchpad

import (
	"fmt"
	"strings"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/manifest"
)

// chipsetBase is the target family every supported chipset belongs to.
const chipsetBase = "esp32"

// Chipset converts a target identifier into its human-facing chipset label.
// The base family maps to its canonical uppercase label ("esp32" -> "ESP32");
// a target formed as the family plus a two-character variant suffix maps to
// "ESP32-<SUFFIX>" ("esp32s3" -> "ESP32-S3"). Anything else is
// UNKNOWN_CHIPSET.
func Chipset(target string) (string, error) {
	if target == chipsetBase {
		return strings.ToUpper(chipsetBase), nil
	}
	if strings.HasPrefix(target, chipsetBase) {
		suffix := target[len(chipsetBase):]
		if len(suffix) == 2 {
			return strings.ToUpper(chipsetBase + "-" + suffix), nil
		}
	}
	return "", errors.New(errors.ErrCodeUnknownChipset, "unknown target %q for chipset mapping", target)
}

// Options configures config generation for one example project.
type Options struct {
	StorageURLPrefix string // base URL hosting the firmware binaries
	RepoURLPrefix    string // base URL of the source repository
	ProjectName      string // example project name ("Blink")
	ProjectPath      string // project path under the repository root
	ReadmeExists     bool   // emit config_readme_url when the project has a README.md
}

// Generate projects a manifest into the flashing config document.
// The line order is fixed; an empty target list or a target with no chipset
// mapping aborts with no partial output.
func Generate(m *manifest.Manifest, opts Options) (string, error) {
	if len(m.Targets) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "manifest has no targets")
	}
	if err := errors.ValidateProjectName(opts.ProjectName); err != nil {
		return "", err
	}

	// Resolve every chipset up front so an unknown target produces no file.
	chipsets := make([]string, len(m.Targets))
	for i, target := range m.Targets {
		c, err := Chipset(target)
		if err != nil {
			return "", err
		}
		chipsets[i] = c
	}

	storage := strings.TrimRight(opts.StorageURLPrefix, "/")
	repo := strings.TrimRight(opts.RepoURLPrefix, "/")

	lines := []string{
		"esp_toml_version = 1.0",
		"",
		fmt.Sprintf("firmware_images_url = %q", storage),
		"",
		"# Apps that you support and for which the binaries are available to publish.",
		fmt.Sprintf("supported_apps = [%q]", opts.ProjectName),
		"",
	}

	if opts.ReadmeExists {
		lines = append(lines, fmt.Sprintf("config_readme_url = %q", repo+"/"+opts.ProjectPath+"/README.md"))
	}

	for _, chipset := range chipsets {
		key := strings.ToLower(chipset)
		lines = append(lines, fmt.Sprintf("image.%s = %q", key, opts.ProjectName+"-"+key+".bin"))
	}

	if m.Description != "" {
		lines = append(lines, fmt.Sprintf("description = %q", m.Description))
	}

	return strings.Join(lines, "\n") + "\n", nil
}
