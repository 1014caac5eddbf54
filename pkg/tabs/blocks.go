package tabs

import (
	"path"
	"sort"
	"strings"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/launchpad"
	"github.com/espembed/docsembed/pkg/manifest"
)

// ChipsetLabel returns the tab label for a hardware target: the chipset
// label for recognized targets ("esp32s3" -> "ESP32-S3"), the uppercased
// target otherwise.
func ChipsetLabel(target string) string {
	if label, err := launchpad.Chipset(target); err == nil {
		return label
	}
	return strings.ToUpper(target)
}

// ExampleOptions configures manifest-derived target tabs for one example
// project.
type ExampleOptions struct {
	// ExamplePath is the project path under the repository root,
	// e.g. "libraries/ESP32/examples/GPIO/Blink".
	ExamplePath string

	// SketchName overrides the sketch file base name; it defaults to the
	// last segment of ExamplePath.
	SketchName string

	// PublicRoot and BinariesDir locate the built artifacts: firmware and
	// diagram URLs are <PublicRoot>/<BinariesDir>/<ExamplePath>/<target>/...
	PublicRoot  string
	BinariesDir string

	// SourceText, when non-empty, prepends a source-code block labeled with
	// the sketch file name. SourceLanguage defaults to "arduino".
	SourceText     string
	SourceLanguage string

	// Display options applied to every simulation block.
	Width           string
	Height          string
	Loading         string
	AllowFullscreen bool
}

// BlocksFromManifest expands a manifest's target list into composition
// blocks: an optional leading source-code block followed by one simulation
// block per target, with firmware and diagram URLs derived from the example's
// published artifact layout. Compose these with ActiveFirstSimulation to
// land readers on the first target tab.
func BlocksFromManifest(m *manifest.Manifest, opts ExampleOptions) ([]Block, error) {
	if len(m.Targets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest has no targets")
	}

	sketch := opts.SketchName
	if sketch == "" {
		sketch = path.Base(opts.ExamplePath)
	}

	var blocks []Block

	if opts.SourceText != "" {
		lang := opts.SourceLanguage
		if lang == "" {
			lang = "arduino"
		}
		ino := sketch + ".ino"
		blocks = append(blocks,
			&ReferenceBlock{Name: ino},
			&CodeBlock{Text: opts.SourceText, Language: lang},
		)
	}

	for _, target := range m.Targets {
		label := ChipsetLabel(target)
		targetDir := joinURL(opts.PublicRoot, opts.BinariesDir, opts.ExamplePath, target)
		blocks = append(blocks, &SimulationBlock{
			FirmwareURL:     targetDir + "/" + sketch + ".ino.merged.bin",
			DiagramURL:      targetDir + "/diagram." + target + ".json",
			Label:           label,
			Title:           "Wokwi simulation for " + label,
			Width:           opts.Width,
			Height:          opts.Height,
			Loading:         opts.Loading,
			AllowFullscreen: opts.AllowFullscreen,
		})
	}

	return blocks, nil
}

// BlocksFromLaunchpad expands a parsed flashing config into simulation
// blocks, one per image entry, in sorted chipset order. Firmware URLs are
// resolved against downloadServer, falling back to the config's own
// firmware_images_url; chipsets whose image path resolves to no absolute URL
// are an INVALID_INPUT error. Diagram URLs are left empty for Compose's
// prefix backfill.
func BlocksFromLaunchpad(cfg *launchpad.Config, project, downloadServer string) ([]Block, error) {
	if len(cfg.Images) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "flashing config has no image entries")
	}

	chipsets := make([]string, 0, len(cfg.Images))
	for c := range cfg.Images {
		chipsets = append(chipsets, c)
	}
	sort.Strings(chipsets)

	blocks := make([]Block, 0, len(chipsets))
	for _, chipset := range chipsets {
		img := cfg.Images[chipset]
		firmware := resolveURL(downloadServer, img)
		if firmware == "" {
			firmware = resolveURL(cfg.FirmwareImageURL, img)
		}
		if firmware == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"could not build firmware URL for chipset %q: provide an absolute URL or a download server", chipset)
		}

		label := strings.ToUpper(chipset)
		blocks = append(blocks, &SimulationBlock{
			FirmwareURL: firmware,
			Label:       label,
			Title:       "Wokwi simulation for " + project + " (" + label + ")",
		})
	}

	return blocks, nil
}
