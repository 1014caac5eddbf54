// Package sync keeps a project's CI manifest and its per-target simulation
// diagrams consistent, in both directions.
//
// A full diagram is the board's fixed boilerplate (silhouette part, serial
// monitor wiring) plus the author content stored as a manifest override.
// [Generate] builds the full diagram from an override; [ExtractOverride] is
// its left inverse, recovering the override by filtering the boilerplate out:
//
//	ExtractOverride(Generate(target, o)) == o
//
// [Engine] drives whole-project synchronization over injected stores,
// target by target: recoverable per-target conditions (missing diagram file,
// write refused because the file exists) are recorded as warnings and
// processing continues; unknown targets and malformed documents abort.
package sync

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/manifest"
	"github.com/espembed/docsembed/pkg/store"
	"github.com/espembed/docsembed/pkg/wokwi"
)

// Generate builds the full simulation diagram for target from an optional
// manifest override. The result always starts with the board silhouette part
// and the two serial monitor connections; override content follows in order.
// Pure and deterministic; targets outside the board table are UNKNOWN_TARGET.
func Generate(target string, override manifest.Override) (*wokwi.Diagram, error) {
	board, err := wokwi.LookupBoard(target)
	if err != nil {
		return nil, err
	}

	d := &wokwi.Diagram{
		Version: wokwi.DiagramVersion,
		Author:  wokwi.DiagramAuthor,
		Editor:  wokwi.DiagramEditor,
		Parts: []wokwi.Part{{
			Type:  board.PartType,
			ID:    wokwi.BoardID,
			Top:   0,
			Left:  0,
			Attrs: map[string]any{},
		}},
		Connections: wokwi.SerialConnections(board),
	}

	d.Parts = append(d.Parts, override.Parts...)
	d.Connections = append(d.Connections, override.Connections...)
	if len(override.Dependencies) > 0 {
		d.Dependencies = override.Dependencies
	}
	return d, nil
}

// ExtractOverride recovers the author-content override from a full diagram by
// filtering out the synthesized board part and serial monitor connections.
// Dependencies pass through unchanged.
func ExtractOverride(d *wokwi.Diagram) manifest.Override {
	var o manifest.Override
	for _, p := range d.Parts {
		if !wokwi.IsBoardPart(p) {
			o.Parts = append(o.Parts, p)
		}
	}
	for _, c := range d.Connections {
		if !wokwi.IsSerialConnection(c) {
			o.Connections = append(o.Connections, c)
		}
	}
	o.Dependencies = d.Dependencies
	return o
}

// Warning records a recoverable per-target condition encountered during a
// synchronization pass.
type Warning struct {
	Target  string
	Code    errors.Code
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Target, w.Message)
}

// Report summarizes one synchronization pass: which targets produced output
// and which were skipped with a warning.
type Report struct {
	Processed []string
	Warnings  []Warning
}

func (r *Report) warn(target string, code errors.Code, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Target:  target,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// Engine synchronizes manifests and diagrams through injected stores.
// Logger is optional; when set, per-target progress and warnings are logged.
type Engine struct {
	Manifests store.ManifestStore
	Diagrams  store.DiagramStore
	Logger    *log.Logger
}

// ManifestFromDiagrams folds the diagrams for the given targets back into the
// manifest. With no explicit targets, every persisted diagram is processed.
//
// Per target: a missing diagram file is a warning and the target is skipped;
// an override that comes out entirely empty leaves the target listed in the
// manifest but stores no diagram entry; otherwise the entry is overwritten.
// Entries for targets outside the processed set are never touched. A project
// without a manifest starts from an empty one.
func (e *Engine) ManifestFromDiagrams(ctx context.Context, targets []string) (*manifest.Manifest, *Report, error) {
	report := &Report{}

	m, err := e.Manifests.LoadManifest(ctx)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeMissingArtifact) {
			return nil, nil, err
		}
		m = manifest.New()
	}

	if len(targets) == 0 {
		targets, err = e.Diagrams.ListTargets(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	for _, target := range targets {
		d, err := e.Diagrams.LoadDiagram(ctx, target)
		if err != nil {
			if errors.Is(err, errors.ErrCodeMissingArtifact) {
				report.warn(target, errors.ErrCodeMissingArtifact, "%s, skipping", errors.UserMessage(err))
				e.logWarn("Diagram missing, skipping", "target", target)
				continue
			}
			return nil, nil, err
		}

		override := ExtractOverride(d)
		m.EnsureTarget(target)
		if override.Empty() {
			report.warn(target, errors.ErrCodeMissingArtifact, "no parts, connections, or dependencies, no override stored")
			e.logInfo("No author content, target listed without override", "target", target)
			continue
		}

		m.SetOverride(target, override)
		report.Processed = append(report.Processed, target)
		e.logInfo("Processed target",
			"target", target,
			"parts", len(override.Parts),
			"connections", len(override.Connections))
	}

	return m, report, nil
}

// DiagramsFromManifest generates and persists a full diagram for each
// requested target, defaulting to the manifest's target list. An existing
// diagram file is only replaced when overwrite is set; refusals are warnings
// and the pass continues with the remaining targets. Unknown targets abort.
func (e *Engine) DiagramsFromManifest(ctx context.Context, targets []string, overwrite bool) (*Report, error) {
	report := &Report{}

	m, err := e.Manifests.LoadManifest(ctx)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeMissingArtifact) {
			return nil, err
		}
		m = manifest.New()
	}

	if len(targets) == 0 {
		targets = m.Targets
	}

	for _, target := range targets {
		d, err := Generate(target, m.Override(target))
		if err != nil {
			return nil, err
		}

		if err := e.Diagrams.SaveDiagram(ctx, target, d, overwrite); err != nil {
			if errors.Is(err, errors.ErrCodeExistingFile) {
				report.warn(target, errors.ErrCodeExistingFile, "%s, use --override to overwrite", errors.UserMessage(err))
				e.logWarn("Diagram exists, not overwriting", "target", target)
				continue
			}
			return nil, err
		}
		report.Processed = append(report.Processed, target)
		e.logInfo("Generated diagram", "target", target)
	}

	return report, nil
}

func (e *Engine) logInfo(msg string, kv ...any) {
	if e.Logger != nil {
		e.Logger.Info(msg, kv...)
	}
}

func (e *Engine) logWarn(msg string, kv ...any) {
	if e.Logger != nil {
		e.Logger.Warn(msg, kv...)
	}
}
