// Package store provides typed read/write access to the two on-disk
// documents of an example project: the CI manifest and the per-target
// simulation diagrams.
//
// The sync engine depends on the [ManifestStore] and [DiagramStore]
// interfaces rather than the filesystem, so it can be driven by the
// in-memory [MemStore] in tests. [FileStore] is the production
// implementation rooted at a project directory.
package store

import (
	"context"

	"github.com/espembed/docsembed/pkg/manifest"
	"github.com/espembed/docsembed/pkg/wokwi"
)

// ManifestStore reads and writes the project's CI manifest.
type ManifestStore interface {
	// LoadManifest returns the manifest, or a MISSING_ARTIFACT error when the
	// project has no CI document yet. Parse failures are MALFORMED_DOCUMENT.
	LoadManifest(ctx context.Context) (*manifest.Manifest, error)

	// SaveManifest persists the manifest. With overwrite false an existing
	// CI document yields an EXISTING_FILE error and is left untouched.
	SaveManifest(ctx context.Context, m *manifest.Manifest, overwrite bool) error
}

// DiagramStore reads and writes per-target diagram files.
type DiagramStore interface {
	// LoadDiagram returns the diagram for target, or a MISSING_ARTIFACT error
	// when no diagram file exists. Parse failures are MALFORMED_DOCUMENT.
	LoadDiagram(ctx context.Context, target string) (*wokwi.Diagram, error)

	// SaveDiagram persists the diagram for target. With overwrite false an
	// existing file yields an EXISTING_FILE error and is left untouched.
	SaveDiagram(ctx context.Context, target string, d *wokwi.Diagram, overwrite bool) error

	// ListTargets returns every target that has a persisted diagram,
	// in sorted order.
	ListTargets(ctx context.Context) ([]string, error)
}

// Store combines both document stores; FileStore and MemStore implement it.
type Store interface {
	ManifestStore
	DiagramStore
}
