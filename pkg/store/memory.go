package store

import (
	"context"
	"sort"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/manifest"
	"github.com/espembed/docsembed/pkg/wokwi"
)

// MemStore is an in-memory Store for tests. It mirrors FileStore's error
// behavior: missing documents are MISSING_ARTIFACT, refused overwrites are
// EXISTING_FILE.
type MemStore struct {
	Manifest *manifest.Manifest
	Diagrams map[string]*wokwi.Diagram
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{Diagrams: make(map[string]*wokwi.Diagram)}
}

// LoadManifest implements ManifestStore.
func (s *MemStore) LoadManifest(ctx context.Context) (*manifest.Manifest, error) {
	if s.Manifest == nil {
		return nil, errors.New(errors.ErrCodeMissingArtifact, "no CI manifest")
	}
	return s.Manifest, nil
}

// SaveManifest implements ManifestStore.
func (s *MemStore) SaveManifest(ctx context.Context, m *manifest.Manifest, overwrite bool) error {
	if s.Manifest != nil && !overwrite {
		return errors.New(errors.ErrCodeExistingFile, "CI manifest already exists")
	}
	s.Manifest = m
	return nil
}

// LoadDiagram implements DiagramStore.
func (s *MemStore) LoadDiagram(ctx context.Context, target string) (*wokwi.Diagram, error) {
	d, ok := s.Diagrams[target]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingArtifact, "diagram.%s.json not found", target)
	}
	return d, nil
}

// SaveDiagram implements DiagramStore.
func (s *MemStore) SaveDiagram(ctx context.Context, target string, d *wokwi.Diagram, overwrite bool) error {
	if _, ok := s.Diagrams[target]; ok && !overwrite {
		return errors.New(errors.ErrCodeExistingFile, "diagram.%s.json already exists", target)
	}
	if s.Diagrams == nil {
		s.Diagrams = make(map[string]*wokwi.Diagram)
	}
	s.Diagrams[target] = d
	return nil
}

// ListTargets implements DiagramStore.
func (s *MemStore) ListTargets(ctx context.Context) ([]string, error) {
	targets := make([]string, 0, len(s.Diagrams))
	for t := range s.Diagrams {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets, nil
}

// Ensure MemStore implements Store.
var _ Store = (*MemStore)(nil)
