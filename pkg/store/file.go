package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/manifest"
	"github.com/espembed/docsembed/pkg/wokwi"
)

// Manifest and diagram file naming within a project directory.
const (
	manifestJSON  = "ci.json"
	manifestYAML  = "ci.yml"
	diagramPrefix = "diagram."
	diagramSuffix = ".json"
)

// FileStore stores the manifest and diagram files of one example project
// directory. The manifest is ci.json, with ci.yml accepted as a fallback;
// whichever format was loaded is the one written back. Diagram files are
// named diagram.<target>.json.
type FileStore struct {
	dir   string
	yaml  bool           // manifest was loaded from (and is saved as) ci.yml
	extra map[string]any // CI document sections other than upload-binary
}

// NewFileStore opens a project directory. The directory must exist.
func NewFileStore(dir string) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "project directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the project directory the store is rooted at.
func (s *FileStore) Dir() string { return s.dir }

// ManifestPath returns the path of the manifest file the store reads and
// writes, reflecting the format detected by the last load.
func (s *FileStore) ManifestPath() string {
	if s.yaml {
		return filepath.Join(s.dir, manifestYAML)
	}
	return filepath.Join(s.dir, manifestJSON)
}

// DiagramPath returns the path of the diagram file for target.
func (s *FileStore) DiagramPath(target string) string {
	return filepath.Join(s.dir, diagramPrefix+target+diagramSuffix)
}

// LoadManifest implements ManifestStore. A project with neither ci.json nor
// ci.yml yields a MISSING_ARTIFACT error.
func (s *FileStore) LoadManifest(ctx context.Context) (*manifest.Manifest, error) {
	s.yaml = false
	path := filepath.Join(s.dir, manifestJSON)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.yaml = true
		path = filepath.Join(s.dir, manifestYAML)
		data, err = os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeMissingArtifact, "no CI manifest in %s", s.dir)
		}
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "read %s", path)
	}

	var doc manifest.Document
	var raw map[string]any
	if s.yaml {
		err = yaml.Unmarshal(data, &doc)
		if err == nil {
			err = yaml.Unmarshal(data, &raw)
		}
	} else {
		err = json.Unmarshal(data, &doc)
		if err == nil {
			err = json.Unmarshal(data, &raw)
		}
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parse %s", path)
	}

	// CI sections other than upload-binary survive a save untouched.
	delete(raw, "upload-binary")
	s.extra = raw

	if doc.UploadBinary == nil {
		return manifest.New(), nil
	}
	return doc.UploadBinary, nil
}

// SaveManifest implements ManifestStore.
func (s *FileStore) SaveManifest(ctx context.Context, m *manifest.Manifest, overwrite bool) error {
	path := s.ManifestPath()
	if !overwrite && exists(path) {
		return errors.New(errors.ErrCodeExistingFile, "%s already exists", path)
	}

	doc := make(map[string]any, len(s.extra)+1)
	for k, v := range s.extra {
		doc[k] = v
	}
	doc["upload-binary"] = m

	var data []byte
	var err error
	if s.yaml {
		data, err = yaml.Marshal(doc)
	} else {
		data, err = marshalIndented(doc)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// LoadDiagram implements DiagramStore.
func (s *FileStore) LoadDiagram(ctx context.Context, target string) (*wokwi.Diagram, error) {
	path := s.DiagramPath(target)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeMissingArtifact, "%s not found", filepath.Base(path))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "read %s", path)
	}

	var d wokwi.Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parse %s", path)
	}
	return &d, nil
}

// SaveDiagram implements DiagramStore.
func (s *FileStore) SaveDiagram(ctx context.Context, target string, d *wokwi.Diagram, overwrite bool) error {
	path := s.DiagramPath(target)
	if !overwrite && exists(path) {
		return errors.New(errors.ErrCodeExistingFile, "%s already exists", path)
	}

	data, err := marshalIndented(d)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode diagram for %s", target)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// ListTargets implements DiagramStore. The "default" diagram, when present,
// is a template rather than a target and is excluded.
func (s *FileStore) ListTargets(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "list %s", s.dir)
	}

	var targets []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, diagramPrefix) {
			continue
		}
		rest := strings.TrimPrefix(name, diagramPrefix)
		if !strings.HasSuffix(rest, diagramSuffix) {
			continue
		}
		target := strings.TrimSuffix(rest, diagramSuffix)
		if target == "" || target == "default" {
			continue
		}
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets, nil
}

// marshalIndented encodes v as two-space-indented JSON without escaping
// HTML characters in URLs.
func marshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
