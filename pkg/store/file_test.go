package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/manifest"
	"github.com/espembed/docsembed/pkg/wokwi"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	return s, dir
}

func TestNewFileStore(t *testing.T) {
	if _, err := NewFileStore(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing dir error = %v, want INVALID_PATH", err)
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(file); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("non-dir error = %v, want INVALID_PATH", err)
	}
}

func TestManifestRoundTripJSON(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	if _, err := s.LoadManifest(ctx); !errors.Is(err, errors.ErrCodeMissingArtifact) {
		t.Fatalf("load from empty dir = %v, want MISSING_ARTIFACT", err)
	}

	m := manifest.New()
	m.EnsureTarget("esp32")
	m.SetOverride("esp32", manifest.Override{
		Parts: []wokwi.Part{{Type: "wokwi-led", ID: "led1", Attrs: map[string]any{}}},
	})
	if err := s.SaveManifest(ctx, m, false); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "ci.json")); err != nil {
		t.Fatalf("ci.json not written: %v", err)
	}

	back, err := s.LoadManifest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Targets, m.Targets) {
		t.Errorf("Targets = %v, want %v", back.Targets, m.Targets)
	}
	if o := back.Override("esp32"); len(o.Parts) != 1 || o.Parts[0].ID != "led1" {
		t.Errorf("override = %+v, want the led part", o)
	}
}

func TestManifestYAMLFallback(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	doc := `
upload-binary:
  targets:
    - esp32
    - esp32s3
  diagram:
    esp32:
      parts:
        - type: wokwi-led
          id: led1
          top: 0
          left: 0
          attrs: {}
      connections:
        - ["esp:4", "led1:A", "green"]
`
	if err := os.WriteFile(filepath.Join(dir, "ci.yml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := s.LoadManifest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Targets, []string{"esp32", "esp32s3"}) {
		t.Errorf("Targets = %v, want [esp32 esp32s3]", m.Targets)
	}
	o := m.Override("esp32")
	if len(o.Connections) != 1 || o.Connections[0].Color != "green" {
		t.Errorf("override connections = %+v, want the green wire", o.Connections)
	}

	// A manifest loaded from ci.yml is saved back as ci.yml.
	if err := s.SaveManifest(ctx, m, true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ci.json")); !os.IsNotExist(err) {
		t.Error("save after YAML load produced ci.json")
	}
	if _, err := s.LoadManifest(ctx); err != nil {
		t.Fatalf("reload of saved ci.yml: %v", err)
	}
}

func TestManifestPreservesForeignSections(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	doc := `{
  "build": {"enable": true},
  "upload-binary": {"targets": ["esp32"]}
}`
	path := filepath.Join(dir, "ci.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := s.LoadManifest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	m.EnsureTarget("esp32s3")
	if err := s.SaveManifest(ctx, m, true); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["build"]; !ok {
		t.Errorf("saved document %s lost the build section", data)
	}
}

func TestManifestWithoutUploadBinarySection(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	if err := os.WriteFile(filepath.Join(dir, "ci.json"), []byte(`{"build": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := s.LoadManifest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Targets) != 0 {
		t.Errorf("Targets = %v, want empty manifest", m.Targets)
	}
}

func TestSaveManifestRefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if err := s.SaveManifest(ctx, manifest.New(), false); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveManifest(ctx, manifest.New(), false); !errors.Is(err, errors.ErrCodeExistingFile) {
		t.Errorf("second save = %v, want EXISTING_FILE", err)
	}
	if err := s.SaveManifest(ctx, manifest.New(), true); err != nil {
		t.Errorf("overwrite save = %v, want nil", err)
	}
}

func TestMalformedManifest(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	if err := os.WriteFile(filepath.Join(dir, "ci.json"), []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadManifest(ctx); !errors.Is(err, errors.ErrCodeMalformedDocument) {
		t.Errorf("error = %v, want MALFORMED_DOCUMENT", err)
	}
}

func TestDiagramRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	d := &wokwi.Diagram{
		Version: wokwi.DiagramVersion,
		Author:  wokwi.DiagramAuthor,
		Editor:  wokwi.DiagramEditor,
		Parts: []wokwi.Part{
			{Type: "board-esp32-devkit-c-v4", ID: "esp", Attrs: map[string]any{}},
		},
		Connections: []wokwi.Connection{
			{From: "esp:TX", To: "$serialMonitor:RX", Points: []any{}},
		},
	}
	if err := s.SaveDiagram(ctx, "esp32", d, false); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "diagram.esp32.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("diagram file not written: %v", err)
	}
	if !strings.Contains(string(data), `["esp:TX","$serialMonitor:RX","",[]]`) &&
		!strings.Contains(string(data), `"esp:TX"`) {
		t.Errorf("diagram file %s missing serial connection", data)
	}

	back, err := s.LoadDiagram(ctx, "esp32")
	if err != nil {
		t.Fatal(err)
	}
	if back.Parts[0].Type != d.Parts[0].Type {
		t.Errorf("Parts[0].Type = %q, want %q", back.Parts[0].Type, d.Parts[0].Type)
	}
	if back.Connections[0].To != "$serialMonitor:RX" {
		t.Errorf("Connections[0].To = %q", back.Connections[0].To)
	}
}

func TestSaveDiagramRefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	d := &wokwi.Diagram{Version: 1}
	if err := s.SaveDiagram(ctx, "esp32", d, false); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDiagram(ctx, "esp32", d, false); !errors.Is(err, errors.ErrCodeExistingFile) {
		t.Errorf("second save = %v, want EXISTING_FILE", err)
	}
}

func TestLoadDiagramMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if _, err := s.LoadDiagram(ctx, "esp32"); !errors.Is(err, errors.ErrCodeMissingArtifact) {
		t.Errorf("error = %v, want MISSING_ARTIFACT", err)
	}
}

func TestListTargets(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	for _, name := range []string{
		"diagram.esp32s3.json",
		"diagram.esp32.json",
		"diagram.default.json", // template, not a target
		"diagram.json",         // no target segment
		"ci.json",
		"notes.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	targets, err := s.ListTargets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"esp32", "esp32s3"}
	if !reflect.DeepEqual(targets, want) {
		t.Errorf("ListTargets = %v, want %v", targets, want)
	}
}
