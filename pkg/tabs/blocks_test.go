package tabs

import (
	"strings"
	"testing"

	"github.com/espembed/docsembed/pkg/errors"
	"github.com/espembed/docsembed/pkg/launchpad"
	"github.com/espembed/docsembed/pkg/manifest"
)

func TestChipsetLabel(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{target: "esp32", want: "ESP32"},
		{target: "esp32s3", want: "ESP32-S3"},
		{target: "esp8266", want: "ESP8266"}, // no chipset mapping, uppercased
	}

	for _, tt := range tests {
		if got := ChipsetLabel(tt.target); got != tt.want {
			t.Errorf("ChipsetLabel(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestBlocksFromManifest(t *testing.T) {
	m := &manifest.Manifest{Targets: []string{"esp32", "esp32s3"}}
	opts := ExampleOptions{
		ExamplePath: "libraries/ESP32/examples/GPIO/Blink",
		PublicRoot:  "https://docs.example.com",
		BinariesDir: "binaries",
		SourceText:  "void setup() {}",
	}

	blocks, err := BlocksFromManifest(m, opts)
	if err != nil {
		t.Fatal(err)
	}

	// Reference + code lead, then one simulation per target.
	if len(blocks) != 4 {
		t.Fatalf("len(blocks) = %d, want 4", len(blocks))
	}
	ref, ok := blocks[0].(*ReferenceBlock)
	if !ok || ref.Name != "Blink.ino" {
		t.Errorf("blocks[0] = %+v, want reference Blink.ino", blocks[0])
	}
	code, ok := blocks[1].(*CodeBlock)
	if !ok || code.Language != "arduino" {
		t.Errorf("blocks[1] = %+v, want arduino code block", blocks[1])
	}

	s, ok := blocks[2].(*SimulationBlock)
	if !ok {
		t.Fatalf("blocks[2] = %T, want simulation", blocks[2])
	}
	wantFW := "https://docs.example.com/binaries/libraries/ESP32/examples/GPIO/Blink/esp32/Blink.ino.merged.bin"
	if s.FirmwareURL != wantFW {
		t.Errorf("FirmwareURL = %q, want %q", s.FirmwareURL, wantFW)
	}
	wantDiag := "https://docs.example.com/binaries/libraries/ESP32/examples/GPIO/Blink/esp32/diagram.esp32.json"
	if s.DiagramURL != wantDiag {
		t.Errorf("DiagramURL = %q, want %q", s.DiagramURL, wantDiag)
	}
	if s.Label != "ESP32" {
		t.Errorf("Label = %q, want ESP32", s.Label)
	}

	s3 := blocks[3].(*SimulationBlock)
	if s3.Label != "ESP32-S3" || !strings.Contains(s3.FirmwareURL, "/esp32s3/") {
		t.Errorf("blocks[3] = %+v, want the esp32s3 simulation", s3)
	}
}

func TestBlocksFromManifestComposesWithSource(t *testing.T) {
	m := &manifest.Manifest{Targets: []string{"esp32"}}
	blocks, err := BlocksFromManifest(m, ExampleOptions{
		ExamplePath: "examples/Blink",
		PublicRoot:  "https://x",
		BinariesDir: "gen",
		SourceText:  "void loop() {}",
	})
	if err != nil {
		t.Fatal(err)
	}

	model, err := Compose(blocks, &Context{}, Options{ActivePolicy: ActiveFirstSimulation})
	if err != nil {
		t.Fatal(err)
	}
	if len(model.Panels) != 2 {
		t.Fatalf("len(Panels) = %d, want source + simulation", len(model.Panels))
	}
	if model.Panels[0].Label != "Blink.ino" {
		t.Errorf("Panels[0].Label = %q, want Blink.ino", model.Panels[0].Label)
	}
	if model.Panels[0].Active || !model.Panels[1].Active {
		t.Error("simulation panel must start active under ActiveFirstSimulation")
	}
}

func TestBlocksFromManifestNoTargets(t *testing.T) {
	if _, err := BlocksFromManifest(manifest.New(), ExampleOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestBlocksFromManifestSketchOverride(t *testing.T) {
	m := &manifest.Manifest{Targets: []string{"esp32"}}
	blocks, err := BlocksFromManifest(m, ExampleOptions{
		ExamplePath: "examples/Blink",
		SketchName:  "Custom",
		PublicRoot:  "https://x",
	})
	if err != nil {
		t.Fatal(err)
	}
	s := blocks[0].(*SimulationBlock)
	if !strings.HasSuffix(s.FirmwareURL, "/Custom.ino.merged.bin") {
		t.Errorf("FirmwareURL = %q, want Custom sketch name", s.FirmwareURL)
	}
}

func TestBlocksFromLaunchpad(t *testing.T) {
	cfg := &launchpad.Config{
		FirmwareImageURL: "https://storage.example.com/bin",
		Images: map[string]string{
			"esp32-s3": "Blink-esp32-s3.bin",
			"esp32":    "Blink-esp32.bin",
		},
	}

	blocks, err := BlocksFromLaunchpad(cfg, "Blink", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(blocks))
	}

	// Sorted chipset order.
	first := blocks[0].(*SimulationBlock)
	second := blocks[1].(*SimulationBlock)
	if first.Label != "ESP32" || second.Label != "ESP32-S3" {
		t.Errorf("labels = %q, %q, want ESP32, ESP32-S3", first.Label, second.Label)
	}
	if first.FirmwareURL != "https://storage.example.com/bin/Blink-esp32.bin" {
		t.Errorf("FirmwareURL = %q", first.FirmwareURL)
	}
	if first.DiagramURL != "" {
		t.Errorf("DiagramURL = %q, want empty for prefix backfill", first.DiagramURL)
	}
}

func TestBlocksFromLaunchpadDownloadServerWins(t *testing.T) {
	cfg := &launchpad.Config{
		FirmwareImageURL: "https://fallback.example.com",
		Images:           map[string]string{"esp32": "fw.bin"},
	}

	blocks, err := BlocksFromLaunchpad(cfg, "Blink", "https://mirror.example.com/")
	if err != nil {
		t.Fatal(err)
	}
	s := blocks[0].(*SimulationBlock)
	if s.FirmwareURL != "https://mirror.example.com/fw.bin" {
		t.Errorf("FirmwareURL = %q, want the download server", s.FirmwareURL)
	}
}

func TestBlocksFromLaunchpadUnresolvable(t *testing.T) {
	cfg := &launchpad.Config{Images: map[string]string{"esp32": "fw.bin"}}
	if _, err := BlocksFromLaunchpad(cfg, "Blink", ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestBlocksFromLaunchpadEmpty(t *testing.T) {
	if _, err := BlocksFromLaunchpad(&launchpad.Config{}, "Blink", ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestBlocksFromLaunchpadAbsoluteImage(t *testing.T) {
	cfg := &launchpad.Config{
		Images: map[string]string{"esp32": "https://cdn.example.com/fw.bin"},
	}
	blocks, err := BlocksFromLaunchpad(cfg, "Blink", "")
	if err != nil {
		t.Fatal(err)
	}
	if s := blocks[0].(*SimulationBlock); s.FirmwareURL != "https://cdn.example.com/fw.bin" {
		t.Errorf("FirmwareURL = %q, want the absolute image URL", s.FirmwareURL)
	}
}
