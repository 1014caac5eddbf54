package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/espembed/docsembed/pkg/wokwi"
)

func TestEnsureTarget(t *testing.T) {
	m := New()

	if !m.EnsureTarget("esp32") {
		t.Error("first EnsureTarget = false, want true")
	}
	if m.EnsureTarget("esp32") {
		t.Error("duplicate EnsureTarget = true, want false")
	}
	m.EnsureTarget("esp32s3")

	want := []string{"esp32", "esp32s3"}
	if len(m.Targets) != len(want) || m.Targets[0] != want[0] || m.Targets[1] != want[1] {
		t.Errorf("Targets = %v, want %v (insertion order)", m.Targets, want)
	}
}

func TestSetOverride(t *testing.T) {
	m := New()

	o := Override{Parts: []wokwi.Part{{Type: "wokwi-led", ID: "led1"}}}
	m.SetOverride("esp32", o)

	if !m.HasTarget("esp32") {
		t.Error("SetOverride did not list the target")
	}
	if got := m.Override("esp32"); len(got.Parts) != 1 {
		t.Errorf("Override = %+v, want the stored parts", got)
	}

	// Emptying the override drops the entry but keeps the target listed.
	m.SetOverride("esp32", Override{})
	if !m.HasTarget("esp32") {
		t.Error("target dropped when override emptied")
	}
	if _, ok := m.Diagrams["esp32"]; ok {
		t.Error("empty override stored, want entry removed")
	}
}

func TestOverrideEmpty(t *testing.T) {
	tests := []struct {
		name string
		o    Override
		want bool
	}{
		{name: "Zero", o: Override{}, want: true},
		{name: "Parts", o: Override{Parts: []wokwi.Part{{ID: "x"}}}, want: false},
		{name: "Connections", o: Override{Connections: []wokwi.Connection{{From: "a", To: "b"}}}, want: false},
		{name: "Dependencies", o: Override{Dependencies: map[string]any{"chip-x": "1"}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentJSONShape(t *testing.T) {
	m := New()
	m.EnsureTarget("esp32")
	m.SetOverride("esp32", Override{
		Connections: []wokwi.Connection{{From: "esp:4", To: "led1:A", Color: "green"}},
	})

	data, err := json.Marshal(Document{UploadBinary: m})
	if err != nil {
		t.Fatal(err)
	}

	s := string(data)
	for _, want := range []string{`"upload-binary"`, `"targets":["esp32"]`, `"diagram"`, `["esp:4","led1:A","green",[]]`} {
		if !strings.Contains(s, want) {
			t.Errorf("document %s missing %s", s, want)
		}
	}
}

func TestDocumentOmitsEmptySections(t *testing.T) {
	data, err := json.Marshal(Document{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("empty document = %s, want {}", data)
	}

	data, err = json.Marshal(Document{UploadBinary: New()})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "diagram") || strings.Contains(string(data), "description") {
		t.Errorf("empty manifest = %s, want diagram and description omitted", data)
	}
}
