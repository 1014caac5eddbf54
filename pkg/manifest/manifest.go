// Package manifest defines the CI manifest document of an example project:
// the list of supported hardware targets, optional per-target diagram
// overrides, and an optional description used by the flashing config.
package manifest

import "github.com/espembed/docsembed/pkg/wokwi"

// Override is the author-content subset of a diagram: the parts and
// connections that remain once the synthesized board silhouette and serial
// monitor wiring are filtered out, plus the diagram's dependency map.
type Override struct {
	Parts        []wokwi.Part       `json:"parts" yaml:"parts"`
	Connections  []wokwi.Connection `json:"connections" yaml:"connections"`
	Dependencies map[string]any     `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Empty reports whether the override carries no author content at all.
// Empty overrides are omitted from the manifest rather than stored as {}.
func (o Override) Empty() bool {
	return len(o.Parts) == 0 && len(o.Connections) == 0 && len(o.Dependencies) == 0
}

// Manifest is the upload-binary section of a project's CI document.
// Targets preserves insertion order and never contains duplicates; Diagrams
// only has entries for targets whose override is non-empty.
type Manifest struct {
	Targets     []string            `json:"targets" yaml:"targets"`
	Diagrams    map[string]Override `json:"diagram,omitempty" yaml:"diagram,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{}
}

// HasTarget reports whether target is already listed.
func (m *Manifest) HasTarget(target string) bool {
	for _, t := range m.Targets {
		if t == target {
			return true
		}
	}
	return false
}

// EnsureTarget appends target to the target list if absent.
// It reports whether the list changed.
func (m *Manifest) EnsureTarget(target string) bool {
	if m.HasTarget(target) {
		return false
	}
	m.Targets = append(m.Targets, target)
	return true
}

// Override returns the diagram override for target, or a zero override when
// none is stored.
func (m *Manifest) Override(target string) Override {
	if m.Diagrams == nil {
		return Override{}
	}
	return m.Diagrams[target]
}

// SetOverride stores an override for target, overwriting any prior value,
// and makes sure the target is listed. Empty overrides are dropped instead.
func (m *Manifest) SetOverride(target string, o Override) {
	m.EnsureTarget(target)
	if o.Empty() {
		delete(m.Diagrams, target)
		return
	}
	if m.Diagrams == nil {
		m.Diagrams = make(map[string]Override)
	}
	m.Diagrams[target] = o
}

// Document is the on-disk shape of the CI file. The manifest lives under the
// upload-binary key; other sections of the CI document are preserved as-is.
type Document struct {
	UploadBinary *Manifest `json:"upload-binary,omitempty" yaml:"upload-binary,omitempty"`
}
