// Package wokwi defines the on-disk entities of a Wokwi simulation diagram
// (parts, connections, the diagram document itself) together with the fixed
// board table mapping hardware targets to dev-board descriptors.
//
// The package is entity-only: it knows the wire shapes and the two structural
// predicates that separate synthesized boilerplate (board silhouette, serial
// monitor wiring) from author content. Building and filtering diagrams is the
// job of pkg/sync.
package wokwi

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixed metadata written into every generated diagram.
const (
	DiagramVersion = 1
	DiagramAuthor  = "Espressif Systems"
	DiagramEditor  = "wokwi"

	// BoardID is the part id used for the synthesized board silhouette and
	// referenced by the serial monitor connections.
	BoardID = "esp"

	// SerialMonitorRX and SerialMonitorTX are the virtual serial monitor
	// endpoints of the synthesized UART wiring.
	SerialMonitorRX = "$serialMonitor:RX"
	SerialMonitorTX = "$serialMonitor:TX"
)

// boardPartPrefix marks a part type as a synthesized board silhouette.
const boardPartPrefix = "board-"

// Part is one placed component in a diagram.
type Part struct {
	Type  string         `json:"type" yaml:"type"`
	ID    string         `json:"id" yaml:"id"`
	Top   float64        `json:"top" yaml:"top"`
	Left  float64        `json:"left" yaml:"left"`
	Attrs map[string]any `json:"attrs" yaml:"attrs"`
}

// MarshalJSON ensures attrs is always emitted, matching the editor's output.
func (p Part) MarshalJSON() ([]byte, error) {
	type part Part // drop methods to avoid recursion
	q := part(p)
	if q.Attrs == nil {
		q.Attrs = map[string]any{}
	}
	return json.Marshal(q)
}

// Connection is one wire between two pin endpoints. On the wire it is a
// 4-tuple array: [from, to, color, routePoints].
type Connection struct {
	From   string
	To     string
	Color  string
	Points []any
}

// MarshalJSON encodes the connection as its 4-element array form.
func (c Connection) MarshalJSON() ([]byte, error) {
	points := c.Points
	if points == nil {
		points = []any{}
	}
	return json.Marshal([]any{c.From, c.To, c.Color, points})
}

// UnmarshalJSON decodes the array form. Diagrams edited by hand sometimes
// omit the color or route points; two elements are the required minimum.
func (c *Connection) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("connection must be an array: %w", err)
	}
	if len(raw) < 2 || len(raw) > 4 {
		return fmt.Errorf("connection must have 2 to 4 elements, got %d", len(raw))
	}

	if err := json.Unmarshal(raw[0], &c.From); err != nil {
		return fmt.Errorf("connection endpoint: %w", err)
	}
	if err := json.Unmarshal(raw[1], &c.To); err != nil {
		return fmt.Errorf("connection endpoint: %w", err)
	}
	c.Color = ""
	if len(raw) > 2 {
		if err := json.Unmarshal(raw[2], &c.Color); err != nil {
			return fmt.Errorf("connection color: %w", err)
		}
	}
	c.Points = nil
	if len(raw) > 3 {
		if err := json.Unmarshal(raw[3], &c.Points); err != nil {
			return fmt.Errorf("connection route points: %w", err)
		}
	}
	return nil
}

// MarshalYAML mirrors the JSON array form for YAML manifests.
func (c Connection) MarshalYAML() (any, error) {
	points := c.Points
	if points == nil {
		points = []any{}
	}
	return []any{c.From, c.To, c.Color, points}, nil
}

// UnmarshalYAML decodes the array form from YAML manifests.
func (c *Connection) UnmarshalYAML(value *yaml.Node) error {
	var elems []yaml.Node
	if err := value.Decode(&elems); err != nil {
		return fmt.Errorf("connection must be a sequence: %w", err)
	}
	if len(elems) < 2 || len(elems) > 4 {
		return fmt.Errorf("connection must have 2 to 4 elements, got %d", len(elems))
	}

	if err := elems[0].Decode(&c.From); err != nil {
		return fmt.Errorf("connection endpoint: %w", err)
	}
	if err := elems[1].Decode(&c.To); err != nil {
		return fmt.Errorf("connection endpoint: %w", err)
	}
	c.Color = ""
	if len(elems) > 2 {
		if err := elems[2].Decode(&c.Color); err != nil {
			return fmt.Errorf("connection color: %w", err)
		}
	}
	c.Points = nil
	if len(elems) > 3 {
		if err := elems[3].Decode(&c.Points); err != nil {
			return fmt.Errorf("connection route points: %w", err)
		}
	}
	return nil
}

// Diagram is the full per-target hardware wiring description consumed by the
// simulator. A generated diagram always contains exactly one board part and
// two serial monitor connections ahead of any author content.
type Diagram struct {
	Version      int            `json:"version"`
	Author       string         `json:"author"`
	Editor       string         `json:"editor"`
	Parts        []Part         `json:"parts"`
	Connections  []Connection   `json:"connections"`
	Dependencies map[string]any `json:"dependencies,omitempty"`
}

// IsBoardPart reports whether p is a synthesized board silhouette rather than
// author content.
func IsBoardPart(p Part) bool {
	return strings.HasPrefix(p.Type, boardPartPrefix)
}

// SerialConnections returns the two synthesized serial monitor wires for a
// board: chip TX to monitor RX, chip RX to monitor TX.
func SerialConnections(b Board) []Connection {
	return []Connection{
		{From: BoardID + ":" + b.TXPin, To: SerialMonitorRX, Color: "", Points: []any{}},
		{From: BoardID + ":" + b.RXPin, To: SerialMonitorTX, Color: "", Points: []any{}},
	}
}

// serialPatterns holds the (from, to, color) triples of the serial monitor
// wiring across every board in the table. Pin names differ per target, so the
// predicate matches the union; author wiring never touches $serialMonitor.
var serialPatterns = func() map[[3]string]bool {
	set := make(map[[3]string]bool)
	for _, b := range boards {
		for _, c := range SerialConnections(b) {
			set[[3]string{c.From, c.To, c.Color}] = true
		}
	}
	return set
}()

// IsSerialConnection reports whether c is synthesized serial monitor wiring.
// Only the endpoints and color participate; route points are ignored.
func IsSerialConnection(c Connection) bool {
	return serialPatterns[[3]string{c.From, c.To, c.Color}]
}
