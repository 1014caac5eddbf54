package wokwi

import (
	"sort"

	"github.com/espembed/docsembed/pkg/errors"
)

// Board describes the fixed dev-board silhouette and wiring convention for a
// hardware target. TXPin and RXPin are the pin names used when wiring the
// chip's UART to the virtual serial monitor; most boards use the symbolic
// "TX"/"RX" names, boards without labelled UART pins use GPIO numbers.
type Board struct {
	PartType string // Wokwi part type of the board silhouette (always "board-" prefixed)
	TXPin    string
	RXPin    string
}

// boards maps every supported target to its board descriptor. The table is
// closed: targets outside it are a hard error wherever a default diagram is
// required.
var boards = map[string]Board{
	"esp32":   {PartType: "board-esp32-devkit-c-v4", TXPin: "TX", RXPin: "RX"},
	"esp32c3": {PartType: "board-esp32-c3-devkitm-1", TXPin: "TX", RXPin: "RX"},
	"esp32c6": {PartType: "board-esp32-c6-devkitc-1", TXPin: "TX", RXPin: "RX"},
	"esp32h2": {PartType: "board-esp32-h2-devkitm-1", TXPin: "TX", RXPin: "RX"},
	"esp32p4": {PartType: "board-esp32-p4-function-ev", TXPin: "38", RXPin: "37"},
	"esp32s2": {PartType: "board-esp32-s2-devkitm-1", TXPin: "TX", RXPin: "RX"},
	"esp32s3": {PartType: "board-esp32-s3-devkitc-1", TXPin: "TX", RXPin: "RX"},
}

// LookupBoard returns the board descriptor for target.
// Unrecognized targets yield an UNKNOWN_TARGET error.
func LookupBoard(target string) (Board, error) {
	b, ok := boards[target]
	if !ok {
		return Board{}, errors.New(errors.ErrCodeUnknownTarget,
			"unknown target %q for board mapping or the board is not supported", target)
	}
	return b, nil
}

// IsKnownTarget reports whether target is in the board table.
func IsKnownTarget(target string) bool {
	_, ok := boards[target]
	return ok
}

// Targets returns every supported target identifier in sorted order.
func Targets() []string {
	out := make([]string, 0, len(boards))
	for t := range boards {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
