// Package tabs composes heterogeneous authoring blocks into a validated
// tabbed presentation model.
//
// A composition takes an ordered list of blocks — inline simulations, named
// references paired with the content that follows them, raw source code —
// and produces a [TabModel]: an ordered panel list with deterministic
// identifiers, exactly one active panel, and optional outbound links. The
// model is handed to an external renderer; this package performs no markup
// generation.
//
// Identifier assignment is driven by a document-scoped [Context] so that
// repeated compositions within one document get distinct, reproducible ids.
package tabs

import (
	"fmt"
	"strings"
)

// Block is one authoring unit in a composition. Implementations are
// [SimulationBlock], [ReferenceBlock], [CodeBlock], and [RawBlock].
type Block interface {
	block()
}

// SimulationBlock embeds one simulator iframe. FirmwareURL is mandatory for
// a valid composition; DiagramURL may be backfilled from a configured prefix.
type SimulationBlock struct {
	FirmwareURL string
	DiagramURL  string
	Label       string // explicit tab name; empty means an ordinal placeholder
	Title       string

	// Display options passed through to the renderer.
	Width           string
	Height          string
	Loading         string
	AllowFullscreen bool
}

// ReferenceBlock names the block that follows it; the pair becomes a single
// panel labeled with the reference name.
type ReferenceBlock struct {
	Name string
}

// CodeBlock is a raw source listing.
type CodeBlock struct {
	Text     string
	Language string
}

// RawBlock wraps an opaque authoring node that only the renderer understands.
type RawBlock struct {
	Node any
}

func (*SimulationBlock) block() {}
func (*ReferenceBlock) block()  {}
func (*CodeBlock) block()       {}
func (*RawBlock) block()        {}

// Content is the typed payload of a panel: one of *SimulationBlock,
// *CodeBlock, or *RawBlock.
type Content interface {
	content()
}

func (*SimulationBlock) content() {}
func (*CodeBlock) content()       {}
func (*RawBlock) content()        {}

// Panel is one tab in the composed model.
type Panel struct {
	Label   string
	Content Content
	Active  bool
	ID      string
}

// Simulation returns the panel's simulation content, or nil when the panel
// wraps something else.
func (p *Panel) Simulation() *SimulationBlock {
	if sim, ok := p.Content.(*SimulationBlock); ok {
		return sim
	}
	return nil
}

// TabModel is the composed view: ordered panels plus header metadata.
// It is immutable after composition.
type TabModel struct {
	RootID        string
	Panels        []Panel
	LaunchpadLink string
	SourceLink    string
}

// Context carries per-document composition state: the serial counter backing
// identifier assignment and document-wide defaults. One Context belongs to
// one document; it is never shared across documents or stored globally.
type Context struct {
	// DiagramPrefix is the document-wide JSON prefix used to backfill
	// missing diagram URLs. Options.DiagramPrefix takes precedence per call.
	DiagramPrefix string

	serial int
}

// NextSerial returns the next serial number, starting at 0.
func (c *Context) NextSerial() int {
	n := c.serial
	c.serial++
	return n
}

// ActivePolicy selects which panel of the final order starts active.
type ActivePolicy int

const (
	// ActiveFirst marks the first panel active (the default).
	ActiveFirst ActivePolicy = iota

	// ActiveFirstSimulation marks the first simulation panel active. Used for
	// manifest-derived target tabs where a source-code panel always comes
	// first but the simulation is the main event.
	ActiveFirstSimulation
)

// Options configures a single composition call.
type Options struct {
	// DiagramPrefix overrides Context.DiagramPrefix for this call.
	DiagramPrefix string

	// ActivePolicy selects the initially active panel.
	ActivePolicy ActivePolicy

	// LaunchpadURL, when set, becomes the model's LaunchpadLink. Whether a
	// flashing config actually exists is the caller's business.
	LaunchpadURL string

	// SourceBaseURL and SourceBranch together enable the SourceLink;
	// SourcePath is the linked path under the repository tree.
	SourceBaseURL string
	SourceBranch  string
	SourcePath    string
}

// CompositionError reports one validation failure. Panel is the 1-based
// panel position, or 0 for scan-level errors.
type CompositionError struct {
	Panel   int
	Message string
}

// Error implements the error interface.
func (e CompositionError) Error() string {
	if e.Panel > 0 {
		return fmt.Sprintf("panel %d: %s", e.Panel, e.Message)
	}
	return e.Message
}

// CompositionErrors is the full list of validation failures for one
// composition call. When any exist, no tab model is produced.
type CompositionErrors []CompositionError

// Error implements the error interface.
func (e CompositionErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ce := range e {
		msgs[i] = ce.Error()
	}
	return strings.Join(msgs, "; ")
}

// Compose scans blocks left to right into a tab model.
//
// Simulation blocks become their own panels; a reference names the next
// non-reference block (consecutive references coalesce, last one wins) and a
// dangling reference stops the scan; unlabeled code blocks become "Code N"
// panels; anything else is skipped. Validation is all-or-nothing: if any
// simulation panel lacks a firmware reference, Compose returns every
// [CompositionError] and no model.
func Compose(blocks []Block, ctx *Context, opts Options) (*TabModel, error) {
	panels, err := scan(blocks)
	if err != nil {
		return nil, err
	}

	if errs := validate(panels); len(errs) > 0 {
		return nil, errs
	}

	prefix := opts.DiagramPrefix
	if prefix == "" {
		prefix = ctx.DiagramPrefix
	}
	backfillDiagramURLs(panels, prefix)

	model := &TabModel{
		RootID: fmt.Sprintf("wokwi-tabs-%d", ctx.NextSerial()),
		Panels: panels,
	}
	for i := range model.Panels {
		model.Panels[i].ID = fmt.Sprintf("%s-panel-%d", model.RootID, i)
	}
	markActive(model.Panels, opts.ActivePolicy)

	model.LaunchpadLink = opts.LaunchpadURL
	if opts.SourceBaseURL != "" && opts.SourceBranch != "" {
		model.SourceLink = joinURL(opts.SourceBaseURL, "tree", opts.SourceBranch, opts.SourcePath)
	}

	return model, nil
}

// scan performs the single left-to-right pass over the blocks.
func scan(blocks []Block) ([]Panel, CompositionErrors) {
	var panels []Panel
	var simCount, codeCount int
	var pendingRef string
	var havePending bool

	appendPanel := func(label string, content Content) {
		if havePending {
			label = pendingRef
			havePending = false
		}
		panels = append(panels, Panel{Label: label, Content: content})
	}

	for _, b := range blocks {
		switch blk := b.(type) {
		case *ReferenceBlock:
			// Consecutive references coalesce; the last one wins.
			pendingRef = blk.Name
			havePending = true

		case *SimulationBlock:
			simCount++
			label := blk.Label
			if label == "" {
				label = fmt.Sprintf("Wokwi %d", simCount)
			}
			appendPanel(label, blk)

		case *CodeBlock:
			if havePending {
				appendPanel("", blk)
				continue
			}
			codeCount++
			appendPanel(fmt.Sprintf("Code %d", codeCount), blk)

		case *RawBlock:
			// Raw nodes only land in the model when a reference claims them.
			if havePending {
				appendPanel("", blk)
			}

		default:
			// Unknown block types are skipped, not an error.
		}
	}

	if havePending {
		return nil, CompositionErrors{{
			Message: fmt.Sprintf("target '%s' has no following content", pendingRef),
		}}
	}
	return panels, nil
}

// validate collects every simulation panel that lacks a firmware reference.
func validate(panels []Panel) CompositionErrors {
	var errs CompositionErrors
	for i := range panels {
		sim := panels[i].Simulation()
		if sim != nil && sim.FirmwareURL == "" {
			errs = append(errs, CompositionError{
				Panel:   i + 1,
				Message: "simulation requires a firmware reference",
			})
		}
	}
	return errs
}

// backfillDiagramURLs synthesizes diagram URLs for simulation panels that
// have none, using the configured JSON prefix and the slugged panel label.
func backfillDiagramURLs(panels []Panel, prefix string) {
	if prefix == "" {
		return
	}
	prefix = strings.TrimRight(prefix, "/")
	for i := range panels {
		sim := panels[i].Simulation()
		if sim != nil && sim.DiagramURL == "" {
			sim.DiagramURL = prefix + "/diagram-" + Slug(panels[i].Label) + ".json"
		}
	}
}

// markActive applies the active-panel policy; exactly one panel ends active
// whenever the list is non-empty.
func markActive(panels []Panel, policy ActivePolicy) {
	if len(panels) == 0 {
		return
	}
	active := 0
	if policy == ActiveFirstSimulation {
		for i := range panels {
			if panels[i].Simulation() != nil {
				active = i
				break
			}
		}
	}
	panels[active].Active = true
}
