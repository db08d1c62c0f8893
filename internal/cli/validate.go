package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckdraw/pkg/diagram"
)

// newValidateCmd creates the validate command, which parses a deck and
// reports its structure without rendering.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [deck.yaml]",
		Short: "Parse a deck description and report its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			data, err := readDeckSource(cmd.Context(), args[0])
			if err != nil {
				printError("cannot read deck: %v", err)
				return err
			}
			deck, err := diagram.Parse(data)
			if err != nil {
				printError("invalid deck: %v", err)
				return err
			}
			prog.done(fmt.Sprintf("Parsed %s", args[0]))

			canvas := deck.Meta.Canvas()
			printSuccess("%s is a valid deck", args[0])
			printDetail("canvas: %d x %d EMU", canvas.Width, canvas.Height)
			for _, slide := range deck.Slides {
				printDetail("slide %s: %d components", slide.ID, len(slide.Components))
				for _, comp := range slide.Components {
					if !knownKind(comp.Kind) {
						printWarning("slide %s has unknown component kind %q (will be skipped)", slide.ID, comp.Kind)
					}
				}
				for _, comp := range slide.Components {
					if comp.Kind != diagram.KindDiagram || comp.Diagram == nil {
						continue
					}
					for _, conn := range danglingConnectors(comp.Diagram) {
						printWarning("slide %s: connector %s -> %s references a missing node",
							slide.ID, conn.From, conn.To)
					}
				}
			}
			return nil
		},
	}
}

func knownKind(kind string) bool {
	switch kind {
	case diagram.KindSlideTitle, diagram.KindPlainBox, diagram.KindDiagram, diagram.KindDecomposeTree:
		return true
	}
	return false
}

// danglingConnectors returns connectors whose endpoints are not in the
// node list.
func danglingConnectors(spec *diagram.GraphSpec) []diagram.Connector {
	known := make(map[string]bool, len(spec.Nodes))
	for _, n := range spec.Nodes {
		known[n.ID] = true
	}
	var out []diagram.Connector
	for _, c := range spec.Connectors {
		if !known[c.From] || !known[c.To] {
			out = append(out, c)
		}
	}
	return out
}
