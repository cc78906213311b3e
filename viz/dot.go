package viz

import (
	"fmt"
	"strings"
)

// RenderDOT renders g as a Graphviz DOT digraph: places as ellipses
// annotated with their current marking, transitions as boxes, arcs
// labeled with their (possibly multi-term) label text. This replaces the
// original's graphviz-backed visualise(), producing the DOT source
// directly instead of shelling out to a renderer.
func RenderDOT(g *Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", dotID(g.Name))
	b.WriteString("  rankdir=LR;\n")

	for _, p := range g.Places {
		label := p.Name
		if len(p.Marking) > 0 {
			label += "\\n" + strings.Join(p.Marking, ", ")
		}
		fmt.Fprintf(&b, "  %s [shape=ellipse, label=%s];\n", dotID(p.Name), quote(label))
	}
	for _, t := range g.Transitions {
		fmt.Fprintf(&b, "  %s [shape=box, label=%s];\n", dotID(t.Name), quote(t.Name))
	}
	for _, a := range g.Arcs {
		if a.Label == "" {
			fmt.Fprintf(&b, "  %s -> %s;\n", dotID(a.From), dotID(a.To))
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s [label=%s];\n", dotID(a.From), dotID(a.To), quote(strings.ReplaceAll(a.Label, "\n", "\\n")))
	}

	b.WriteString("}\n")
	return b.String()
}

// dotID produces a DOT-safe node identifier by quoting it; DOT identifiers
// accept any string in double quotes.
func dotID(name string) string {
	return quote(name)
}
