// Package viz adapts a petri.Net into a renderable graph description,
// using the canonical term string rendering for place markings and arc
// labels, and offering a DOT renderer plus yaml.v3-based marshaling for
// callers that want to snapshot a payload without depending on a specific
// graph-drawing library.
package viz

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gopetri/apn/adt"
	"github.com/gopetri/apn/petri"
)

// PlaceNode describes one place for rendering.
type PlaceNode struct {
	Name    string   `yaml:"name"`
	Sort    string   `yaml:"sort"`
	Marking []string `yaml:"marking"`
}

// TransitionNode describes one transition for rendering.
type TransitionNode struct {
	Name string `yaml:"name"`
}

// ArcEdge describes one directed arc for rendering.
type ArcEdge struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Label string `yaml:"label"`
}

// Graph is a renderable snapshot of a net's current structure and marking.
type Graph struct {
	Name        string           `yaml:"name"`
	Places      []PlaceNode      `yaml:"places"`
	Transitions []TransitionNode `yaml:"transitions"`
	Arcs        []ArcEdge        `yaml:"arcs"`
}

// BuildGraph snapshots net into a Graph.
func BuildGraph(net *petri.Net) *Graph {
	g := &Graph{Name: net.Name()}

	for _, p := range net.Places() {
		marking := p.Marking()
		strs := make([]string, len(marking))
		for i, tok := range marking {
			strs[i] = tok.String()
		}
		g.Places = append(g.Places, PlaceNode{Name: p.Name(), Sort: p.Sort().Name(), Marking: strs})
	}

	for _, t := range net.Transitions() {
		g.Transitions = append(g.Transitions, TransitionNode{Name: t.Name()})
		for _, arc := range t.InboundArcs() {
			g.Arcs = append(g.Arcs, ArcEdge{From: arc.Place.Name(), To: t.Name(), Label: joinLabel(arc.Label)})
		}
		for _, arc := range t.OutboundArcs() {
			g.Arcs = append(g.Arcs, ArcEdge{From: t.Name(), To: arc.Place.Name(), Label: joinLabel(arc.Label)})
		}
	}

	return g
}

// joinLabel renders an arc's label terms as a newline-joined string, the
// form the original's visualise() used for edge labels.
func joinLabel(label []*adt.Term) string {
	strs := make([]string, len(label))
	for i, t := range label {
		strs[i] = t.String()
	}
	return strings.Join(strs, "\n")
}

// MarshalYAML renders g as a YAML document.
func (g *Graph) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(g)
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

