// Package apnconfig loads a net's static topology — sorts, operations,
// variables, places, transitions, and arcs — from a YAML document, in the
// teacher's declarative-config style (see internal/config in the example
// pack this package is grounded on). It never loads or saves marking state
// captured from a running net: a Document describes a net before any
// transition has fired, holding only the initial tokens its places declare.
package apnconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gopetri/apn/adt"
	"github.com/gopetri/apn/petri"
)

// Document is the top-level YAML shape accepted by Load.
type Document struct {
	Name  string     `yaml:"name"`
	Sorts []SortSpec `yaml:"sorts"`
	Net   NetSpec    `yaml:"net"`
}

// SortSpec declares one sort, its operations, and its free variables.
type SortSpec struct {
	Name       string          `yaml:"name"`
	Operations []OperationSpec `yaml:"operations"`
	Variables  []string        `yaml:"variables"`
	Rules      []RuleSpec      `yaml:"rules"`
}

// OperationSpec declares one operation on a sort.
type OperationSpec struct {
	Name      string   `yaml:"name"`
	Signature []string `yaml:"signature"`
	Result    string   `yaml:"result"`
}

// RuleSpec declares one conditional rewrite rule in term text.
type RuleSpec struct {
	LHS        string      `yaml:"lhs"`
	RHS        string      `yaml:"rhs"`
	Conditions [][2]string `yaml:"conditions"`
}

// NetSpec declares the net's places, transitions, and arcs.
type NetSpec struct {
	Places      []PlaceSpec      `yaml:"places"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

// PlaceSpec declares one place.
type PlaceSpec struct {
	Name    string   `yaml:"name"`
	Sort    string   `yaml:"sort"`
	Initial []string `yaml:"initial"`
}

// TransitionSpec declares one transition and its arcs.
type TransitionSpec struct {
	Name     string    `yaml:"name"`
	Inbound  []ArcSpec `yaml:"inbound"`
	Outbound []ArcSpec `yaml:"outbound"`
}

// ArcSpec connects a named place, carrying zero or more term-text labels.
type ArcSpec struct {
	Place string   `yaml:"place"`
	Label []string `yaml:"label"`
}

// Loaded is the result of loading a Document: the constructed net plus the
// sort registry, for callers that want to keep building on the same
// algebra (e.g. declaring additional rules at runtime).
type Loaded struct {
	Net   *petri.Net
	Sorts map[string]*adt.Sort
}

// Load parses data as a YAML Document and builds the net it describes.
func Load(data []byte) (*Loaded, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("apnconfig: parsing document: %w", err)
	}
	return build(&doc)
}

func build(doc *Document) (*Loaded, error) {
	sorts := map[string]*adt.Sort{}
	for _, ss := range doc.Sorts {
		if ss.Name == "" {
			return nil, fmt.Errorf("apnconfig: sort with empty name")
		}
		sorts[ss.Name] = adt.NewSort(ss.Name)
	}

	for _, ss := range doc.Sorts {
		sort := sorts[ss.Name]
		for _, v := range ss.Variables {
			if _, err := sort.DeclareVariable(v); err != nil {
				return nil, fmt.Errorf("apnconfig: sort %s: %w", ss.Name, err)
			}
		}
	}

	for _, ss := range doc.Sorts {
		sort := sorts[ss.Name]
		for _, os := range ss.Operations {
			signature := make([]*adt.Sort, len(os.Signature))
			for i, name := range os.Signature {
				s, err := resolveSortName(name, sorts)
				if err != nil {
					return nil, fmt.Errorf("apnconfig: operation %s.%s: %w", ss.Name, os.Name, err)
				}
				signature[i] = s
			}
			var result []*adt.Sort
			if os.Result != "" {
				s, err := resolveSortName(os.Result, sorts)
				if err != nil {
					return nil, fmt.Errorf("apnconfig: operation %s.%s: %w", ss.Name, os.Name, err)
				}
				result = []*adt.Sort{s}
			}
			if _, err := sort.DeclareOperation(os.Name, signature, result...); err != nil {
				return nil, fmt.Errorf("apnconfig: sort %s: %w", ss.Name, err)
			}
		}
	}

	var rules []*adt.RewriteRule
	for _, ss := range doc.Sorts {
		sort := sorts[ss.Name]
		for _, rs := range ss.Rules {
			lhs, err := ParseTerm(rs.LHS, sorts, sort)
			if err != nil {
				return nil, fmt.Errorf("apnconfig: sort %s rule lhs: %w", ss.Name, err)
			}
			rhs, err := ParseTerm(rs.RHS, sorts, sort)
			if err != nil {
				return nil, fmt.Errorf("apnconfig: sort %s rule rhs: %w", ss.Name, err)
			}
			var conds [][2]*adt.Term
			for _, c := range rs.Conditions {
				left, err := ParseTerm(c[0], sorts, sort)
				if err != nil {
					return nil, fmt.Errorf("apnconfig: sort %s rule condition: %w", ss.Name, err)
				}
				right, err := ParseTerm(c[1], sorts, sort)
				if err != nil {
					return nil, fmt.Errorf("apnconfig: sort %s rule condition: %w", ss.Name, err)
				}
				conds = append(conds, [2]*adt.Term{left, right})
			}
			rule, err := sort.DeclareRewriteRule(lhs, rhs, conds...)
			if err != nil {
				return nil, fmt.Errorf("apnconfig: sort %s: %w", ss.Name, err)
			}
			rules = append(rules, rule)
		}
	}

	net := petri.NewNet(doc.Name)
	for _, r := range rules {
		net.AddRule(r)
	}

	places := map[string]*petri.Place{}
	for _, ps := range doc.Net.Places {
		sort, err := resolveSortName(ps.Sort, sorts)
		if err != nil {
			return nil, fmt.Errorf("apnconfig: place %s: %w", ps.Name, err)
		}
		var tokens []*adt.Term
		for _, text := range ps.Initial {
			t, err := ParseTerm(text, sorts, sort)
			if err != nil {
				return nil, fmt.Errorf("apnconfig: place %s initial token: %w", ps.Name, err)
			}
			tokens = append(tokens, t)
		}
		p, err := net.AddPlace(ps.Name, sort, tokens...)
		if err != nil {
			return nil, fmt.Errorf("apnconfig: %w", err)
		}
		places[ps.Name] = p
	}

	for _, ts := range doc.Net.Transitions {
		t, err := net.AddTransition(ts.Name)
		if err != nil {
			return nil, fmt.Errorf("apnconfig: %w", err)
		}
		for _, arc := range ts.Inbound {
			place, ok := places[arc.Place]
			if !ok {
				return nil, fmt.Errorf("apnconfig: transition %s: unknown inbound place %s", ts.Name, arc.Place)
			}
			labels, err := parseLabels(arc.Label, sorts, place.Sort())
			if err != nil {
				return nil, fmt.Errorf("apnconfig: transition %s: %w", ts.Name, err)
			}
			if _, err := net.AddArc(place, t, labels...); err != nil {
				return nil, fmt.Errorf("apnconfig: %w", err)
			}
		}
		for _, arc := range ts.Outbound {
			place, ok := places[arc.Place]
			if !ok {
				return nil, fmt.Errorf("apnconfig: transition %s: unknown outbound place %s", ts.Name, arc.Place)
			}
			labels, err := parseLabels(arc.Label, sorts, place.Sort())
			if err != nil {
				return nil, fmt.Errorf("apnconfig: transition %s: %w", ts.Name, err)
			}
			if _, err := net.AddArc(t, place, labels...); err != nil {
				return nil, fmt.Errorf("apnconfig: %w", err)
			}
		}
	}

	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("apnconfig: %w", err)
	}

	return &Loaded{Net: net, Sorts: sorts}, nil
}

func parseLabels(texts []string, sorts map[string]*adt.Sort, defaultVarSort *adt.Sort) ([]*adt.Term, error) {
	terms := make([]*adt.Term, len(texts))
	for i, text := range texts {
		t, err := ParseTerm(text, sorts, defaultVarSort)
		if err != nil {
			return nil, err
		}
		terms[i] = t
	}
	return terms, nil
}

func resolveSortName(name string, sorts map[string]*adt.Sort) (*adt.Sort, error) {
	if name == "anysort" {
		return adt.GenericSort(), nil
	}
	s, ok := sorts[name]
	if !ok {
		return nil, fmt.Errorf("unknown sort %q", name)
	}
	return s, nil
}
