package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Document is an algorithm input as written by users.
type Document struct {
	Algorithm   string    `json:"algorithm,omitempty" yaml:"algorithm,omitempty" mapstructure:"algorithm"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Speed       string    `json:"speed,omitempty" yaml:"speed,omitempty" mapstructure:"speed"`
	Array       []float64 `json:"array,omitempty" yaml:"array,omitempty" mapstructure:"array"`
	Target      float64   `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
	Start       string    `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	Goal        string    `json:"goal,omitempty" yaml:"goal,omitempty" mapstructure:"goal"`
	Heuristic   string    `json:"heuristic,omitempty" yaml:"heuristic,omitempty" mapstructure:"heuristic"`
	Directed    bool      `json:"directed,omitempty" yaml:"directed,omitempty" mapstructure:"directed"`
	Nodes       []NodeDoc `json:"nodes,omitempty" yaml:"nodes,omitempty" mapstructure:"nodes"`
	Edges       []EdgeDoc `json:"edges,omitempty" yaml:"edges,omitempty" mapstructure:"edges"`
}

// NodeDoc is a node entry. A bare string is accepted as {id: <string>}.
type NodeDoc struct {
	ID    string   `json:"id" yaml:"id" mapstructure:"id"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	X     *float64 `json:"x,omitempty" yaml:"x,omitempty" mapstructure:"x"`
	Y     *float64 `json:"y,omitempty" yaml:"y,omitempty" mapstructure:"y"`
}

// EdgeDoc is an edge entry with every accepted endpoint alias.
type EdgeDoc struct {
	U        string   `json:"u,omitempty" yaml:"u,omitempty" mapstructure:"u"`
	V        string   `json:"v,omitempty" yaml:"v,omitempty" mapstructure:"v"`
	From     string   `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	To       string   `json:"to,omitempty" yaml:"to,omitempty" mapstructure:"to"`
	Source   string   `json:"source,omitempty" yaml:"source,omitempty" mapstructure:"source"`
	Target   string   `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty" mapstructure:"weight"`
	Directed *bool    `json:"directed,omitempty" yaml:"directed,omitempty" mapstructure:"directed"`
}

// Parse decodes a YAML or JSON document.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return Decode(raw)
}

// ParseFile reads and decodes a document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode converts generic data (decoded YAML, JSON or frontmatter) into a Document.
func Decode(raw map[string]any) (*Document, error) {
	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonNumberHook,
			shorthandHook,
		),
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// jsonNumberHook turns json.Number into float64 or string depending on the target.
func jsonNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	if to.Kind() == reflect.String {
		return n.String(), nil
	}
	return n.Float64()
}

var (
	nodeDocType = reflect.TypeOf(NodeDoc{})
	edgeDocType = reflect.TypeOf(EdgeDoc{})
)

// shorthandHook expands "A" into a NodeDoc and [u, v, w] into an EdgeDoc.
func shorthandHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case nodeDocType:
		switch v := data.(type) {
		case string:
			return map[string]any{"id": v}, nil
		case int, int64, float64, json.Number:
			return map[string]any{"id": fmt.Sprint(v)}, nil
		}
	case edgeDocType:
		list, ok := data.([]any)
		if !ok {
			return data, nil
		}
		if len(list) < 2 || len(list) > 3 {
			return nil, fmt.Errorf("edge list must be [u, v] or [u, v, weight], got %d items", len(list))
		}
		m := map[string]any{"u": fmt.Sprint(list[0]), "v": fmt.Sprint(list[1])}
		if len(list) == 3 {
			m["weight"] = list[2]
		}
		return m, nil
	}
	return data, nil
}

// Input validates the document and normalizes it into a generator input.
// Edges that reference unknown nodes are kept; generators skip them with a warning.
func (d *Document) Input() (domain.Input, error) {
	var errs []*FieldError
	in := domain.Input{
		Array:     append([]float64(nil), d.Array...),
		Target:    d.Target,
		Start:     d.Start,
		Goal:      d.Goal,
		Heuristic: d.Heuristic,
		Graph:     domain.Graph{Nodes: []domain.Node{}, Edges: []domain.Edge{}},
	}
	for i, v := range d.Array {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, &FieldError{Section: SectionArray, Index: i, Reason: "must be a finite number", Value: v})
		}
	}

	seen := make(map[string]bool)
	for i, n := range d.Nodes {
		switch {
		case n.ID == "":
			errs = append(errs, &FieldError{Section: SectionNodes, Index: i, Field: "id", Reason: "required"})
			continue
		case seen[n.ID]:
			errs = append(errs, &FieldError{Section: SectionNodes, Index: i, Field: "id", Reason: "duplicate node id", Value: n.ID})
			continue
		}
		seen[n.ID] = true
		node := domain.Node{ID: n.ID, Label: n.Label}
		if node.Label == "" {
			node.Label = n.ID
		}
		if n.X != nil {
			node.X = *n.X
		}
		if n.Y != nil {
			node.Y = *n.Y
		}
		in.Graph.Nodes = append(in.Graph.Nodes, node)
	}

	inferred := len(d.Nodes) == 0
	for i, e := range d.Edges {
		u, fe := endpoint(i, "u", e.U, e.From, e.Source)
		if fe != nil {
			errs = append(errs, fe)
		}
		v, fe := endpoint(i, "v", e.V, e.To, e.Target)
		if fe != nil {
			errs = append(errs, fe)
		}
		if u == "" || v == "" {
			continue
		}
		edge := domain.Edge{U: u, V: v, Weight: 1, Directed: d.Directed}
		if e.Weight != nil {
			edge.Weight = *e.Weight
		}
		if e.Directed != nil {
			edge.Directed = *e.Directed
		}
		in.Graph.Edges = append(in.Graph.Edges, edge)
		if inferred {
			for _, id := range []string{u, v} {
				if !seen[id] {
					seen[id] = true
					in.Graph.Nodes = append(in.Graph.Nodes, domain.Node{ID: id, Label: id})
				}
			}
		}
	}

	if len(errs) > 0 {
		return domain.Input{}, &InputError{Fields: errs}
	}
	if needsLayout(d.Nodes) {
		Layout(in.Graph.Nodes)
	}
	return in, nil
}

// endpoint picks the single endpoint among its aliases.
func endpoint(i int, name string, aliases ...string) (string, *FieldError) {
	var got string
	for _, a := range aliases {
		if a == "" {
			continue
		}
		if got != "" && got != a {
			return "", edgeError(i, name, "conflicting aliases", got+" / "+a)
		}
		got = a
	}
	if got == "" {
		return "", edgeError(i, name, "required", nil)
	}
	return got, nil
}

func needsLayout(nodes []NodeDoc) bool {
	for _, n := range nodes {
		if n.X != nil || n.Y != nil {
			return false
		}
	}
	return true
}

// FromInput builds a document from an input, writing edges with u/v keys.
func FromInput(algorithm string, in domain.Input) *Document {
	d := &Document{
		Algorithm: algorithm,
		Array:     append([]float64(nil), in.Array...),
		Target:    in.Target,
		Start:     in.Start,
		Goal:      in.Goal,
		Heuristic: in.Heuristic,
	}
	for _, n := range in.Graph.Nodes {
		x, y := n.X, n.Y
		d.Nodes = append(d.Nodes, NodeDoc{ID: n.ID, Label: n.Label, X: &x, Y: &y})
	}
	for _, e := range in.Graph.Edges {
		w, directed := e.Weight, e.Directed
		d.Edges = append(d.Edges, EdgeDoc{U: e.U, V: e.V, Weight: &w, Directed: &directed})
	}
	return d
}

// YAML encodes the document.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
