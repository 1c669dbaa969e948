package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Overlay contains the step state to visualize on the graph.
type Overlay struct {
	Start      string
	Goal       string
	Current    string
	Visited    []string
	Frontier   []string
	ActiveEdge *domain.Edge
	Highlight  []domain.Edge // tree edges or path edges
	Colors     map[string]int
	Distances  map[string]domain.Distance
}

// palette cycles for graph colouring.
var palette = []string{"#ef9a9a", "#90caf9", "#a5d6a7", "#fff59d", "#ce93d8", "#ffcc80"}

// FromStep builds an overlay from a graph step. It returns nil for other families.
func FromStep(in domain.Input, step domain.Step) *Overlay {
	g := step.Graph
	if g == nil {
		return nil
	}
	o := &Overlay{
		Start:      in.Start,
		Goal:       in.Goal,
		Current:    g.Active,
		Frontier:   slices.Concat(g.Frontier, g.Open),
		ActiveEdge: g.ActiveEdge,
		Highlight:  slices.Clone(g.TreeEdges),
		Colors:     g.Colors,
		Distances:  g.Distances,
	}
	if o.Distances == nil {
		o.Distances = g.GScore
	}
	o.Visited = slices.Concat(g.Visited, g.Settled, g.Closed, g.Order)
	for i := 1; i < len(g.Path); i++ {
		o.Highlight = append(o.Highlight, domain.Edge{U: g.Path[i-1], V: g.Path[i]})
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart for the graph.
// Shapes: start ((circle)), goal {{hexagon}}, default [rectangle].
// Directed edges use -->, undirected ones ---; weights label every edge.
func GenerateMermaid(g domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var start, goal string
	if overlay != nil {
		start, goal = overlay.Start, overlay.Goal
	}

	for _, n := range g.Nodes {
		label := n.ID
		if n.Label != "" && n.Label != n.ID {
			label = fmt.Sprintf("%s: %s", n.ID, n.Label)
		}
		if overlay != nil {
			if d, ok := overlay.Distances[n.ID]; ok {
				label = fmt.Sprintf("%s <br/> %s", label, d)
			}
		}
		label = strings.ReplaceAll(label, "\"", "'")

		opener, closer := "[", "]"
		switch n.ID {
		case start:
			opener, closer = "((", "))"
		case goal:
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(n.ID), opener, label, closer)
	}

	known := g.Index()
	links := make([]domain.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := known[e.U]; !ok {
			continue
		}
		if _, ok := known[e.V]; !ok {
			continue
		}
		arrow := fmt.Sprintf("-- \"%g\" ---", e.Weight)
		if e.Directed {
			arrow = fmt.Sprintf("-- \"%g\" -->", e.Weight)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.U), arrow, sanitizeMermaidID(e.V))
		links = append(links, e)
	}

	if overlay != nil {
		writeOverlay(&sb, overlay, links)
	}
	return sb.String()
}

func writeOverlay(sb *strings.Builder, o *Overlay, links []domain.Edge) {
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for contrast regardless of theme.
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef frontier fill:#f3e5f5,stroke:#6a1b9a,stroke-dasharray:4,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	styled := make(map[string]bool)
	class := func(id, name string) {
		safe := sanitizeMermaidID(id)
		if safe == "" || styled[safe] {
			return
		}
		styled[safe] = true
		fmt.Fprintf(sb, "    class %s %s;\n", safe, name)
	}

	// Current wins over frontier, frontier over visited.
	if o.Current != "" {
		class(o.Current, "current")
	}

	if len(o.Colors) > 0 {
		for i, fill := range palette {
			fmt.Fprintf(sb, "    classDef color%d fill:%s,color:#000;\n", i, fill)
		}
		ids := make([]string, 0, len(o.Colors))
		for id := range o.Colors {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			class(id, fmt.Sprintf("color%d", o.Colors[id]%len(palette)))
		}
	}

	for _, id := range o.Frontier {
		class(id, "frontier")
	}
	for _, id := range o.Visited {
		class(id, "visited")
	}

	for i, e := range links {
		switch {
		case o.ActiveEdge != nil && sameEdge(e, *o.ActiveEdge):
			fmt.Fprintf(sb, "    linkStyle %d stroke:#fbc02d,stroke-width:4px;\n", i)
		case slices.ContainsFunc(o.Highlight, func(h domain.Edge) bool { return sameEdge(e, h) }):
			fmt.Fprintf(sb, "    linkStyle %d stroke:#2e7d32,stroke-width:3px;\n", i)
		}
	}
}

// sameEdge matches endpoints, in either order unless e is directed.
func sameEdge(e, other domain.Edge) bool {
	if e.U == other.U && e.V == other.V {
		return true
	}
	return !e.Directed && e.U == other.V && e.V == other.U
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "n" + s
	}
	return s
}
