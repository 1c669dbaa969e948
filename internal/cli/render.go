package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/algoscope/internal/presentation/tui"
	"github.com/aretw0/algoscope/pkg/domain"
)

// Renderer draws one published step.
type Renderer interface {
	Render(step domain.Step) error
}

// JSONRenderer writes one JSON object per step (NDJSON).
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Render(step domain.Step) error {
	return r.enc.Encode(step)
}

// TextRenderer writes a human readable frame per step.
type TextRenderer struct {
	w       io.Writer
	profile termenv.Profile
	bars    *tui.Bars
}

func NewTextRenderer(w io.Writer, p termenv.Profile) *TextRenderer {
	return &TextRenderer{w: w, profile: p, bars: tui.NewBars(p)}
}

func (r *TextRenderer) Render(step domain.Step) error {
	var sb strings.Builder

	head := fmt.Sprintf("[%3d] %-9s", step.Seq, step.Kind)
	fmt.Fprintf(&sb, "%s %s\n", termenv.String(head).Bold(), step.Description)
	for _, w := range step.Warnings {
		fmt.Fprintf(&sb, "      %s %s\n", termenv.String("warning:").Foreground(r.profile.Color("#facc15")), w)
	}

	switch {
	case step.Array != nil:
		sb.WriteString(r.bars.Array(step.Array))
	case step.Search != nil:
		sb.WriteString(r.bars.Search(step.Search))
	case step.Graph != nil:
		writeGraph(&sb, step.Graph)
	case step.Matrix != nil:
		writeMatrix(&sb, step.Matrix)
	}

	if step.Terminal {
		color := "#4ade80"
		if step.Outcome != domain.OutcomeCompleted && step.Outcome != domain.OutcomeFound {
			color = "#f87171"
		}
		fmt.Fprintf(&sb, ">>> %s\n", termenv.String(fmt.Sprintf("Finished: %s", step.Outcome)).Foreground(r.profile.Color(color)))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(r.w, sb.String())
	return err
}

func writeGraph(sb *strings.Builder, g *domain.GraphState) {
	list := func(label string, ids []string) {
		if len(ids) > 0 {
			fmt.Fprintf(sb, "      %-10s %s\n", label, strings.Join(ids, " "))
		}
	}
	if g.Active != "" {
		fmt.Fprintf(sb, "      %-10s %s\n", "active", g.Active)
	}
	if g.ActiveEdge != nil {
		fmt.Fprintf(sb, "      %-10s %s\n", "edge", g.ActiveEdge)
	}
	list("visited", g.Visited)
	list("frontier", g.Frontier)
	list("settled", g.Settled)
	list("open", g.Open)
	list("closed", g.Closed)
	list("order", g.Order)
	list("path", g.Path)

	if len(g.Distances) > 0 {
		parts := make([]string, 0, len(g.Distances))
		for _, id := range slices.Sorted(maps.Keys(g.Distances)) {
			parts = append(parts, fmt.Sprintf("%s=%s", id, g.Distances[id]))
		}
		fmt.Fprintf(sb, "      %-10s %s\n", "dist", strings.Join(parts, " "))
	}
	if len(g.TreeEdges) > 0 {
		parts := make([]string, len(g.TreeEdges))
		for i, e := range g.TreeEdges {
			parts[i] = e.String()
		}
		fmt.Fprintf(sb, "      %-10s %s (total %g)\n", "tree", strings.Join(parts, " "), g.TotalWeight)
	}
	if len(g.Colors) > 0 {
		parts := make([]string, 0, len(g.Colors))
		for _, id := range slices.Sorted(maps.Keys(g.Colors)) {
			parts = append(parts, fmt.Sprintf("%s=%d", id, g.Colors[id]))
		}
		fmt.Fprintf(sb, "      %-10s %s\n", "colors", strings.Join(parts, " "))
	}
	for i, c := range g.Components {
		fmt.Fprintf(sb, "      %-10s %s\n", fmt.Sprintf("scc %d", i+1), strings.Join(c, " "))
	}
}

func writeMatrix(sb *strings.Builder, m *domain.MatrixState) {
	sb.WriteString(strings.Repeat(" ", 10))
	for _, id := range m.Nodes {
		fmt.Fprintf(sb, "%6s", id)
	}
	sb.WriteString("\n")
	for i, row := range m.Dist {
		fmt.Fprintf(sb, "      %-4s", m.Nodes[i])
		for j, d := range row {
			cell := d.String()
			if i == m.I && j == m.J {
				cell = "[" + cell + "]"
			}
			fmt.Fprintf(sb, "%6s", cell)
		}
		sb.WriteString("\n")
	}
}
