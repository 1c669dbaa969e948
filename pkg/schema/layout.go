package schema

import (
	"math"

	"github.com/aretw0/algoscope/pkg/domain"
)

// Canvas geometry used when a document gives no positions.
const (
	CanvasCenter = 250.0
	CanvasRadius = 200.0
)

// Layout places nodes evenly on a circle, first node at the top, clockwise.
func Layout(nodes []domain.Node) {
	n := len(nodes)
	for i := range nodes {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		nodes[i].X = math.Round(CanvasCenter + CanvasRadius*math.Cos(angle))
		nodes[i].Y = math.Round(CanvasCenter + CanvasRadius*math.Sin(angle))
	}
}
