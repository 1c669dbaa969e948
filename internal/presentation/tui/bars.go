package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/algoscope/pkg/domain"
)

// maxBar is the width of the longest bar.
const maxBar = 40

// Highlight colors.
const (
	colorCompared = "#facc15"
	colorSwapped  = "#f87171"
	colorSorted   = "#4ade80"
	colorPivot    = "#c084fc"
	colorPlain    = "#94a3b8"
	colorRange    = "#60a5fa"
)

// Bars renders array values as horizontal bars, one per line.
// Bars are scaled against the largest absolute value.
type Bars struct {
	Profile termenv.Profile
	Width   int
}

// NewBars returns a renderer for the given color profile.
func NewBars(p termenv.Profile) *Bars {
	return &Bars{Profile: p, Width: maxBar}
}

// Array renders a sorting step.
func (b *Bars) Array(a *domain.ArrayState) string {
	if a == nil {
		return ""
	}
	var sb strings.Builder
	if a.Phase != "" {
		fmt.Fprintf(&sb, "phase %s\n", a.Phase)
	}
	scale := b.scale(a.Values)
	for i, v := range a.Values {
		color, mark := colorPlain, " "
		switch {
		case slices.Contains(a.Swapped, i):
			color, mark = colorSwapped, "*"
		case slices.Contains(a.Compared, i):
			color, mark = colorCompared, "?"
		case a.Pivot == i && a.Pivot >= 0:
			color, mark = colorPivot, "p"
		case slices.Contains(a.Sorted, i):
			color, mark = colorSorted, "="
		}
		b.line(&sb, i, v, scale, color, mark)
	}
	for i, bucket := range a.Buckets {
		fmt.Fprintf(&sb, "bucket %d: %v\n", i, bucket)
	}
	fmt.Fprintf(&sb, "comparisons=%d swaps=%d\n", a.Counters.Comparisons, a.Counters.Swaps)
	return sb.String()
}

// Search renders a searching step; the low..high window is highlighted.
func (b *Bars) Search(s *domain.SearchState) string {
	if s == nil {
		return ""
	}
	var sb strings.Builder
	scale := b.scale(s.Values)
	for i, v := range s.Values {
		color, mark := colorPlain, " "
		switch {
		case i == s.FoundIndex:
			color, mark = colorSorted, "="
		case i == s.Mid || i == s.Current:
			color, mark = colorCompared, "?"
		case s.Low >= 0 && i >= s.Low && i <= s.High:
			color, mark = colorRange, " "
		}
		b.line(&sb, i, v, scale, color, mark)
	}
	fmt.Fprintf(&sb, "target=%g\n", s.Target)
	return sb.String()
}

func (b *Bars) scale(values []float64) float64 {
	top := 0.0
	for _, v := range values {
		top = max(top, math.Abs(v))
	}
	if top == 0 {
		return 0
	}
	return float64(b.Width) / top
}

func (b *Bars) line(sb *strings.Builder, i int, v, scale float64, color, mark string) {
	n := int(math.Round(math.Abs(v) * scale))
	if v != 0 {
		n = max(n, 1)
	}
	bar := termenv.String(strings.Repeat("█", n)).Foreground(b.Profile.Color(color))
	fmt.Fprintf(sb, "%3d %s %8g %s\n", i, mark, v, bar)
}
