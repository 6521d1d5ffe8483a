// Package wfc implements the overlapping-model Wave Function Collapse
// constraint solver: pattern extraction from an exemplar Sample, the
// propagator table of adjacency compatibility between patterns, and the
// Solver that drives the observe/collapse/propagate loop over a Wave.
package wfc

// Color is an 8-bit RGB triple. It is a value type and cheap to copy.
type Color struct {
	R, G, B uint8
}

// Sentinel is returned by Solver.GetColor for a cell that has lost every
// candidate pattern (a contradiction).
var Sentinel = Color{R: 128, G: 0, B: 128}

// MeanColor returns the weight-weighted average of colors, truncated
// (not rounded) to 8 bits per channel.
func MeanColor(colors []Color, weights []float64) Color {
	if len(colors) == 0 {
		return Sentinel
	}
	if len(colors) == 1 {
		return colors[0]
	}

	var r, g, b, total float64
	for i, c := range colors {
		w := weights[i]
		r += float64(c.R) * w
		g += float64(c.G) * w
		b += float64(c.B) * w
		total += w
	}
	if total <= 0 {
		return Sentinel
	}
	return Color{
		R: uint8(r / total),
		G: uint8(g / total),
		B: uint8(b / total),
	}
}
