package wfc

import "sort"

// Extraction is the result of scanning a Sample for distinct patterns:
// the canonical pattern list (its array order becomes the pattern index
// used everywhere else), their integer frequencies as float64 weights,
// and the four edge-membership sets, indexed in parallel with Patterns.
type Extraction struct {
	Patterns []Pattern
	Weights  []float64
	Top      []bool
	Bottom   []bool
	Left     []bool
	Right    []bool
}

// Extract enumerates and deduplicates every N×N window of sample per
// cfg. Every symmetry variant of an edge-touching window is filed under
// that window's edge set, even a rotated variant that no longer
// visually touches that edge.
func Extract(sample *Sample, cfg Config) (Extraction, error) {
	n := cfg.PatternSize

	xMax := saturatingSub(sample.Width, n-1)
	yMax := saturatingSub(sample.Height, n-1)
	if cfg.PeriodicInput {
		xMax = sample.Width
		yMax = sample.Height
	}

	counts := make(map[Pattern]float64)
	topSet := make(map[Pattern]struct{})
	bottomSet := make(map[Pattern]struct{})
	leftSet := make(map[Pattern]struct{})
	rightSet := make(map[Pattern]struct{})

	pixels := make([]Color, n*n)
	for y := 0; y < yMax; y++ {
		for x := 0; x < xMax; x++ {
			for dy := 0; dy < n; dy++ {
				for dx := 0; dx < n; dx++ {
					sx := (x + dx) % sample.Width
					sy := (y + dy) % sample.Height
					pixels[dy*n+dx] = sample.Get(sx, sy)
				}
			}
			pattern, err := NewPattern(n, pixels)
			if err != nil {
				return Extraction{}, err
			}

			variants := patternVariants(pattern, cfg)
			for _, variant := range variants {
				counts[variant]++
				if y == 0 {
					topSet[variant] = struct{}{}
				}
				if y+n >= sample.Height {
					bottomSet[variant] = struct{}{}
				}
				if x == 0 {
					leftSet[variant] = struct{}{}
				}
				if x+n >= sample.Width {
					rightSet[variant] = struct{}{}
				}
			}
		}
	}

	if len(counts) == 0 {
		return Extraction{}, ErrNoPatterns
	}

	ext := Extraction{
		Patterns: make([]Pattern, 0, len(counts)),
		Weights:  make([]float64, 0, len(counts)),
	}
	for pattern := range counts {
		ext.Patterns = append(ext.Patterns, pattern)
	}
	// Map iteration order is randomized per map instance, so without this
	// sort two calls to Extract (or New) on the same sample/config would
	// assign different integer indices to the same pattern, and the
	// weighted pick in Solver.collapse — which walks patterns in index
	// order — would diverge under an identical seed. Sorting by a
	// canonical key makes pattern index assignment a pure function of the
	// pattern set, independent of map iteration.
	sort.Slice(ext.Patterns, func(i, j int) bool {
		return patternLess(ext.Patterns[i], ext.Patterns[j])
	})
	for _, pattern := range ext.Patterns {
		ext.Weights = append(ext.Weights, counts[pattern])
	}

	ext.Top = membership(ext.Patterns, topSet)
	ext.Bottom = membership(ext.Patterns, bottomSet)
	ext.Left = membership(ext.Patterns, leftSet)
	ext.Right = membership(ext.Patterns, rightSet)

	return ext, nil
}

// patternVariants returns the symmetry variants a base window
// contributes: the full orbit when symmetry is on and neither ground
// nor sides constrains orientation; just {identity, horizontal
// reflection} when symmetry is on but orientation must be preserved for
// an edge constraint; otherwise just {identity}.
func patternVariants(p Pattern, cfg Config) []Pattern {
	if !cfg.Symmetry {
		return []Pattern{p}
	}
	if cfg.Ground || cfg.Sides {
		return []Pattern{p, p.Reflect()}
	}
	return p.Symmetries()
}

// patternLess orders patterns by N, then by pixel bytes in row-major
// order, giving Extract a canonical, map-iteration-independent pattern
// order.
func patternLess(a, b Pattern) bool {
	if a.N != b.N {
		return a.N < b.N
	}
	for i := 0; i < a.N*a.N; i++ {
		pa, pb := a.Pixels[i], b.Pixels[i]
		if pa.R != pb.R {
			return pa.R < pb.R
		}
		if pa.G != pb.G {
			return pa.G < pb.G
		}
		if pa.B != pb.B {
			return pa.B < pb.B
		}
	}
	return false
}

func membership(patterns []Pattern, set map[Pattern]struct{}) []bool {
	out := make([]bool, len(patterns))
	for i, p := range patterns {
		_, out[i] = set[p]
	}
	return out
}

// saturatingSub returns max(a-b, 0), matching Rust's usize saturating_sub
// used when clamping the non-periodic extraction window range.
func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
