package wfc

import "testing"

func mustPattern(t *testing.T, n int, colors []Color) Pattern {
	t.Helper()
	p, err := NewPattern(n, colors)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	return p
}

func TestPatternGetRowMajor(t *testing.T) {
	p := mustPattern(t, 2, []Color{
		{R: 1}, {R: 2},
		{R: 3}, {R: 4},
	})
	if p.Get(0, 0) != (Color{R: 1}) || p.Get(1, 0) != (Color{R: 2}) {
		t.Fatalf("top row mismatch: %v %v", p.Get(0, 0), p.Get(1, 0))
	}
	if p.Get(0, 1) != (Color{R: 3}) || p.Get(1, 1) != (Color{R: 4}) {
		t.Fatalf("bottom row mismatch: %v %v", p.Get(0, 1), p.Get(1, 1))
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	p := mustPattern(t, 3, []Color{
		{R: 1}, {R: 2}, {R: 3},
		{R: 4}, {R: 5}, {R: 6},
		{R: 7}, {R: 8}, {R: 9},
	})
	got := p
	for i := 0; i < 4; i++ {
		got = got.Rotate()
	}
	if got != p {
		t.Fatalf("rotate^4 != identity: got %v want %v", got, p)
	}
}

func TestReflectTwiceIsIdentity(t *testing.T) {
	p := mustPattern(t, 2, []Color{
		{R: 1}, {R: 2},
		{R: 3}, {R: 4},
	})
	if got := p.Reflect().Reflect(); got != p {
		t.Fatalf("reflect^2 != identity: got %v want %v", got, p)
	}
}

func TestRotateThenReflectIsAReflection(t *testing.T) {
	// rotate-then-reflect must itself be one of the 8 members of the
	// pattern's own symmetry orbit, and, being a reflection, applying it
	// twice must give back the original pattern.
	p := mustPattern(t, 2, []Color{
		{R: 1}, {R: 2},
		{R: 3}, {R: 4},
	})
	candidate := p.Rotate().Reflect()
	if twice := candidate.Rotate().Reflect(); twice != p {
		t.Fatalf("rotate().reflect() applied twice != identity: got %v want %v", twice, p)
	}
	orbit := p.Symmetries()
	found := false
	for _, variant := range orbit {
		if variant == candidate {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("rotate().reflect() not in the pattern's own symmetry orbit")
	}
}

func TestSymmetriesCountBounds(t *testing.T) {
	p := mustPattern(t, 2, []Color{
		{R: 1}, {R: 2},
		{R: 3}, {R: 4},
	})
	orbit := p.Symmetries()
	if len(orbit) < 1 || len(orbit) > 8 {
		t.Fatalf("orbit size out of bounds: %d", len(orbit))
	}

	uniform := mustPattern(t, 2, []Color{
		{R: 9}, {R: 9},
		{R: 9}, {R: 9},
	})
	if got := len(uniform.Symmetries()); got != 1 {
		t.Fatalf("uniform pattern should have a single-element orbit, got %d", got)
	}
}
