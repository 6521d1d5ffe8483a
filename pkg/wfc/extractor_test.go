package wfc

import "testing"

func uniformSample(t *testing.T, w, h int, c Color) *Sample {
	t.Helper()
	pixels := make([]Color, w*h)
	for i := range pixels {
		pixels[i] = c
	}
	s, err := NewSample(w, h, pixels)
	if err != nil {
		t.Fatalf("NewSample: %v", err)
	}
	return s
}

func checkerSample(t *testing.T) *Sample {
	t.Helper()
	black := Color{}
	white := Color{R: 255, G: 255, B: 255}
	pixels := make([]Color, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				pixels[y*4+x] = black
			} else {
				pixels[y*4+x] = white
			}
		}
	}
	s, err := NewSample(4, 4, pixels)
	if err != nil {
		t.Fatalf("NewSample: %v", err)
	}
	return s
}

func TestExtractUniformSampleYieldsOnePattern(t *testing.T) {
	sample := uniformSample(t, 4, 4, Color{})
	cfg := Config{PatternSize: 2, PeriodicInput: true, Symmetry: true, OutputWidth: 1, OutputHeight: 1}

	ext, err := Extract(sample, cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(ext.Patterns) != 1 {
		t.Fatalf("expected exactly 1 pattern, got %d", len(ext.Patterns))
	}
	if ext.Weights[0] != 16 {
		t.Fatalf("expected weight 16 (one per window position), got %v", ext.Weights[0])
	}
}

func TestExtractCheckerboardYieldsTwoEqualWeightPatterns(t *testing.T) {
	sample := checkerSample(t)
	cfg := Config{PatternSize: 2, PeriodicInput: true, Symmetry: true, OutputWidth: 1, OutputHeight: 1}

	ext, err := Extract(sample, cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(ext.Patterns) != 2 {
		t.Fatalf("expected exactly 2 checker phases, got %d", len(ext.Patterns))
	}
	if ext.Weights[0] != ext.Weights[1] {
		t.Fatalf("expected equal weights for both phases, got %v and %v", ext.Weights[0], ext.Weights[1])
	}
}

func TestExtractSinglePixelPeriodicInput(t *testing.T) {
	sample := uniformSample(t, 1, 1, Color{R: 42})
	cfg := Config{PatternSize: 1, PeriodicInput: true, OutputWidth: 1, OutputHeight: 1}
	// pattern_size 1 is outside {2,3,4}; NewPattern will reject it, so
	// Extract must surface that as an error rather than silently
	// degrading.
	_, err := Extract(sample, cfg)
	if err == nil {
		t.Fatalf("expected an error extracting with pattern_size 1")
	}
}

func TestExtractNonPeriodicPatternLargerThanSampleYieldsNoPatterns(t *testing.T) {
	sample := uniformSample(t, 2, 2, Color{})
	cfg := Config{PatternSize: 3, PeriodicInput: false, OutputWidth: 1, OutputHeight: 1}

	_, err := Extract(sample, cfg)
	if err != ErrNoPatterns {
		t.Fatalf("expected ErrNoPatterns, got %v", err)
	}
}

func TestExtractEdgeSetsGround(t *testing.T) {
	// 3x3 sample with a distinct top row so top_set and bottom_set differ.
	top := Color{R: 1}
	rest := Color{R: 2}
	pixels := []Color{
		top, top, top,
		rest, rest, rest,
		rest, rest, rest,
	}
	sample, err := NewSample(3, 3, pixels)
	if err != nil {
		t.Fatalf("NewSample: %v", err)
	}
	cfg := Config{PatternSize: 2, PeriodicInput: false, Symmetry: false, OutputWidth: 1, OutputHeight: 1}

	ext, err := Extract(sample, cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	sawTopOnly := false
	sawBottomOnly := false
	for i := range ext.Patterns {
		if ext.Top[i] && !ext.Bottom[i] {
			sawTopOnly = true
		}
		if ext.Bottom[i] && !ext.Top[i] {
			sawBottomOnly = true
		}
	}
	if !sawTopOnly || !sawBottomOnly {
		t.Fatalf("expected distinct top-only and bottom-only patterns")
	}
}
