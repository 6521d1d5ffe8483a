package wfc

// Config records the options that govern extraction and solving. The
// zero value is not valid on its own; use DefaultConfig as a starting
// point.
type Config struct {
	// PatternSize is the side N of extracted windows, in {2, 3, 4}.
	PatternSize int

	// OutputWidth and OutputHeight are the wave's dimensions, both >= 1.
	OutputWidth, OutputHeight int

	// PeriodicInput wraps the sample when extracting windows, so every
	// (x, y) in [0, width) x [0, height) yields a pattern.
	PeriodicInput bool

	// PeriodicOutput wraps the wave at output edges during propagation.
	PeriodicOutput bool

	// Symmetry emits the full dihedral-4 orbit of each extracted
	// pattern (duplicates coalesced) instead of just the identity.
	Symmetry bool

	// Ground constrains the top row of the wave to patterns that
	// touched the sample's top edge, and the bottom row likewise.
	Ground bool

	// Sides is the Ground constraint's analogue for the left and right
	// columns.
	Sides bool
}

// DefaultConfig returns a reasonable starting configuration: a 3x3
// pattern window, periodic input, full symmetry, and a 32x32 output.
func DefaultConfig() Config {
	return Config{
		PatternSize:    3,
		OutputWidth:    32,
		OutputHeight:   32,
		PeriodicInput:  true,
		PeriodicOutput: false,
		Symmetry:       true,
		Ground:         false,
		Sides:          false,
	}
}

// Validate rejects degenerate configuration: output dimensions of zero,
// and a pattern size outside {2, 3, 4}. Whether extraction itself
// yields zero patterns is checked once the sample is known, in Extract.
func (c Config) Validate() error {
	if c.PatternSize < 2 || c.PatternSize > 4 {
		return ErrInvalidPatternSize
	}
	if c.OutputWidth <= 0 || c.OutputHeight <= 0 {
		return ErrDegenerateOutput
	}
	return nil
}
