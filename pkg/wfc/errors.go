package wfc

import "errors"

// Degenerate-input failures are rejected at construction time: the
// solver must never enter a state with zero patterns.
var (
	ErrEmptySample        = errors.New("wfc: sample has no pixels")
	ErrDegenerateOutput   = errors.New("wfc: output width and height must both be at least 1")
	ErrInvalidPatternSize = errors.New("wfc: pattern size must be 2, 3, or 4")
	ErrNoPatterns         = errors.New("wfc: extraction produced no patterns (pattern size may exceed sample dimensions)")
)
