package wfc

// DefaultSample returns a built-in 8x8 exemplar depicting a small pipe
// network: a background color, a pipe color, and a junction color where
// pipes cross or turn. It needs no file on disk, so a host can offer a
// working solve before the user has picked their own image.
func DefaultSample() *Sample {
	bg := Color{R: 32, G: 32, B: 48}
	pipe := Color{R: 64, G: 128, B: 192}
	junction := Color{R: 96, G: 192, B: 255}

	pixels := []Color{
		bg, bg, bg, bg, bg, bg, bg, bg,
		bg, junction, pipe, pipe, pipe, junction, bg, bg,
		bg, pipe, bg, bg, bg, pipe, bg, bg,
		bg, pipe, bg, junction, pipe, junction, pipe, bg,
		bg, pipe, bg, pipe, bg, bg, pipe, bg,
		bg, junction, pipe, junction, bg, junction, pipe, bg,
		bg, bg, bg, pipe, bg, pipe, bg, bg,
		bg, bg, bg, junction, pipe, junction, bg, bg,
	}

	sample, err := NewSample(8, 8, pixels)
	if err != nil {
		// pixels is a fixed, correctly-sized literal; this cannot fail.
		panic(err)
	}
	return sample
}
