package cli

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Elwqnn/wfc/pkg/wfc"
)

// Watermark stamps a one-line caption identifying the seed and config that
// produced a render into the bottom-left corner of img, so a saved PNG
// stays reproducible even once separated from the REPL session that made
// it. It returns a new image; img is left untouched.
func Watermark(img *image.NRGBA, seed int64, cfg wfc.Config) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	caption := fmt.Sprintf("seed=%d n=%d %dx%d", seed, cfg.PatternSize, cfg.OutputWidth, cfg.OutputHeight)

	face := basicfont.Face7x13
	baseline := out.Bounds().Dy() - 3
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(2), Y: fixed.I(baseline)},
	}
	d.DrawString(caption)
	return out
}
