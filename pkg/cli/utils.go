package cli

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Elwqnn/wfc/pkg/wfc"
)

// PromptLine displays a prompt and reads a full line of input from the user.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf reads a full line from stdin and treats a single-line "/"
// as a request to browse the working directory with fzf instead of typing a
// path by hand — used for the save-render filename prompt in cli.go. Behavior:
//   - Print the prompt.
//   - Read a full line (including spaces).
//   - If the trimmed line equals "/", launch fzf via SelectFileWithFzf(".").
//   - If fzf returns a non-empty selection, return it.
//   - If fzf is unavailable or selection is cancelled, fall back to a typed
//     prompt (re-using PromptLine to read a full line).
//   - Otherwise return the trimmed line as the input value.
func PromptLineOrFzf(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	input := strings.TrimSpace(line)

	if input == "/" {
		sel, selErr := SelectFileWithFzf(".")
		if selErr == nil && sel != "" {
			fmt.Printf(" [fzf] %s\n", sel)
			return sel, nil
		}
		return PromptLine(prompt)
	}

	return input, nil
}

// LoadSample decodes an image file from disk into a wfc.Sample, dropping
// any alpha channel: the solver only ever sees RGB.
func LoadSample(path string) (*wfc.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]wfc.Color, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pixels = append(pixels, wfc.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return wfc.NewSample(w, h, pixels)
}

// RenderToImage converts a row-major color buffer (as produced by
// Solver.Render) into an image.Image ready for preview or encoding.
func RenderToImage(colors []wfc.Color, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := colors[y*width+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// SaveRender renders colors, stamps it with Watermark using seed and cfg,
// and writes the result to path, choosing the container format from the
// filename extension. Supports .png, .jpg/.jpeg, .gif, and .bmp; anything
// else defaults to PNG.
func SaveRender(path string, colors []wfc.Color, width, height int, seed int64, cfg wfc.Config) error {
	stamped := Watermark(RenderToImage(colors, width, height), seed, cfg)
	return SaveImageFile(path, stamped)
}

// SaveImageFile encodes img to disk, choosing the container format from the
// filename extension. Supports .png, .jpg/.jpeg, .gif, and .bmp; anything
// else defaults to PNG.
func SaveImageFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	case ".gif":
		return gif.Encode(f, img, nil)
	case ".bmp":
		return bmp.Encode(f, img)
	default:
		return png.Encode(f, img)
	}
}

// DescribeSample returns a short info string for a loaded sample.
func DescribeSample(s *wfc.Sample) string {
	if s == nil {
		return "no sample loaded"
	}
	return fmt.Sprintf("Sample: %dx%d", s.Width, s.Height)
}
