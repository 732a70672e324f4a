package imaging

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult describes one pixel of a buffer.
//
// Gray is the sample value for grayscale buffers and the BT.601 luma for RGB
// buffers, i.e. the value a grayscale-only operation would see after
// Grayscale.
type ColorResult struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Hex  string   `json:"hex"` // "#RRGGBB"
	RGB  RGBColor `json:"rgb"`
	HSL  HSLColor `json:"hsl"`
	Gray uint8    `json:"gray"`
}

// SampleColor reads the pixel at (x, y).
//
// Parameters:
//   - buf: The buffer to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns ErrInvalidParameter if the coordinates are outside the buffer.
// Grayscale samples are reported with R = G = B.
func SampleColor(buf *Buffer, x, y int) (*ColorResult, error) {
	if x < 0 || x >= buf.Width || y < 0 || y >= buf.Height {
		return nil, invalidParameter("coordinates (%d,%d) outside image bounds %dx%d", x, y, buf.Width, buf.Height)
	}

	i := buf.Offset(x, y)
	var r, g, b uint8
	if buf.IsGray() {
		r, g, b = buf.Pix[i], buf.Pix[i], buf.Pix[i]
	} else {
		r, g, b = buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]
	}

	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()

	return &ColorResult{
		X:    x,
		Y:    y,
		Hex:  strings.ToUpper(c.Hex()),
		RGB:  RGBColor{R: r, G: g, B: b},
		HSL:  HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Gray: clampSample(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)),
	}, nil
}
