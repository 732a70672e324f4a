package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Buffer is the in-memory raster every pixel operation reads and writes.
//
// Samples are 8-bit and stored row-major with channels interleaved:
//
//	Pix[(y*Width+x)*Channels + c]
//
// Channels is 1 for grayscale or 3 for RGB and never changes for the lifetime
// of a buffer. Operations treat their input as read-only and always return a
// newly allocated Buffer, so a Buffer may be shared between goroutines as
// long as nobody writes to it.
type Buffer struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Channels int     `json:"channels"`
	Pix      []uint8 `json:"-"`
}

// NewBuffer allocates a zeroed buffer.
//
// Returns ErrInvalidParameter when width or height is not positive or when
// channels is not 1 or 3.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidParameter("buffer dimensions must be positive, got %dx%d", width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, invalidParameter("channels must be 1 or 3, got %d", channels)
	}
	return newBuffer(width, height, channels), nil
}

// newBuffer skips validation; callers derive the shape from an existing buffer.
func newBuffer(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// IsGray reports whether the buffer has a single channel.
func (b *Buffer) IsGray() bool {
	return b.Channels == 1
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Offset returns the index of the first sample of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// At returns sample c of pixel (x, y). Coordinates are not bounds checked.
func (b *Buffer) At(x, y, c int) uint8 {
	return b.Pix[b.Offset(x, y)+c]
}

// Set writes sample c of pixel (x, y). Coordinates are not bounds checked.
func (b *Buffer) Set(x, y, c int, v uint8) {
	b.Pix[b.Offset(x, y)+c] = v
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := newBuffer(b.Width, b.Height, b.Channels)
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether both buffers have the same shape and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || b.Channels != o.Channels {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// FromImage converts a decoded image into a Buffer.
//
// Grayscale images (*image.Gray, *image.Gray16) become single-channel buffers;
// everything else becomes a 3-channel RGB buffer. Alpha is discarded without
// compositing, and 16-bit samples are reduced to their high byte.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		out := newBuffer(w, h, 1)
		for y := 0; y < h; y++ {
			row := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Pix[y*w:(y+1)*w], src.Pix[row:row+w])
		}
		return out
	case *image.Gray16:
		out := newBuffer(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = uint8(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y >> 8)
			}
		}
		return out
	}

	// Clone normalizes any color model into non-premultiplied NRGBA at (0,0).
	nrgba := imaging.Clone(img)
	out := newBuffer(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := y*nrgba.Stride + x*4
			di := (y*w + x) * 3
			out.Pix[di] = nrgba.Pix[si]
			out.Pix[di+1] = nrgba.Pix[si+1]
			out.Pix[di+2] = nrgba.Pix[si+2]
		}
	}
	return out
}

// ToImage converts a Buffer into a standard library image: *image.Gray for
// single-channel buffers, opaque *image.NRGBA otherwise.
func (b *Buffer) ToImage() image.Image {
	if b.IsGray() {
		img := image.NewGray(b.Bounds())
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.Width], b.Pix[y*b.Width:(y+1)*b.Width])
		}
		return img
	}

	img := image.NewNRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			si := b.Offset(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: b.Pix[si], G: b.Pix[si+1], B: b.Pix[si+2], A: 255})
		}
	}
	return img
}

// Grayscale converts an RGB buffer to a single-channel buffer using ITU-R
// BT.601 luma weights (0.299*R + 0.587*G + 0.114*B). A grayscale input is
// copied unchanged.
func Grayscale(buf *Buffer) *Buffer {
	if buf.IsGray() {
		return buf.Clone()
	}
	out := newBuffer(buf.Width, buf.Height, 1)
	for i := range out.Pix {
		p := buf.Pix[i*3 : i*3+3]
		out.Pix[i] = clampSample(0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2]))
	}
	return out
}

// clampSample rounds half away from zero and clamps to [0, 255].
func clampSample(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
