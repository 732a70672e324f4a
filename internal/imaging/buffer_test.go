package imaging

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filledBuffer creates a buffer with every sample set to v.
func filledBuffer(w, h, channels int, v uint8) *Buffer {
	buf := newBuffer(w, h, channels)
	for i := range buf.Pix {
		buf.Pix[i] = v
	}
	return buf
}

// randomBuffer creates a reproducible noise buffer.
func randomBuffer(w, h, channels int, seed int64) *Buffer {
	rng := rand.New(rand.NewSource(seed))
	buf := newBuffer(w, h, channels)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(rng.Intn(256))
	}
	return buf
}

// grayFromRows builds a grayscale buffer from literal rows.
func grayFromRows(rows ...[]uint8) *Buffer {
	buf := newBuffer(len(rows[0]), len(rows), 1)
	for y, row := range rows {
		copy(buf.Pix[y*buf.Width:], row)
	}
	return buf
}

// verticalStep creates a grayscale image dark on the left half and bright on
// the right half.
func verticalStep(w, h int, dark, bright uint8) *Buffer {
	buf := newBuffer(w, h, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				buf.Set(x, y, 0, dark)
			} else {
				buf.Set(x, y, 0, bright)
			}
		}
	}
	return buf
}

func TestNewBuffer(t *testing.T) {
	buf, err := NewBuffer(4, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, buf.Width)
	assert.Equal(t, 3, buf.Height)
	assert.Len(t, buf.Pix, 4*3*3)
	assert.False(t, buf.IsGray())
}

func TestNewBuffer_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		w, h, channel int
	}{
		{"zero width", 0, 3, 1},
		{"negative height", 3, -1, 1},
		{"two channels", 3, 3, 2},
		{"four channels", 3, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewBuffer(tt.w, tt.h, tt.channel)
			assert.Nil(t, buf)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestBuffer_SetAt(t *testing.T) {
	buf := newBuffer(3, 2, 3)
	buf.Set(2, 1, 1, 99)
	assert.Equal(t, uint8(99), buf.At(2, 1, 1))
	assert.Equal(t, uint8(99), buf.Pix[(1*3+2)*3+1])
}

func TestBuffer_CloneIsIndependent(t *testing.T) {
	buf := randomBuffer(5, 5, 1, 1)
	c := buf.Clone()
	require.True(t, buf.Equal(c))

	c.Pix[0]++
	assert.False(t, buf.Equal(c))
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(1, 1, color.Gray{Y: 200})

	buf := FromImage(img)
	require.True(t, buf.IsGray())
	assert.Equal(t, uint8(200), buf.At(1, 1, 0))
	assert.Equal(t, uint8(0), buf.At(0, 0, 0))
}

func TestFromImage_SubImageBounds(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	img.SetGray(5, 5, color.Gray{Y: 77})
	sub := img.SubImage(image.Rect(4, 4, 8, 8))

	buf := FromImage(sub)
	assert.Equal(t, 4, buf.Width)
	assert.Equal(t, 4, buf.Height)
	assert.Equal(t, uint8(77), buf.At(1, 1, 0))
}

func TestFromImage_RGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 128, 64, 255})
	img.Set(1, 1, color.RGBA{0, 255, 0, 255})

	buf := FromImage(img)
	require.Equal(t, 3, buf.Channels)
	assert.Equal(t, []uint8{255, 128, 64}, buf.Pix[0:3])
	assert.Equal(t, []uint8{0, 255, 0}, buf.Pix[9:12])
}

func TestToImage_RoundTrip(t *testing.T) {
	for _, channels := range []int{1, 3} {
		buf := randomBuffer(7, 5, channels, int64(channels))
		back := FromImage(buf.ToImage())
		assert.True(t, buf.Equal(back), "channels=%d", channels)
	}
}

func TestGrayscale(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 150},
		{"blue", 0, 0, 255, 29},
		{"white", 255, 255, 255, 255},
		{"black", 0, 0, 0, 0},
		{"gray", 128, 128, 128, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := newBuffer(1, 1, 3)
			copy(buf.Pix, []uint8{tt.r, tt.g, tt.b})
			gray := Grayscale(buf)
			require.True(t, gray.IsGray())
			assert.Equal(t, tt.want, gray.Pix[0])
		})
	}
}

func TestGrayscale_GrayInputCopied(t *testing.T) {
	buf := randomBuffer(4, 4, 1, 3)
	gray := Grayscale(buf)
	assert.True(t, buf.Equal(gray))
	gray.Pix[0]++
	assert.False(t, buf.Equal(gray))
}

func TestClampSample(t *testing.T) {
	assert.Equal(t, uint8(0), clampSample(-12.7))
	assert.Equal(t, uint8(255), clampSample(300))
	assert.Equal(t, uint8(3), clampSample(2.5))
	assert.Equal(t, uint8(2), clampSample(2.49))
}
