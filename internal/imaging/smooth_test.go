package imaging

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothBox_ConstantImageUnchanged(t *testing.T) {
	for _, size := range []int{1, 3, 5, 7} {
		for _, channels := range []int{1, 3} {
			buf := filledBuffer(9, 8, channels, 137)
			out, err := SmoothBox(buf, size)
			require.NoError(t, err)
			assert.True(t, buf.Equal(out), "size=%d channels=%d", size, channels)
		}
	}
}

func TestSmoothBox_SpreadsImpulse(t *testing.T) {
	buf := newBuffer(5, 5, 1)
	buf.Set(2, 2, 0, 255)

	out, err := SmoothBox(buf, 3)
	require.NoError(t, err)

	// 255/9 = 28.33
	assert.Equal(t, uint8(28), out.At(2, 2, 0))
	assert.Equal(t, uint8(28), out.At(1, 1, 0))
	assert.Equal(t, uint8(28), out.At(3, 2, 0))
	assert.Equal(t, uint8(0), out.At(0, 0, 0))
	assert.Equal(t, uint8(0), out.At(4, 2, 0))
}

func TestSmoothBox_DoesNotModifyInput(t *testing.T) {
	buf := randomBuffer(6, 6, 3, 9)
	orig := buf.Clone()
	_, err := SmoothBox(buf, 3)
	require.NoError(t, err)
	assert.True(t, orig.Equal(buf))
}

func TestSmoothGaussian_ConstantImageUnchanged(t *testing.T) {
	buf := filledBuffer(10, 10, 3, 200)
	out, err := SmoothGaussian(buf, 5, 1.4)
	require.NoError(t, err)
	assert.True(t, buf.Equal(out))
}

func TestSmoothGaussian_ReducesVariation(t *testing.T) {
	buf := randomBuffer(32, 32, 1, 17)
	out, err := SmoothGaussian(buf, 5, 2)
	require.NoError(t, err)
	assert.Less(t, totalVariation(out), totalVariation(buf))
}

func totalVariation(buf *Buffer) int {
	var tv int
	for y := 0; y < buf.Height; y++ {
		for x := 1; x < buf.Width; x++ {
			d := int(buf.At(x, y, 0)) - int(buf.At(x-1, y, 0))
			if d < 0 {
				d = -d
			}
			tv += d
		}
	}
	return tv
}

func TestGaussianKernel(t *testing.T) {
	k, err := GaussianKernel(5, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, k.Sum(), 1e-12)
	center := k.At(2, 2)
	for ky := 0; ky < 5; ky++ {
		for kx := 0; kx < 5; kx++ {
			assert.InDelta(t, k.At(kx, ky), k.At(4-kx, ky), 1e-15, "horizontal symmetry")
			assert.InDelta(t, k.At(kx, ky), k.At(kx, 4-ky), 1e-15, "vertical symmetry")
			assert.LessOrEqual(t, k.At(kx, ky), center)
		}
	}
}

func TestBoxKernel(t *testing.T) {
	k, err := BoxKernel(3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, k.Sum(), 1e-12)
	assert.Equal(t, 1, k.Radius())
}

func TestSmooth_Errors(t *testing.T) {
	buf := filledBuffer(4, 4, 1, 50)

	tests := []struct {
		name string
		run  func() (*Buffer, error)
		kind error
	}{
		{"box even", func() (*Buffer, error) { return SmoothBox(buf, 4) }, ErrInvalidParameter},
		{"box zero", func() (*Buffer, error) { return SmoothBox(buf, 0) }, ErrInvalidParameter},
		{"box too large", func() (*Buffer, error) { return SmoothBox(buf, 5) }, ErrDimensionMismatch},
		{"gaussian even", func() (*Buffer, error) { return SmoothGaussian(buf, 2, 1) }, ErrInvalidParameter},
		{"gaussian sigma zero", func() (*Buffer, error) { return SmoothGaussian(buf, 3, 0) }, ErrInvalidParameter},
		{"gaussian sigma negative", func() (*Buffer, error) { return SmoothGaussian(buf, 3, -2) }, ErrInvalidParameter},
		{"gaussian too large", func() (*Buffer, error) { return SmoothGaussian(buf, 7, 1) }, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.run()
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}
