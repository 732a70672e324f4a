package imaging

import (
	"math"
	"testing"

	"github.com/anthonynsimon/bild/effect"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegative_Involutive(t *testing.T) {
	for _, channels := range []int{1, 3} {
		buf := randomBuffer(16, 9, channels, 42)
		twice := Negative(Negative(buf))
		assert.True(t, buf.Equal(twice), "channels=%d", channels)
	}
}

func TestNegative_Values(t *testing.T) {
	buf := grayFromRows([]uint8{0, 1, 128, 255})
	out := Negative(buf)
	assert.Equal(t, []uint8{255, 254, 127, 0}, out.Pix)
	// input untouched
	assert.Equal(t, []uint8{0, 1, 128, 255}, buf.Pix)
}

func TestNegative_MatchesBildInvert(t *testing.T) {
	buf := randomBuffer(12, 8, 3, 7)
	want := FromImage(effect.Invert(buf.ToImage()))
	assert.True(t, Negative(buf).Equal(want))
}

func TestMapSamples_CallsFnPerLevel(t *testing.T) {
	calls := 0
	buf := randomBuffer(50, 50, 3, 1)
	MapSamples(buf, func(v uint8) uint8 {
		calls++
		return v
	})
	assert.Equal(t, 256, calls)
}

func TestGammaTransform_IdentityAtOne(t *testing.T) {
	buf := randomBuffer(20, 20, 3, 5)
	out, err := GammaTransform(buf, 1)
	require.NoError(t, err)
	assert.True(t, buf.Equal(out))
}

func TestGammaTransform_Values(t *testing.T) {
	buf := grayFromRows([]uint8{0, 64, 255})

	out, err := GammaTransform(buf, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 128, 255}, out.Pix)

	out, err = GammaTransform(buf, 2)
	require.NoError(t, err)
	// 255 * (64/255)^2 = 16.06
	assert.Equal(t, []uint8{0, 16, 255}, out.Pix)
}

func TestGammaTransform_Invalid(t *testing.T) {
	buf := filledBuffer(2, 2, 1, 10)
	for _, g := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		out, err := GammaTransform(buf, g)
		assert.Nil(t, out, "gamma=%v", g)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "gamma=%v: %v", g, err)
	}
}

func TestLogTransform_AutoScaleHitsFullRange(t *testing.T) {
	buf := grayFromRows([]uint8{0, 10, 100, 255})
	out := LogTransformAuto(buf)
	assert.Equal(t, uint8(0), out.Pix[0])
	assert.Equal(t, uint8(255), out.Pix[3])
	// dark tones are expanded
	assert.Greater(t, out.Pix[1], uint8(10))
	assert.Greater(t, out.Pix[2], uint8(100))
}

func TestLogScale(t *testing.T) {
	buf := grayFromRows([]uint8{3, 99})
	assert.InDelta(t, 255/math.Log(100), LogScale(buf), 1e-9)

	assert.Equal(t, 1.0, LogScale(filledBuffer(3, 3, 1, 0)))
}

func TestLogTransform_ExplicitScale(t *testing.T) {
	buf := grayFromRows([]uint8{0, 255})
	out, err := LogTransform(buf, 10)
	require.NoError(t, err)
	// 10 * ln(256) = 55.45
	assert.Equal(t, []uint8{0, 55}, out.Pix)

	out, err = LogTransform(buf, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.Pix[1], "outputs are clamped")
}

func TestLogTransform_Invalid(t *testing.T) {
	buf := filledBuffer(2, 2, 3, 10)
	for _, c := range []float64{0, -3, math.NaN()} {
		out, err := LogTransform(buf, c)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "c=%v: %v", c, err)
	}
}
