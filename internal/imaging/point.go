package imaging

import "math"

// MapSamples applies fn to every sample of buf and returns the result in a new
// buffer of the same shape.
//
// fn is evaluated once per intensity level to build a 256-entry lookup table,
// so it must be a pure function of its argument. All point transforms in this
// package are built on MapSamples.
func MapSamples(buf *Buffer, fn func(v uint8) uint8) *Buffer {
	var lut [256]uint8
	for i := range lut {
		lut[i] = fn(uint8(i))
	}

	out := newBuffer(buf.Width, buf.Height, buf.Channels)
	for i, v := range buf.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// Negative inverts every sample: 255 - v. Applying it twice returns the input.
func Negative(buf *Buffer) *Buffer {
	return MapSamples(buf, func(v uint8) uint8 { return 255 - v })
}

// LogTransform maps every sample to round(c * ln(1 + v)), clamped to [0, 255].
//
// The log curve expands dark tones and compresses bright ones. Use LogScale to
// pick the c that maps the brightest sample of buf to 255, or LogTransformAuto
// to do both in one call.
//
// Returns ErrInvalidParameter when c is not a positive finite number.
func LogTransform(buf *Buffer, c float64) (*Buffer, error) {
	if !(c > 0) || math.IsInf(c, 0) {
		return nil, invalidParameter("log scale c must be > 0, got %v", c)
	}
	return MapSamples(buf, func(v uint8) uint8 {
		return clampSample(c * math.Log1p(float64(v)))
	}), nil
}

// LogScale returns 255 / ln(1 + max), where max is the brightest sample in buf.
// An all-black buffer yields 1, since every sample maps to 0 regardless of c.
func LogScale(buf *Buffer) float64 {
	var peak uint8
	for _, v := range buf.Pix {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 1
	}
	return 255 / math.Log1p(float64(peak))
}

// LogTransformAuto is LogTransform with c chosen by LogScale.
func LogTransformAuto(buf *Buffer) *Buffer {
	out, _ := LogTransform(buf, LogScale(buf))
	return out
}

// GammaTransform maps every sample to round(255 * (v/255)^gamma), clamped to
// [0, 255]. gamma < 1 brightens, gamma > 1 darkens and gamma == 1 is the
// identity.
//
// Returns ErrInvalidParameter when gamma is not a positive finite number.
func GammaTransform(buf *Buffer, gamma float64) (*Buffer, error) {
	if !(gamma > 0) || math.IsInf(gamma, 0) {
		return nil, invalidParameter("gamma must be > 0, got %v", gamma)
	}
	return MapSamples(buf, func(v uint8) uint8 {
		return clampSample(255 * math.Pow(float64(v)/255, gamma))
	}), nil
}
