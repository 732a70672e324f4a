package imaging

import "math"

// ResizeNearest resamples buf to newW x newH by copying, for every output
// pixel, the source pixel at floor(dst * srcDim/newDim). Upscaling repeats
// pixels and downscaling drops them; no new sample values are created.
//
// Returns ErrInvalidParameter when newW or newH is not positive.
func ResizeNearest(buf *Buffer, newW, newH int) (*Buffer, error) {
	if err := validateTarget(newW, newH); err != nil {
		return nil, err
	}

	scaleX := float64(buf.Width) / float64(newW)
	scaleY := float64(buf.Height) / float64(newH)

	srcX := make([]int, newW)
	for x := range srcX {
		srcX[x] = clamp(int(math.Floor(float64(x)*scaleX)), 0, buf.Width-1)
	}

	ch := buf.Channels
	out := newBuffer(newW, newH, ch)
	for y := 0; y < newH; y++ {
		sy := clamp(int(math.Floor(float64(y)*scaleY)), 0, buf.Height-1)
		for x := 0; x < newW; x++ {
			si := buf.Offset(srcX[x], sy)
			di := out.Offset(x, y)
			copy(out.Pix[di:di+ch], buf.Pix[si:si+ch])
		}
	}
	return out, nil
}

// ResizeBilinear resamples buf to newW x newH by bilinear interpolation.
//
// Output pixel centers are mapped onto the source grid with
//
//	src = (dst + 0.5) * srcDim/newDim - 0.5
//
// clamped to [0, srcDim-1], and each sample is the distance-weighted blend of
// the four enclosing source samples, rounded to the nearest integer. Resizing
// to the original dimensions reproduces the input exactly.
//
// Returns ErrInvalidParameter when newW or newH is not positive.
func ResizeBilinear(buf *Buffer, newW, newH int) (*Buffer, error) {
	if err := validateTarget(newW, newH); err != nil {
		return nil, err
	}

	xs := bilinearTaps(buf.Width, newW)
	ys := bilinearTaps(buf.Height, newH)

	ch := buf.Channels
	out := newBuffer(newW, newH, ch)
	for y := 0; y < newH; y++ {
		ty := ys[y]
		for x := 0; x < newW; x++ {
			tx := xs[x]
			i00 := buf.Offset(tx.i0, ty.i0)
			i10 := buf.Offset(tx.i1, ty.i0)
			i01 := buf.Offset(tx.i0, ty.i1)
			i11 := buf.Offset(tx.i1, ty.i1)
			di := out.Offset(x, y)
			for c := 0; c < ch; c++ {
				top := float64(buf.Pix[i00+c])*(1-tx.frac) + float64(buf.Pix[i10+c])*tx.frac
				bottom := float64(buf.Pix[i01+c])*(1-tx.frac) + float64(buf.Pix[i11+c])*tx.frac
				out.Pix[di+c] = clampSample(top*(1-ty.frac) + bottom*ty.frac)
			}
		}
	}
	return out, nil
}

// tap is the pair of source indices enclosing a fractional coordinate and the
// weight of the second one.
type tap struct {
	i0, i1 int
	frac   float64
}

func bilinearTaps(srcDim, dstDim int) []tap {
	scale := float64(srcDim) / float64(dstDim)
	taps := make([]tap, dstDim)
	for d := range taps {
		s := (float64(d)+0.5)*scale - 0.5
		s = math.Max(0, math.Min(s, float64(srcDim-1)))
		i0 := int(math.Floor(s))
		i1 := i0 + 1
		if i1 > srcDim-1 {
			i1 = srcDim - 1
		}
		taps[d] = tap{i0: i0, i1: i1, frac: s - float64(i0)}
	}
	return taps
}

// ScaledSize applies a percentage to both dimensions, never going below one
// pixel: max(1, int(dim*percent/100)).
//
// Returns ErrInvalidParameter when percent is not a positive finite number.
func ScaledSize(width, height int, percent float64) (int, int, error) {
	if !(percent > 0) || math.IsInf(percent, 0) {
		return 0, 0, invalidParameter("scale percent must be > 0, got %v", percent)
	}
	w := int(float64(width) * percent / 100)
	h := int(float64(height) * percent / 100)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, nil
}

func validateTarget(newW, newH int) error {
	if newW <= 0 || newH <= 0 {
		return invalidParameter("target dimensions must be positive, got %dx%d", newW, newH)
	}
	return nil
}
