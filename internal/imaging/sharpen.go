package imaging

import "math"

// UnsharpMask sharpens buf by adding back the detail a Gaussian blur removes:
//
//	blurred = SmoothGaussian(buf, size, sigma)
//	out     = clamp(buf + amount*(buf - blurred))
//
// amount == 0 returns a copy of buf. Parameters are validated before that
// shortcut, so an invalid size or sigma fails even with a zero amount.
//
// Returns ErrInvalidParameter for an invalid size, sigma <= 0 or a negative
// amount, and ErrDimensionMismatch when size exceeds the image.
func UnsharpMask(buf *Buffer, size int, sigma, amount float64) (*Buffer, error) {
	if !(amount >= 0) || math.IsInf(amount, 0) {
		return nil, invalidParameter("amount must be >= 0, got %v", amount)
	}
	k, err := GaussianKernel(size, sigma)
	if err != nil {
		return nil, err
	}
	if k.Size > buf.Width || k.Size > buf.Height {
		return nil, dimensionMismatch("kernel %dx%d exceeds image %dx%d", k.Size, k.Size, buf.Width, buf.Height)
	}
	if amount == 0 {
		return buf.Clone(), nil
	}

	blurred, err := Convolve(buf, k, BoundaryReflect)
	if err != nil {
		return nil, err
	}

	out := newBuffer(buf.Width, buf.Height, buf.Channels)
	for i, v := range buf.Pix {
		orig := float64(v)
		out.Pix[i] = clampSample(orig + amount*(orig-float64(blurred.Pix[i])))
	}
	return out, nil
}
