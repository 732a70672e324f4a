package imaging

// SmoothBox blurs buf with a size x size mean filter.
//
// Returns ErrInvalidParameter for an even or non-positive size and
// ErrDimensionMismatch when size exceeds the image width or height.
func SmoothBox(buf *Buffer, size int) (*Buffer, error) {
	k, err := BoxKernel(size)
	if err != nil {
		return nil, err
	}
	return Convolve(buf, k, BoundaryReflect)
}

// SmoothGaussian blurs buf with a size x size Gaussian of standard deviation
// sigma. A common rule of thumb is size ≈ 6*sigma rounded up to odd.
//
// Returns ErrInvalidParameter for an invalid size or sigma <= 0 and
// ErrDimensionMismatch when size exceeds the image width or height.
func SmoothGaussian(buf *Buffer, size int, sigma float64) (*Buffer, error) {
	k, err := GaussianKernel(size, sigma)
	if err != nil {
		return nil, err
	}
	return Convolve(buf, k, BoundaryReflect)
}
