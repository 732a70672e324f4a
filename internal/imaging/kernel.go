package imaging

import "math"

// Kernel is a square, odd-sized weight matrix for Convolve.
//
// Weights are stored row-major, Size*Size entries. The weighted neighborhood
// sum is multiplied by Factor, which lets integer-valued kernels such as
// 1-2-1 binomials be written without pre-dividing every weight.
type Kernel struct {
	Size    int
	Weights []float64
	Factor  float64
}

// NewKernel validates and builds a kernel.
//
// Returns ErrInvalidParameter when size is not a positive odd number, when
// len(weights) != size*size, or when factor is not finite.
func NewKernel(size int, weights []float64, factor float64) (*Kernel, error) {
	if err := validateKernelSize(size); err != nil {
		return nil, err
	}
	if len(weights) != size*size {
		return nil, invalidParameter("kernel of size %d needs %d weights, got %d", size, size*size, len(weights))
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, invalidParameter("kernel factor must be finite, got %v", factor)
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &Kernel{Size: size, Weights: w, Factor: factor}, nil
}

// Radius is the number of samples the kernel reaches on each side of its center.
func (k *Kernel) Radius() int {
	return k.Size / 2
}

// At returns the weight at column kx, row ky.
func (k *Kernel) At(kx, ky int) float64 {
	return k.Weights[ky*k.Size+kx]
}

// Sum returns the sum of all weights times Factor. Smoothing kernels sum to 1.
func (k *Kernel) Sum() float64 {
	var s float64
	for _, w := range k.Weights {
		s += w
	}
	return s * k.Factor
}

// BoxKernel returns a size x size kernel of equal weights summing to 1.
func BoxKernel(size int) (*Kernel, error) {
	if err := validateKernelSize(size); err != nil {
		return nil, err
	}
	n := size * size
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	return &Kernel{Size: size, Weights: w, Factor: 1}, nil
}

// GaussianKernel samples exp(-(x²+y²) / 2σ²) on a size x size grid centered on
// the middle cell and normalizes the weights to sum to 1.
//
// Returns ErrInvalidParameter for an invalid size or a sigma that is not a
// positive finite number.
func GaussianKernel(size int, sigma float64) (*Kernel, error) {
	if err := validateKernelSize(size); err != nil {
		return nil, err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, invalidParameter("sigma must be > 0, got %v", sigma)
	}

	r := size / 2
	w := make([]float64, size*size)
	var sum float64
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			v := math.Exp(-float64(x*x+y*y) / (2 * sigma * sigma))
			w[(y+r)*size+(x+r)] = v
			sum += v
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return &Kernel{Size: size, Weights: w, Factor: 1}, nil
}

// Sobel operators. sobelX responds to intensity increasing to the right,
// sobelY to intensity increasing downward.
var (
	sobelX = &Kernel{Size: 3, Factor: 1, Weights: []float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}}
	sobelY = &Kernel{Size: 3, Factor: 1, Weights: []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}}
)

func validateKernelSize(size int) error {
	if size <= 0 || size%2 == 0 {
		return invalidParameter("kernel size must be a positive odd number, got %d", size)
	}
	return nil
}
