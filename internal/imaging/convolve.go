package imaging

import "fmt"

// BoundaryPolicy decides which sample stands in for a neighbor that falls
// outside the buffer during convolution.
//
//   - BoundaryReflect mirrors coordinates with the edge sample repeated
//     (... c b a | a b c ... x y z | z y x ...). A constant image stays
//     constant right up to the border, so there is no darkening or halo.
//   - BoundaryReplicate repeats the nearest edge sample.
//   - BoundaryZero treats everything outside the buffer as 0 (darkens borders).
//
// Smoothing, sharpening and edge detection always use BoundaryReflect.
type BoundaryPolicy int

const (
	BoundaryReflect BoundaryPolicy = iota
	BoundaryReplicate
	BoundaryZero
)

func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryReflect:
		return "reflect"
	case BoundaryReplicate:
		return "replicate"
	case BoundaryZero:
		return "zero"
	default:
		return fmt.Sprintf("BoundaryPolicy(%d)", int(p))
	}
}

// ParseBoundaryPolicy accepts "reflect", "replicate" or "zero". The empty
// string selects BoundaryReflect.
func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch s {
	case "", "reflect":
		return BoundaryReflect, nil
	case "replicate":
		return BoundaryReplicate, nil
	case "zero":
		return BoundaryZero, nil
	default:
		return 0, invalidParameter("unknown boundary policy %q", s)
	}
}

// mapIndex maps coordinate i onto [0, n) under the policy. It returns -1 when
// the sample should be treated as zero.
func mapIndex(i, n int, policy BoundaryPolicy) int {
	if i >= 0 && i < n {
		return i
	}
	switch policy {
	case BoundaryReplicate:
		return clamp(i, 0, n-1)
	case BoundaryZero:
		return -1
	default:
		if n == 1 {
			return 0
		}
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			} else {
				i = 2*n - i - 1
			}
		}
		return i
	}
}

// Planes holds real-valued samples with the same layout as Buffer. It carries
// convolution results that must not be rounded yet, such as signed gradients.
type Planes struct {
	Width    int
	Height   int
	Channels int
	Data     []float64
}

// At returns sample c of pixel (x, y).
func (p *Planes) At(x, y, c int) float64 {
	return p.Data[(y*p.Width+x)*p.Channels+c]
}

// ToBuffer rounds and clamps every sample to [0, 255].
func (p *Planes) ToBuffer() *Buffer {
	out := newBuffer(p.Width, p.Height, p.Channels)
	for i, v := range p.Data {
		out.Pix[i] = clampSample(v)
	}
	return out
}

// ConvolveFloat computes, for every pixel and channel independently, the
// weighted sum of the kernel-sized neighborhood centered on that pixel,
// multiplied by the kernel's Factor. Neighbors outside the buffer are
// synthesized by policy.
//
// The kernel is applied as a correlation: weight (kx, ky) multiplies the
// sample at offset (kx-r, ky-r). The results are not rounded or clamped.
//
// # Errors
//
//   - ErrInvalidParameter: the kernel size is not a positive odd number, its
//     weight count does not match, or the policy is unknown.
//   - ErrDimensionMismatch: the kernel is wider or taller than the buffer.
func ConvolveFloat(buf *Buffer, k *Kernel, policy BoundaryPolicy) (*Planes, error) {
	if k == nil {
		return nil, invalidParameter("kernel is nil")
	}
	if err := validateKernelSize(k.Size); err != nil {
		return nil, err
	}
	if len(k.Weights) != k.Size*k.Size {
		return nil, invalidParameter("kernel of size %d needs %d weights, got %d", k.Size, k.Size*k.Size, len(k.Weights))
	}
	if policy < BoundaryReflect || policy > BoundaryZero {
		return nil, invalidParameter("unknown boundary policy %v", policy)
	}
	if k.Size > buf.Width || k.Size > buf.Height {
		return nil, dimensionMismatch("kernel %dx%d exceeds image %dx%d", k.Size, k.Size, buf.Width, buf.Height)
	}

	w, h, ch := buf.Width, buf.Height, buf.Channels
	r := k.Radius()

	// Boundary mapping depends only on the coordinate, so resolve it once per
	// row and column instead of once per tap.
	cols := make([][]int, w)
	for x := 0; x < w; x++ {
		cols[x] = make([]int, k.Size)
		for i := 0; i < k.Size; i++ {
			cols[x][i] = mapIndex(x+i-r, w, policy)
		}
	}
	rows := make([][]int, h)
	for y := 0; y < h; y++ {
		rows[y] = make([]int, k.Size)
		for i := 0; i < k.Size; i++ {
			rows[y][i] = mapIndex(y+i-r, h, policy)
		}
	}

	out := &Planes{Width: w, Height: h, Channels: ch, Data: make([]float64, w*h*ch)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < ch; c++ {
				var sum float64
				for ky := 0; ky < k.Size; ky++ {
					sy := rows[y][ky]
					if sy < 0 {
						continue
					}
					for kx := 0; kx < k.Size; kx++ {
						sx := cols[x][kx]
						if sx < 0 {
							continue
						}
						sum += float64(buf.Pix[(sy*w+sx)*ch+c]) * k.Weights[ky*k.Size+kx]
					}
				}
				out.Data[(y*w+x)*ch+c] = sum * k.Factor
			}
		}
	}
	return out, nil
}

// Convolve is ConvolveFloat with every result rounded and clamped to [0, 255].
// It is the single neighborhood loop behind smoothing and sharpening.
func Convolve(buf *Buffer, k *Kernel, policy BoundaryPolicy) (*Buffer, error) {
	planes, err := ConvolveFloat(buf, k, policy)
	if err != nil {
		return nil, err
	}
	return planes.ToBuffer(), nil
}
