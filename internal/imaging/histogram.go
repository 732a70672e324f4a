package imaging

// Histogram counts how many samples take each of the 256 intensity levels.
// Index is the intensity; the counts of a histogram built from a buffer sum
// to its pixel count.
type Histogram [256]int

// HistogramGray builds the intensity histogram of a grayscale buffer in a
// single pass.
//
// Returns ErrInvalidInput when buf is not single-channel; convert color
// buffers with Grayscale first.
func HistogramGray(buf *Buffer) (Histogram, error) {
	var h Histogram
	if err := requireGray(buf, "histogram"); err != nil {
		return h, err
	}
	for _, v := range buf.Pix {
		h[v]++
	}
	return h, nil
}

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	var n int
	for _, c := range h {
		n += c
	}
	return n
}

// Max returns the largest single count, useful for scaling a bar chart.
func (h *Histogram) Max() int {
	var m int
	for _, c := range h {
		if c > m {
			m = c
		}
	}
	return m
}

// Mean returns the average intensity, or 0 for an empty histogram.
func (h *Histogram) Mean() float64 {
	var n, sum int
	for level, c := range h {
		n += c
		sum += level * c
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
