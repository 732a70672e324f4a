package imaging

// ThresholdApply binarizes a grayscale buffer: samples >= t become 255, all
// others 0. Applying it twice with the same t gives the same result as once.
//
// Returns ErrInvalidInput for a color buffer and ErrInvalidParameter when t is
// outside [0, 255].
func ThresholdApply(buf *Buffer, t int) (*Buffer, error) {
	if err := requireGray(buf, "threshold"); err != nil {
		return nil, err
	}
	if t < 0 || t > 255 {
		return nil, invalidParameter("threshold must be in [0,255], got %d", t)
	}
	return MapSamples(buf, func(v uint8) uint8 {
		if int(v) >= t {
			return 255
		}
		return 0
	}), nil
}

// OtsuThreshold picks the threshold that best separates the intensities of a
// grayscale buffer into a dark and a bright class.
//
// Every split of the histogram into {0..t-1} and {t..255} is scored by the
// between-class variance
//
//	w0 * w1 * (mu0 - mu1)²
//
// where w is the share of pixels in a class and mu its mean intensity. The
// returned t is the lowest bright-class intensity of the best split, which is
// exactly the value ThresholdApply needs to reproduce the partition:
//
//	t, _ := imaging.OtsuThreshold(gray)
//	bin, _ := imaging.ThresholdApply(gray, t)
//
// Ties go to the lowest t. A buffer with a single intensity level has no
// valid split and returns 0.
//
// Returns ErrInvalidInput when buf is not single-channel.
func OtsuThreshold(buf *Buffer) (int, error) {
	hist, err := HistogramGray(buf)
	if err != nil {
		return 0, err
	}
	return otsuFromHistogram(&hist), nil
}

func otsuFromHistogram(hist *Histogram) int {
	var total, weighted float64
	for level, c := range hist {
		total += float64(c)
		weighted += float64(level) * float64(c)
	}

	var (
		best      int
		bestScore float64 = -1

		// Pixel count and intensity sum of the dark class so far.
		darkCount float64
		darkSum   float64
	)
	for t := 1; t <= 255; t++ {
		darkCount += float64(hist[t-1])
		darkSum += float64(t-1) * float64(hist[t-1])

		brightCount := total - darkCount
		if darkCount == 0 || brightCount == 0 {
			continue
		}

		// n0*n1*(mu0-mu1)² == (S0*N - n0*S)² / (n0*n1); the common 1/N² factor
		// does not change the argmax.
		d := darkSum*total - darkCount*weighted
		score := d * d / (darkCount * brightCount)
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	return best
}
