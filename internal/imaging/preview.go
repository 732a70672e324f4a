package imaging

import (
	"github.com/nfnt/resize"
)

// Preview shrinks buf to fit within maxW x maxH, keeping its aspect ratio,
// using Lanczos3 filtering. Images that already fit are copied unchanged.
//
// Preview is meant for display only; its output is not reproducible with the
// resamplers in this package and should never be fed back into processing.
//
// Returns ErrInvalidParameter when maxW or maxH is not positive.
func Preview(buf *Buffer, maxW, maxH int) (*Buffer, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, invalidParameter("preview bounds must be positive, got %dx%d", maxW, maxH)
	}
	if buf.Width <= maxW && buf.Height <= maxH {
		return buf.Clone(), nil
	}

	thumb := resize.Thumbnail(uint(maxW), uint(maxH), buf.ToImage(), resize.Lanczos3)
	out := FromImage(thumb)
	if buf.IsGray() && !out.IsGray() {
		out = Grayscale(out)
	}
	return out, nil
}
