package imaging

import "github.com/pkg/errors"

// Error kinds returned by the pixel operations. Every failure wraps exactly one
// of these with context, so callers classify with errors.Is:
//
//	out, err := imaging.GammaTransform(buf, 0)
//	if errors.Is(err, imaging.ErrInvalidParameter) {
//	    // show a parameter message
//	}
var (
	// ErrInvalidParameter reports an out-of-domain numeric argument: a
	// non-positive size, gamma or sigma, a threshold outside [0,255], or a
	// non-positive target dimension.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput reports a buffer the operation cannot accept, such as a
	// color buffer passed to a grayscale-only operation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch reports a kernel larger than the image it is applied to.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

func invalidParameter(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

func invalidInput(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

func dimensionMismatch(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDimensionMismatch, format, args...)
}

// requireGray fails with ErrInvalidInput unless buf is single-channel.
func requireGray(buf *Buffer, op string) error {
	if buf.Channels != 1 {
		return invalidInput("%s requires a grayscale buffer, got %d channels", op, buf.Channels)
	}
	return nil
}
