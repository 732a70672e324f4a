// Package imaging implements classic raster image transforms from first
// principles on a plain 8-bit pixel array.
//
// The core operations are pure functions over a Buffer:
//
//   - Point transforms: Negative, LogTransform, GammaTransform (MapSamples)
//   - Convolution: Convolve, ConvolveFloat with a Kernel and BoundaryPolicy
//   - Smoothing: SmoothBox, SmoothGaussian
//   - Sharpening: UnsharpMask
//   - Thresholding: ThresholdApply, OtsuThreshold
//   - Edges: SobelEdges, SobelGradients, CannyEdges
//   - Histogram: HistogramGray
//   - Resampling: ResizeNearest, ResizeBilinear
//
// Around the core sit the pieces a caller needs to get pixels in and out:
// ImageCache decodes files into Buffers, NewImageResult and Save encode
// results, Preview makes display thumbnails and SampleColor inspects pixels.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Thread Safety
//
// Operations never modify their input and always allocate their output, so
// any number of goroutines may process the same Buffer concurrently. The
// ImageCache type is safe for concurrent use.
//
// # Numeric Conventions
//
// Intermediate arithmetic is done in float64. Results are rounded half away
// from zero and clamped to [0, 255]; invalid inputs are never clamped but
// rejected.
//
// # Error Handling
//
// Failures wrap one of three kinds, tested with errors.Is:
//   - ErrInvalidParameter: out-of-domain numeric arguments
//   - ErrInvalidInput: a color buffer passed to a grayscale-only operation
//   - ErrDimensionMismatch: a kernel larger than the image
//
// No output buffer is returned on failure.
package imaging
