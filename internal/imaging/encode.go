package imaging

import (
	"bytes"
	"encoding/base64"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ImageResult carries a processed buffer back to the caller as a base64 PNG.
type ImageResult struct {
	// Width of the output image in pixels.
	Width int `json:"width"`

	// Height of the output image in pixels.
	Height int `json:"height"`

	// Channels is 1 for grayscale output and 3 for RGB.
	Channels int `json:"channels"`

	// Operation describes what produced the image, e.g. "Gamma (γ=0.70)".
	Operation string `json:"operation"`

	// DurationMS is the time the pixel operation took, excluding decode and encode.
	DurationMS float64 `json:"duration_ms"`

	// ImageBase64 is the output encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`

	// OutputPath is set when the result was also written to disk.
	OutputPath string `json:"output_path,omitempty"`
}

// NewImageResult encodes buf and wraps it with its metadata.
func NewImageResult(buf *Buffer, operation string, elapsed time.Duration) (*ImageResult, error) {
	encoded, err := EncodePNGBase64(buf)
	if err != nil {
		return nil, err
	}
	return &ImageResult{
		Width:       buf.Width,
		Height:      buf.Height,
		Channels:    buf.Channels,
		Operation:   operation,
		DurationMS:  float64(elapsed.Microseconds()) / 1000,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// EncodePNGBase64 encodes buf as PNG and returns it base64 encoded.
func EncodePNGBase64(buf *Buffer) (string, error) {
	var out bytes.Buffer
	if err := imaging.Encode(&out, buf.ToImage(), imaging.PNG); err != nil {
		return "", errors.Wrap(err, "failed to encode image")
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// Save writes buf to path, picking the encoder from the file extension:
// .png, .jpg/.jpeg (quality 95) or .bmp.
func Save(buf *Buffer, path string) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return errors.Errorf("unsupported output format %q", filepath.Ext(path))
	}
	if err := imgio.Save(path, buf.ToImage(), enc); err != nil {
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}
