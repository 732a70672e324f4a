package imaging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads and decodes.
//
// Images are decoded once into a Buffer and keyed by the exact path string.
// The pixel operations never modify their input, so the cached Buffer can be
// handed to any number of concurrent calls.
//
// # Memory Management
//
// Cached buffers remain in memory until explicitly removed via Evict() or
// Clear(). Evict a path after writing a new file to it so the next Load sees
// the new contents.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Buffer
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Buffer),
	}
}

// Load returns the cached buffer for path, decoding the file on first use.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG EXIF
// orientation is applied while decoding. Grayscale files load as
// single-channel buffers, everything else as RGB.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image format
func (c *ImageCache) Load(path string) (*Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load image")
	}
	buf := FromImage(img)

	c.mu.Lock()
	c.images[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Buffer)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Unknown paths
// are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Channels is 1 for grayscale files and 3 for everything else.
	Channels int `json:"channels"`

	// Format is "png", "jpeg", "gif", "bmp", "tiff", "webp" or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache (if not already cached) and
// reports its dimensions, channel count, format and file size.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}

	return &ImageInfo{
		Width:         buf.Width,
		Height:        buf.Height,
		Channels:      buf.Channels,
		Format:        formatFromExt(path),
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{Width: buf.Width, Height: buf.Height}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return "unknown"
	}
}
