package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPNG saves buf as a PNG in a temporary directory and returns its path.
func writeTestPNG(t *testing.T, buf *Buffer, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, Save(buf, path))
	return path
}

func TestImageCache_LoadGrayAndRGB(t *testing.T) {
	gray := randomBuffer(12, 7, 1, 1)
	rgb := randomBuffer(9, 4, 3, 2)

	cache := NewImageCache()

	got, err := cache.Load(writeTestPNG(t, gray, "gray.png"))
	require.NoError(t, err)
	assert.True(t, gray.Equal(got), "grayscale PNG loads as a single-channel buffer")

	got, err = cache.Load(writeTestPNG(t, rgb, "rgb.png"))
	require.NoError(t, err)
	assert.True(t, rgb.Equal(got))

	assert.Equal(t, 2, cache.Len())
}

func TestImageCache_ReturnsCachedBuffer(t *testing.T) {
	path := writeTestPNG(t, filledBuffer(4, 4, 1, 7), "a.png")
	cache := NewImageCache()

	first, err := cache.Load(path)
	require.NoError(t, err)
	second, err := cache.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestImageCache_EvictReloads(t *testing.T) {
	path := writeTestPNG(t, filledBuffer(4, 4, 1, 7), "a.png")
	cache := NewImageCache()

	_, err := cache.Load(path)
	require.NoError(t, err)

	require.NoError(t, Save(filledBuffer(4, 4, 1, 99), path))
	stale, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), stale.Pix[0], "cache is keyed by path")

	cache.Evict(path)
	assert.Equal(t, 0, cache.Len())
	fresh, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(99), fresh.Pix[0])

	cache.Evict("/does/not/exist.png")
	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestImageCache_ConcurrentLoad(t *testing.T) {
	path := writeTestPNG(t, randomBuffer(16, 16, 3, 5), "c.png")
	cache := NewImageCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Load(path)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, cache.Len())
}

func TestImageCache_Errors(t *testing.T) {
	cache := NewImageCache()

	_, err := cache.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	notImage := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(notImage, []byte("not an image"), 0o644))
	_, err = cache.Load(notImage)
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestLoadImageInfo(t *testing.T) {
	path := writeTestPNG(t, randomBuffer(30, 20, 3, 3), "info.png")
	cache := NewImageCache()

	info, err := LoadImageInfo(cache, path)
	require.NoError(t, err)
	assert.Equal(t, 30, info.Width)
	assert.Equal(t, 20, info.Height)
	assert.Equal(t, 3, info.Channels)
	assert.Equal(t, "png", info.Format)

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, stat.Size(), info.FileSizeBytes)

	dims, err := GetDimensions(cache, path)
	require.NoError(t, err)
	assert.Equal(t, &DimensionsResult{Width: 30, Height: 20}, dims)
}

func TestFormatFromExt(t *testing.T) {
	tests := map[string]string{
		"a.PNG":  "png",
		"a.jpg":  "jpeg",
		"a.jpeg": "jpeg",
		"a.gif":  "gif",
		"a.bmp":  "bmp",
		"a.tif":  "tiff",
		"a.webp": "webp",
		"a.raw":  "unknown",
		"a":      "unknown",
	}
	for path, want := range tests {
		assert.Equal(t, want, formatFromExt(path), path)
	}
}

func TestNewImageResult(t *testing.T) {
	buf := randomBuffer(6, 5, 1, 10)
	res, err := NewImageResult(buf, "Negative", 1500*time.Microsecond)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Width)
	assert.Equal(t, 5, res.Height)
	assert.Equal(t, 1, res.Channels)
	assert.Equal(t, "Negative", res.Operation)
	assert.Equal(t, 1.5, res.DurationMS)
	assert.Equal(t, "image/png", res.MimeType)

	raw, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	_, isGray := img.(*image.Gray)
	assert.True(t, isGray)
	assert.True(t, buf.Equal(FromImage(img)))
}

func TestSave_Formats(t *testing.T) {
	buf := randomBuffer(8, 8, 3, 4)
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg", "out.jpeg", "out.bmp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(buf, path), name)

		loaded, err := NewImageCache().Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, 8, loaded.Width, name)
		assert.Equal(t, 8, loaded.Height, name)
	}

	err := Save(buf, filepath.Join(dir, "out.xyz"))
	assert.Error(t, err)
}
