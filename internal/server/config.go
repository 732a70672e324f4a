package server

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by LoadConfig.
const (
	EnvLogLevel     = "IMAGE_TOOLKIT_LOG_LEVEL"
	EnvPreviewSize  = "IMAGE_TOOLKIT_PREVIEW_SIZE"
	EnvMaxDimension = "IMAGE_TOOLKIT_MAX_DIMENSION"
)

// Config holds the server settings that can be changed without a rebuild.
type Config struct {
	// Debug enables one log line per tool call.
	Debug bool

	// PreviewSize bounds both sides of image_preview output when the caller
	// does not pass max_width/max_height.
	PreviewSize int

	// MaxDimension caps the width and height image_resize will produce.
	MaxDimension int
}

// DefaultConfig returns the settings used when no environment overrides exist.
func DefaultConfig() Config {
	return Config{
		Debug:        false,
		PreviewSize:  512,
		MaxDimension: 16384,
	}
}

// LoadConfig reads the IMAGE_TOOLKIT_* environment variables on top of
// DefaultConfig. Malformed or non-positive numbers keep their default and
// are reported on the log.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.Debug = strings.EqualFold(os.Getenv(EnvLogLevel), "debug")
	cfg.PreviewSize = envInt(EnvPreviewSize, cfg.PreviewSize)
	cfg.MaxDimension = envInt(EnvMaxDimension, cfg.MaxDimension)
	return cfg
}

func envInt(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Ignoring %s=%q: want a positive integer, using %d", name, raw, def)
		return def
	}
	return v
}
