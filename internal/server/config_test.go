package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Debug)
	assert.Equal(t, 512, cfg.PreviewSize)
	assert.Equal(t, 16384, cfg.MaxDimension)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected Config
	}{
		{
			name:     "no overrides",
			env:      map[string]string{},
			expected: DefaultConfig(),
		},
		{
			name: "all overrides",
			env: map[string]string{
				EnvLogLevel:     "DEBUG",
				EnvPreviewSize:  "256",
				EnvMaxDimension: "4096",
			},
			expected: Config{Debug: true, PreviewSize: 256, MaxDimension: 4096},
		},
		{
			name: "bad numbers keep defaults",
			env: map[string]string{
				EnvLogLevel:     "info",
				EnvPreviewSize:  "big",
				EnvMaxDimension: "-5",
			},
			expected: DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{EnvLogLevel, EnvPreviewSize, EnvMaxDimension} {
				t.Setenv(name, tt.env[name])
			}
			assert.Equal(t, tt.expected, LoadConfig())
		})
	}
}
