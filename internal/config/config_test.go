package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, 8, p.NumThreads)
	assert.Equal(t, 50, p.BaseSize)
	assert.Equal(t, ChannelWeights{Shape: 1, Hue: 0, Sat: 0, Lum: 0}, p.Weights)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadOverridesOnTopOfDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_threads: 4\nbase_size: 100\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, p.NumThreads)
	assert.Equal(t, 100, p.BaseSize)
	// Unspecified fields keep their default values.
	assert.Equal(t, Default().ColorFuzz, p.ColorFuzz)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/cfg.yaml")
	assert.Error(t, err)
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
