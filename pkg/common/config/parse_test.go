package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `yaml:"name" validate:"nonzero"`
	Count int    `yaml:"count"`
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseMergesFilesInOrder(t *testing.T) {
	base := writeFile(t, "base.yaml", "name: spark\ncount: 1\n")
	override := writeFile(t, "override.yaml", "count: 5\n")

	var cfg testConfig
	require.NoError(t, Parse(&cfg, base, override))
	assert.Equal(t, "spark", cfg.Name)
	assert.Equal(t, 5, cfg.Count)
}

func TestParseNoFiles(t *testing.T) {
	var cfg testConfig
	assert.Error(t, Parse(&cfg))
}

func TestParseMissingFile(t *testing.T) {
	var cfg testConfig
	assert.Error(t, Parse(&cfg, "does-not-exist.yaml"))
}

func TestParseValidation(t *testing.T) {
	empty := writeFile(t, "empty.yaml", "count: 2\n")

	var cfg testConfig
	err := Parse(&cfg, empty)
	require.Error(t, err)

	verr, ok := err.(ValidationError)
	require.True(t, ok)
	assert.Error(t, verr.ErrForField("Name"))
}
