package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "deck.pptx")

	// No collision: plain suffix.
	assert.Equal(t, filepath.Join(dir, "deck_French.pptx"), outputPath(input, "French"))

	// Existing outputs bump the counter until a free name is found.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck_French.pptx"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "deck_French_1.pptx"), outputPath(input, "French"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck_French_1.pptx"), nil, 0o644))
	assert.Equal(t, filepath.Join(dir, "deck_French_2.pptx"), outputPath(input, "French"))
}

func TestOutputPath_NoExtension(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "deck")

	assert.Equal(t, filepath.Join(dir, "deck_English.pptx"), outputPath(input, "English"))
}
