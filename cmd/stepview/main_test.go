package main

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	trimage "tornado-tracker/internal/image"
	"tornado-tracker/internal/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSteps(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, trimage.Save(image.NewNRGBA(image.Rect(0, 0, 30, 20)), filepath.Join(dir, "step1-0.png")))
	m := tracker.Manifest{
		Timestamp: 100,
		Digits:    "? ? ? ? ?",
		Failure:   "markers: too few groups",
		Steps: []tracker.ManifestStep{
			{Number: 1, Caption: "Resized image down to 30x20 for marker detection.", Images: []string{"step1-0.png"}},
			{Number: 2, Caption: "Found 0 red groups & 0 green groups.", Images: []string{"missing.png"}},
		},
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, tracker.ManifestFile), data, 0o644))

	got, steps, err := loadSteps(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Timestamp)
	require.Len(t, steps, 3)
	assert.Equal(t, "1. Resized image down to 30x20 for marker detection.", steps[0].Title)
	require.Len(t, steps[0].Images, 1)
	assert.Equal(t, 30, steps[0].Images[0].Bounds().Dx())
	assert.Empty(t, steps[1].Images)
	assert.Equal(t, "Analysis failed: markers: too few groups", steps[2].Title)
}

func TestLoadStepsMissingManifest(t *testing.T) {
	_, _, err := loadSteps(t.TempDir())
	assert.Error(t, err)
}

func TestMinSize(t *testing.T) {
	assert.Equal(t, float32(160), minSize(image.NewNRGBA(image.Rect(0, 0, 40, 80))).Width)
	wide := minSize(image.NewNRGBA(image.Rect(0, 0, 2000, 100)))
	assert.InDelta(t, 2*windowWidth/3, wide.Width, 1)
}
