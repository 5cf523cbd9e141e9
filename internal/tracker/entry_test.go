package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"tornado-tracker/internal/digits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("/photos/1366000773.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(1366000773), ts)

	_, err = ParseTimestamp("/photos/IMG_0001.jpg")
	assert.ErrorIs(t, err, ErrNotTimestamp)
}

func TestNewEntryPaths(t *testing.T) {
	images, analyzed := t.TempDir(), t.TempDir()
	e, err := NewEntry(filepath.Join(images, "1366000773.jpg"), analyzed)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(analyzed, "1366000773"), e.DataDir)
	assert.Equal(t, filepath.Join(images, "1366000773.training"), e.TrainingPath())
	assert.Equal(t, filepath.Join(analyzed, "1366000773", "step8-0.png"), e.PanelImagePath())
	assert.Equal(t, filepath.Join(analyzed, "1366000773", "index.html"), e.ReportPath())
	assert.False(t, e.Analysed())
	assert.Nil(t, e.Expected())
}

func TestNewEntryReadsPreviousResult(t *testing.T) {
	images, analyzed := t.TempDir(), t.TempDir()
	dir := filepath.Join(analyzed, "100")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	// Folder without parsed.txt: the last analysis failed.
	e, err := NewEntry(filepath.Join(images, "100.jpg"), analyzed)
	require.NoError(t, err)
	assert.Equal(t, digits.Reading{digits.Unrecognized}, e.Digits())
	assert.Equal(t, StatusFail, e.Status())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ParsedFile), []byte("4\n2\n1\n7\n0\n"), 0o644))
	e, err = NewEntry(filepath.Join(images, "100.jpg"), analyzed)
	require.NoError(t, err)
	assert.Equal(t, "4 2 1 7 0", e.Digits().String())
	assert.Equal(t, StatusSuccess, e.Status())
}

func TestEntryTraining(t *testing.T) {
	images, analyzed := t.TempDir(), t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(analyzed, "100"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(analyzed, "100", ParsedFile), []byte("4\n2\n"), 0o644))
	training := filepath.Join(images, "100.training")

	require.NoError(t, os.WriteFile(training, []byte("4\n2\n"), 0o644))
	e, err := NewEntry(filepath.Join(images, "100.jpg"), analyzed)
	require.NoError(t, err)
	assert.False(t, e.FailedTest())

	require.NoError(t, os.WriteFile(training, []byte("4\n3\n"), 0o644))
	e, err = NewEntry(filepath.Join(images, "100.jpg"), analyzed)
	require.NoError(t, err)
	assert.True(t, e.FailedTest())
	assert.Equal(t, StatusFailTest, e.Status())

	require.NoError(t, os.WriteFile(training, []byte("4\nx\n"), 0o644))
	_, err = NewEntry(filepath.Join(images, "100.jpg"), analyzed)
	assert.ErrorIs(t, err, ErrBadRecord)
}
