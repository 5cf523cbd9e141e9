package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tornado-tracker/internal/digits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(vs ...int) digits.Reading {
	r := make(digits.Reading, len(vs))
	for i, v := range vs {
		if v < 0 {
			r[i] = digits.Unrecognized
			continue
		}
		r[i] = digits.Known(v)
	}
	return r
}

func seeded(t *testing.T) *Registry {
	t.Helper()
	images, analyzed := t.TempDir(), t.TempDir()
	reg := NewRegistry(analyzed)

	ok, err := NewEntry(filepath.Join(images, "200.jpg"), analyzed)
	require.NoError(t, err)
	ok.setResult(reading(0, 4, 2, 1, 7), "")

	failed, err := NewEntry(filepath.Join(images, "100.jpg"), analyzed)
	require.NoError(t, err)
	failed.setResult(reading(0, -1, 2, 1, 7), "")

	mismatch, err := NewEntry(filepath.Join(images, "300.jpg"), analyzed)
	require.NoError(t, err)
	mismatch.setResult(reading(0, 4, 2, 1, 8), "")
	mismatch.expected = reading(0, 4, 2, 1, 9)

	pending, err := NewEntry(filepath.Join(images, "400.jpg"), analyzed)
	require.NoError(t, err)

	for _, e := range []*Entry{mismatch, pending, ok, failed} {
		reg.Put(e)
	}
	return reg
}

func TestRegistryReadings(t *testing.T) {
	reg := seeded(t)
	assert.Equal(t, 4, reg.Len())

	rs := reg.Readings()
	require.Len(t, rs, 3, "unanalysed entries are not listed")
	assert.Equal(t, []int64{100, 200, 300}, []int64{rs[0].Timestamp, rs[1].Timestamp, rs[2].Timestamp})

	assert.Equal(t, StatusFail, rs[0].Status)
	assert.Equal(t, "0None217", rs[0].Digits)
	assert.Nil(t, rs[0].Value)

	assert.Equal(t, StatusSuccess, rs[1].Status)
	assert.Equal(t, "04217", rs[1].Digits)
	require.NotNil(t, rs[1].Value)
	assert.Equal(t, 4217, *rs[1].Value)
	assert.Equal(t, "200/index.html", rs[1].Report)
	assert.Equal(t, "200/step8-0.png", rs[1].Thumbnail)
	assert.Equal(t, time.Unix(200, 0).Format(time.ANSIC), rs[1].Taken)

	assert.Equal(t, StatusFailTest, rs[2].Status)
}

func TestRegistryChartData(t *testing.T) {
	reg := seeded(t)
	assert.Equal(t, [][2]int64{{200000, 4217}}, reg.ChartData())
	assert.Equal(t, [][2]int64{}, NewRegistry(t.TempDir()).ChartData())
}

func TestRegistryWriteIndex(t *testing.T) {
	reg := seeded(t)
	now := time.Unix(1366000773, 0)
	require.NoError(t, reg.WriteIndex(now))

	data, err := os.ReadFile(filepath.Join(reg.Dir(), IndexFile))
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "data: [[200000,4217]]")
	assert.Contains(t, html, "Last updated "+now.Format(time.ANSIC))
	assert.Contains(t, html, `<tr class="success">`)
	assert.Contains(t, html, `<tr class="fail">`)
	assert.Contains(t, html, `<tr class="failTest">`)
	assert.Contains(t, html, `src="200/step8-0.png"`)
	assert.Contains(t, html, `href="100/index.html"`)

	_, err = os.Stat(filepath.Join(reg.Dir(), "."+IndexFile+".tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestRegistryLoad(t *testing.T) {
	images, analyzed := t.TempDir(), t.TempDir()
	path := writePhoto(t, images, "1366000773.png", counter())
	e, err := NewEntry(path, analyzed)
	require.NoError(t, err)
	_, err = newAnalyzer(nil).Digits(e, false)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(analyzed, "scratch"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(analyzed, "42"), 0o755))

	reg := NewRegistry(analyzed)
	require.NoError(t, reg.Load())
	assert.Equal(t, 1, reg.Len(), "only folders with a manifest are loaded")

	got, ok := reg.Get(1366000773)
	require.True(t, ok)
	assert.Equal(t, path, got.ImagePath)
	assert.Equal(t, "7 1 7 1 1", got.Digits().String())
	assert.Equal(t, StatusSuccess, got.Status())
}
