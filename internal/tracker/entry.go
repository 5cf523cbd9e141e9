// Package tracker turns a folder of counter photos into a browsable history:
// one report folder per photo, a parsed-value record, and an index page with
// a chart of every successful reading.
package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"tornado-tracker/internal/digits"
	"tornado-tracker/internal/pipeline"
)

// Status classifies an entry for the index.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFail     Status = "fail"
	StatusFailTest Status = "failTest"
)

// File names inside an entry's folder.
const (
	ReportFile   = "index.html"
	ParsedFile   = "parsed.txt"
	ManifestFile = "steps.json"
	DigitsFile   = "digits.png"
)

// failedReading is what an entry holds after a failed analysis, whether the
// failure happened in this process or is found on disk later.
var failedReading = digits.Reading{digits.Unrecognized}

// Entry is the analysis state of one photo. Photos are named after the unix
// time they were taken, e.g. 1366000773.jpg.
type Entry struct {
	ImagePath string
	Timestamp int64
	// DataDir is <analyzed>/<timestamp>.
	DataDir string

	mu       sync.Mutex
	digits   digits.Reading
	expected digits.Reading
	failure  string
}

// ParseTimestamp extracts the timestamp from an image file name.
func ParseTimestamp(path string) (int64, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ts, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotTimestamp, filepath.Base(path))
	}
	return ts, nil
}

// NewEntry loads what is already known about imagePath: the previous
// reading when its report folder exists, and the expected reading from a
// <timestamp>.training file beside the image.
func NewEntry(imagePath, analyzedDir string) (*Entry, error) {
	ts, err := ParseTimestamp(imagePath)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(imagePath)
	if err != nil {
		return nil, err
	}
	e := &Entry{
		ImagePath: abs,
		Timestamp: ts,
		DataDir:   filepath.Join(analyzedDir, strconv.FormatInt(ts, 10)),
	}

	if fi, err := os.Stat(e.DataDir); err == nil && fi.IsDir() {
		data, err := os.ReadFile(e.ParsedPath())
		if err == nil {
			e.digits, _ = ParseRecord(string(data), false)
		} else {
			// Analysed before but failed.
			e.digits = failedReading
		}
	}

	if data, err := os.ReadFile(e.TrainingPath()); err == nil {
		e.expected, err = ParseRecord(string(data), true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.TrainingPath(), err)
		}
	}
	return e, nil
}

// TrainingPath is the expected-reading file beside the image.
func (e *Entry) TrainingPath() string {
	return filepath.Join(filepath.Dir(e.ImagePath), strconv.FormatInt(e.Timestamp, 10)+".training")
}

// ParsedPath is the parsed-value record, written only on success.
func (e *Entry) ParsedPath() string { return filepath.Join(e.DataDir, ParsedFile) }

// ReportPath is the per-photo HTML report.
func (e *Entry) ReportPath() string { return filepath.Join(e.DataDir, ReportFile) }

// StepImageName is the file name of the nth image (0-based) of a 1-based step.
func StepImageName(step, nth int) string {
	return fmt.Sprintf("step%d-%d.png", step, nth)
}

// StepImagePath is StepImageName inside the entry folder.
func (e *Entry) StepImagePath(step, nth int) string {
	return filepath.Join(e.DataDir, StepImageName(step, nth))
}

// PanelImagePath is the trimmed display image used as the index thumbnail.
func (e *Entry) PanelImagePath() string {
	return e.StepImagePath(pipeline.PanelStep, 0)
}

// Time is the moment the photo was taken.
func (e *Entry) Time() time.Time { return time.Unix(e.Timestamp, 0) }

// Digits returns the last reading, or nil when the photo was never analysed.
func (e *Entry) Digits() digits.Reading {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.digits
}

// Analysed reports whether a reading is available.
func (e *Entry) Analysed() bool {
	return e.Digits() != nil
}

// Failure returns the fatal error text of the last analysis, if any.
func (e *Entry) Failure() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.failure
}

// Expected returns the reading from the training file, or nil.
func (e *Entry) Expected() digits.Reading { return e.expected }

func (e *Entry) setResult(r digits.Reading, failure string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.digits = r
	e.failure = failure
}

// FailedTest reports whether a training file exists and disagrees with the
// reading.
func (e *Entry) FailedTest() bool {
	if e.expected == nil {
		return false
	}
	got := e.Digits()
	if len(got) != len(e.expected) {
		return true
	}
	for i := range got {
		if got[i] != e.expected[i] {
			return true
		}
	}
	return false
}

// Status classifies the entry: a training mismatch first, then any
// unrecognized wheel.
func (e *Entry) Status() Status {
	switch {
	case e.FailedTest():
		return StatusFailTest
	case !e.Digits().Complete():
		return StatusFail
	default:
		return StatusSuccess
	}
}
