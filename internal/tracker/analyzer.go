package tracker

import (
	"fmt"
	"image"
	"os"

	"tornado-tracker/internal/digits"
	trimage "tornado-tracker/internal/image"
	"tornado-tracker/internal/ocr"
	"tornado-tracker/internal/pipeline"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DigitReader is a second opinion on the trimmed digit panel.
type DigitReader interface {
	ReadDigits(panel *image.NRGBA) (string, error)
}

// Analyzer runs the pipeline for entries and writes their reports. An
// Analyzer is used by one goroutine at a time.
type Analyzer struct {
	parser *pipeline.Parser
	ocr    DigitReader
	log    zerolog.Logger
}

// NewAnalyzer returns an Analyzer. ocr may be nil.
func NewAnalyzer(parser *pipeline.Parser, ocr DigitReader, log zerolog.Logger) *Analyzer {
	return &Analyzer{parser: parser, ocr: ocr, log: log}
}

// Digits returns the entry's reading, analysing the photo when there is no
// previous reading or forceReparse is set. A reparse replaces the entry's
// folder. Failed analyses are not errors: they give a single unrecognized
// digit and a report describing the failure. Errors are I/O problems only.
func (a *Analyzer) Digits(e *Entry, forceReparse bool) (digits.Reading, error) {
	if !forceReparse && e.Analysed() {
		return e.Digits(), nil
	}

	runID := uuid.NewString()
	log := a.log.With().Str("run", runID).Int64("timestamp", e.Timestamp).Logger()

	if err := os.RemoveAll(e.DataDir); err != nil {
		return nil, fmt.Errorf("clear %s: %w", e.DataDir, err)
	}
	if err := os.MkdirAll(e.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", e.DataDir, err)
	}

	var (
		res     pipeline.Result
		runErr  error
		reading digits.Reading
	)
	img, err := trimage.Load(e.ImagePath)
	if err != nil {
		runErr = err
	} else {
		res, runErr = a.parser.Parse(img)
		reading = res.Digits
	}
	if runErr != nil {
		reading = failedReading
	}

	if runErr == nil && a.ocr != nil && res.Panel != nil {
		res.Steps = append(res.Steps, a.crossCheck(log, reading, res.Panel))
	}

	failure := ""
	if runErr != nil {
		failure = runErr.Error()
		log.Warn().Err(runErr).Str("image", e.ImagePath).Msg("analysis failed")
	} else {
		if err := os.WriteFile(e.ParsedPath(), []byte(FormatRecord(reading)), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.ParsedPath(), err)
		}
		log.Info().Str("digits", reading.String()).Msg("analysed")
	}
	e.setResult(reading, failure)

	if err := writeReport(e, runID, res.Steps, failure); err != nil {
		return reading, err
	}
	return reading, nil
}

func (a *Analyzer) crossCheck(log zerolog.Logger, reading digits.Reading, display *image.NRGBA) pipeline.Step {
	text, err := a.ocr.ReadDigits(display)
	if err != nil {
		log.Warn().Err(err).Msg("ocr cross-check failed")
		return pipeline.Step{Caption: fmt.Sprintf("Tesseract cross-check failed: %v.", err)}
	}
	if ocr.Compare(reading, text) == ocr.Disagree {
		log.Info().Str("ocr", text).Str("digits", reading.String()).Msg("ocr disagrees")
	}
	return pipeline.Step{Caption: ocr.Caption(reading, text), Images: []*image.NRGBA{display}}
}
