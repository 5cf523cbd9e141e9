package tracker

import (
	"errors"
	"time"

	"tornado-tracker/internal/pipeline"

	"github.com/rs/zerolog"
)

// Tracker ties analysis to a registry: each handled image is analysed, put
// in the registry and the directory index is rewritten.
type Tracker struct {
	Registry *Registry
	// NewReader opens the optional OCR cross-check for one worker. Nil
	// disables the cross-check.
	NewReader func() (DigitReader, func() error, error)
	Parser    *pipeline.Parser
	Log       zerolog.Logger
}

// NewHandler returns a Handler with its own Analyzer, for Watcher.
func (t *Tracker) NewHandler() (Handler, error) {
	var (
		reader  DigitReader
		closeFn = func() error { return nil }
	)
	if t.NewReader != nil {
		r, c, err := t.NewReader()
		if err != nil {
			return nil, err
		}
		reader, closeFn = r, c
	}
	return &worker{
		t:        t,
		analyzer: NewAnalyzer(t.Parser, reader, t.Log),
		close:    closeFn,
	}, nil
}

// Process analyses one image synchronously and updates the index.
func (t *Tracker) Process(path string, forceReparse bool) (*Entry, error) {
	h, err := t.NewHandler()
	if err != nil {
		return nil, err
	}
	defer h.Close()
	return h.(*worker).process(path, forceReparse)
}

type worker struct {
	t        *Tracker
	analyzer *Analyzer
	close    func() error
}

func (w *worker) Handle(path string, forceReparse bool) {
	if _, err := w.process(path, forceReparse); err != nil {
		if errors.Is(err, ErrNotTimestamp) {
			w.t.Log.Warn().Str("image", path).Msg("skipping image without a timestamp name")
			return
		}
		w.t.Log.Error().Err(err).Str("image", path).Msg("processing failed")
	}
}

func (w *worker) process(path string, forceReparse bool) (*Entry, error) {
	ts, err := ParseTimestamp(path)
	if err != nil {
		return nil, err
	}
	unlock := w.t.Registry.lock(ts)
	e, err := NewEntry(path, w.t.Registry.Dir())
	if err == nil {
		_, err = w.analyzer.Digits(e, forceReparse)
	}
	unlock()
	if err != nil {
		return e, err
	}
	w.t.Registry.Put(e)

	w.t.Log.Info().
		Int64("timestamp", e.Timestamp).
		Str("status", string(e.Status())).
		Str("report", e.ReportPath()).
		Msg("processed")
	return e, w.t.Registry.WriteIndex(time.Now())
}

func (w *worker) Close() error {
	return w.close()
}
