package tracker

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	trimage "tornado-tracker/internal/image"
	"tornado-tracker/internal/pipeline"
)

// Manifest lists the steps of one analysis for viewers other than the HTML
// report.
type Manifest struct {
	RunID     string         `json:"run_id"`
	Timestamp int64          `json:"timestamp"`
	Image     string         `json:"image"`
	Digits    string         `json:"digits"`
	Failure   string         `json:"failure,omitempty"`
	Montage   string         `json:"montage,omitempty"`
	Steps     []ManifestStep `json:"steps"`
}

// ManifestStep is one captioned step and its image files.
type ManifestStep struct {
	Number  int      `json:"number"`
	Caption string   `json:"caption"`
	Images  []string `json:"images"`
}

// ReadManifest loads steps.json from an entry folder.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	return &m, nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<head><title>{{.Timestamp}}</title></head>
<body>
{{- range .Steps}}
<h2>{{.Number}}. {{.Caption}}</h2>
{{- range .Images}}
<img src="{{.}}"/>
{{- end}}
{{- end}}
{{- if .Montage}}
<h2>Wheels</h2>
<img src="{{.Montage}}"/>
{{- end}}
{{- if .Failure}}
<h2>Analysis failed</h2>
<pre>{{.Failure}}</pre>
{{- end}}
</body>
</html>
`))

// writeReport saves every step image and writes index.html and steps.json.
func writeReport(e *Entry, runID string, steps []pipeline.Step, failure string) error {
	m := Manifest{
		RunID:     runID,
		Timestamp: e.Timestamp,
		Image:     e.ImagePath,
		Digits:    e.Digits().String(),
		Failure:   failure,
		Steps:     make([]ManifestStep, 0, len(steps)),
	}
	for i, s := range steps {
		ms := ManifestStep{Number: i + 1, Caption: s.Caption, Images: make([]string, 0, len(s.Images))}
		for n, img := range s.Images {
			name := StepImageName(i+1, n)
			if err := trimage.Save(img, filepath.Join(e.DataDir, name)); err != nil {
				return err
			}
			ms.Images = append(ms.Images, name)
		}
		m.Steps = append(m.Steps, ms)
	}

	if failure == "" && len(steps) >= pipeline.ParsedStep {
		if last := steps[pipeline.ParsedStep-1]; len(last.Images) > 0 {
			labels := make([]string, len(e.Digits()))
			for i, d := range e.Digits() {
				labels[i] = d.String()
			}
			if err := trimage.Save(trimage.Montage(last.Images, labels), filepath.Join(e.DataDir, DigitsFile)); err != nil {
				return err
			}
			m.Montage = DigitsFile
		}
	}

	f, err := os.Create(e.ReportPath())
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := reportTemplate.Execute(f, m); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.DataDir, ManifestFile), data, 0o644)
}
