package ocr

import (
	"fmt"

	"tornado-tracker/internal/digits"
)

// Agreement compares a template reading with an OCR reading.
type Agreement int

const (
	// Agree means every wheel was read the same way.
	Agree Agreement = iota
	// Partial means the readings match wherever the template matcher
	// recognised a wheel.
	Partial
	// Disagree means at least one recognised wheel differs, or the OCR
	// reading has the wrong length.
	Disagree
)

func (a Agreement) String() string {
	switch a {
	case Agree:
		return "agrees"
	case Partial:
		return "agrees where recognised"
	default:
		return "disagrees"
	}
}

// Compare checks the OCR text against a template reading.
func Compare(r digits.Reading, text string) Agreement {
	if len(text) != len(r) {
		return Disagree
	}
	result := Agree
	for i, d := range r {
		v, ok := d.Value()
		if !ok {
			result = Partial
			continue
		}
		if int(text[i]-'0') != v {
			return Disagree
		}
	}
	return result
}

// Caption describes a cross-check for the diagnostic report.
func Caption(r digits.Reading, text string) string {
	if text == "" {
		text = "nothing"
	}
	return fmt.Sprintf("Tesseract cross-check read %q, which %s with the templates.", text, Compare(r, text))
}
