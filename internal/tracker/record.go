package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"tornado-tracker/internal/digits"
)

// noDigit marks an unrecognized wheel in parsed.txt and .training files.
const noDigit = "None"

// FormatRecord renders a reading one wheel per line.
func FormatRecord(r digits.Reading) string {
	var b strings.Builder
	for _, d := range r {
		if v, ok := d.Value(); ok {
			b.WriteString(strconv.Itoa(v))
		} else {
			b.WriteString(noDigit)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseRecord reads a reading written by FormatRecord. Blank lines are
// skipped. A line that is neither None nor a digit is an error in strict
// mode; otherwise the whole record reads as a single unrecognized wheel.
func ParseRecord(data string, strict bool) (digits.Reading, error) {
	var r digits.Reading
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == noDigit:
			r = append(r, digits.Unrecognized)
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil || v < 0 || v > 9 {
			if strict {
				return nil, fmt.Errorf("%w: %q is not a digit", ErrBadRecord, line)
			}
			return digits.Reading{digits.Unrecognized}, nil
		}
		r = append(r, digits.Known(v))
	}
	return r, nil
}
