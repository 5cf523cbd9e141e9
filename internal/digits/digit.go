// Package digits classifies binarized counter wheels by matching them against
// hand-drawn templates of expected foreground and background pixels.
package digits

import "strconv"

// Digit is the reading of one wheel: a value 0-9 or Unrecognized.
type Digit struct {
	value int
	ok    bool
}

// Unrecognized is the reading of a wheel no template matched.
var Unrecognized = Digit{}

// Known returns the reading for value v.
func Known(v int) Digit {
	return Digit{value: v, ok: true}
}

// Value returns the digit and whether it was recognised.
func (d Digit) Value() (int, bool) {
	return d.value, d.ok
}

// Recognized reports whether the wheel was read.
func (d Digit) Recognized() bool { return d.ok }

func (d Digit) String() string {
	if !d.ok {
		return "?"
	}
	return strconv.Itoa(d.value)
}

// Reading is the ordered sequence of wheel readings, leftmost first.
type Reading []Digit

// Unreadable returns a reading of n unrecognized wheels.
func Unreadable(n int) Reading {
	return make(Reading, n)
}

// Complete reports whether every wheel was recognised.
func (r Reading) Complete() bool {
	if len(r) == 0 {
		return false
	}
	for _, d := range r {
		if !d.ok {
			return false
		}
	}
	return true
}

// Value returns the counter value when the reading is complete.
func (r Reading) Value() (int, bool) {
	if !r.Complete() {
		return 0, false
	}
	v := 0
	for _, d := range r {
		v = v*10 + d.value
	}
	return v, true
}

// String joins the digits with spaces, "?" standing for unrecognized wheels.
func (r Reading) String() string {
	s := ""
	for i, d := range r {
		if i > 0 {
			s += " "
		}
		s += d.String()
	}
	return s
}
