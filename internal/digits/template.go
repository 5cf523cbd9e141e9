package digits

import (
	"image"
	"image/color"
	"math"

	"tornado-tracker/pkg/colorutil"
)

// Wiggle window: the fraction of the slot width and height a template may be
// shifted by when looking for a match.
const (
	wiggleX = 0.06
	wiggleY = 0.20
)

// Template describes one glyph by pixels that must be white (On) and pixels
// that must be black (Off), in a Width x Height reference frame.
type Template struct {
	Value         int
	Width, Height int
	On, Off       []image.Point
}

// Match is a successful template alignment.
type Match struct {
	Template *Template
	Offset   image.Point
}

// scale maps a reference-frame mark into a w x h slot.
func (t *Template) scale(m image.Point, w, h int) image.Point {
	return image.Point{
		X: int(float64(m.X) / float64(t.Width) * float64(w)),
		Y: int(float64(m.Y) / float64(t.Height) * float64(h)),
	}
}

// Window returns the half-extent of the offset search for a w x h slot.
func Window(w, h int) (int, int) {
	return int(math.Ceil(wiggleX * float64(w))), int(math.Ceil(wiggleY * float64(h)))
}

// Match looks for an offset at which every mark lands in bounds on a pixel
// of the right colour. Offsets are tried with x outermost, from the most
// negative shift up; the first perfect fit wins.
func (t *Template) Match(slot *image.NRGBA) (image.Point, bool) {
	w, h := slot.Bounds().Dx(), slot.Bounds().Dy()
	wx, wy := Window(w, h)
	for dx := -wx; dx < wx; dx++ {
		for dy := -wy; dy < wy; dy++ {
			off := image.Pt(dx, dy)
			if t.fits(slot, w, h, off) {
				return off, true
			}
		}
	}
	return image.Point{}, false
}

func (t *Template) fits(slot *image.NRGBA, w, h int, off image.Point) bool {
	check := func(marks []image.Point, white bool) bool {
		for _, m := range marks {
			p := t.scale(m, w, h).Add(off)
			if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
				return false
			}
			i := p.Y*slot.Stride + p.X*4
			sum := colorutil.Sum(slot.Pix[i], slot.Pix[i+1], slot.Pix[i+2])
			if white && sum != 3*255 || !white && sum != 0 {
				return false
			}
		}
		return true
	}
	return check(t.On, true) && check(t.Off, false)
}

// Identify tries every template of the library in order and returns the
// first match. A miss yields Unrecognized.
func Identify(slot *image.NRGBA) (Digit, *Match) {
	for _, t := range Library {
		if off, ok := t.Match(slot); ok {
			return Known(t.Value), &Match{Template: t, Offset: off}
		}
	}
	return Unrecognized, nil
}

// Annotate returns a copy of slot with the marks of m painted in: red where
// white was required, green where black was required.
func Annotate(slot *image.NRGBA, m *Match) *image.NRGBA {
	out := image.NewNRGBA(slot.Bounds())
	copy(out.Pix, slot.Pix)
	if m == nil {
		return out
	}
	w, h := slot.Bounds().Dx(), slot.Bounds().Dy()
	paint := func(marks []image.Point, c color.RGBA) {
		for _, mk := range marks {
			p := m.Template.scale(mk, w, h).Add(m.Offset)
			out.Set(p.X+out.Rect.Min.X, p.Y+out.Rect.Min.Y, c)
		}
	}
	paint(m.Template.On, colorutil.Red)
	paint(m.Template.Off, colorutil.RGB{G: 255}.RGBA())
	return out
}
