// Package pipeline reads the five wheels of the counter from one photo. It
// sequences marker detection, rectification, panel extraction and template
// matching, and records a captioned diagnostic image at every stage.
package pipeline

import (
	"errors"
	"fmt"
	"image"

	"tornado-tracker/internal/alignment"
	"tornado-tracker/internal/digits"
	trimage "tornado-tracker/internal/image"
	"tornado-tracker/internal/markers"
	"tornado-tracker/internal/panel"
	"tornado-tracker/pkg/colorutil"
	"tornado-tracker/pkg/geometry"

	"github.com/rs/zerolog"
)

const (
	// DefaultThumbnailWidth is the width marker detection runs at.
	DefaultThumbnailWidth = 300
	// groupDiameterRatio sizes marker clusters relative to the thumbnail.
	groupDiameterRatio = 0.08
	// PanelStep is the 1-based number of the step whose image is the trimmed
	// digit display.
	PanelStep = 8
	// ParsedStep holds the classified wheels of a complete run.
	ParsedStep = 10
)

// Options configures a Parser.
type Options struct {
	ThumbnailWidth int
	Logger         zerolog.Logger
}

// Step is one diagnostic record: a caption and the images it refers to.
type Step struct {
	Caption string
	Images  []*image.NRGBA
}

// Result is the outcome of one run.
type Result struct {
	Digits digits.Reading
	Steps  []Step
	// Panel is the trimmed digit display, or nil when the run stopped
	// before reaching it.
	Panel *image.NRGBA
}

// Parser runs the pipeline. It holds no per-run state and may be shared.
type Parser struct {
	thumbWidth int
	log        zerolog.Logger
}

// NewParser returns a Parser. Zero options fall back to defaults; the zero
// Logger discards everything.
func NewParser(opts Options) *Parser {
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = DefaultThumbnailWidth
	}
	return &Parser{thumbWidth: opts.ThumbnailWidth, log: opts.Logger}
}

// run is the state of a single Parse call.
type run struct {
	log   zerolog.Logger
	steps []Step
	panel *image.NRGBA
}

func (r *run) step(images []*image.NRGBA, format string, args ...any) {
	caption := fmt.Sprintf(format, args...)
	r.steps = append(r.steps, Step{Caption: caption, Images: images})
	r.log.Debug().Int("step", len(r.steps)).Msg(caption)
}

func (r *run) fail(stage Stage, err error) (Result, error) {
	r.log.Debug().Str("stage", string(stage)).Err(err).Msg("run aborted")
	return Result{
		Digits: digits.Unreadable(panel.DigitCount),
		Steps:  r.steps,
		Panel:  r.panel,
	}, &FatalError{Stage: stage, Err: err}
}

// Parse reads the counter in img. img is never modified. On a fatal error
// the Result holds unrecognized digits and the steps recorded so far.
func (p *Parser) Parse(img *image.NRGBA) (Result, error) {
	r := &run{log: p.log}
	if img == nil || img.Bounds().Empty() {
		return r.fail(StageResize, errors.New("empty image"))
	}

	thumb, ratio := trimage.Thumbnail(img, p.thumbWidth)
	if thumb.Bounds().Empty() {
		return r.fail(StageResize, fmt.Errorf("image %v too small to thumbnail", img.Bounds().Size()))
	}
	r.step([]*image.NRGBA{thumb}, "Resized image down to %dx%d for marker detection.",
		thumb.Bounds().Dx(), thumb.Bounds().Dy())

	diameter := groupDiameterRatio * float64(max(thumb.Bounds().Dx(), thumb.Bounds().Dy()))
	reds := markers.FindGroups(markers.FindClass(thumb, markers.RedTargets), diameter)
	greens := markers.FindGroups(markers.FindClass(thumb, markers.GreenTargets), diameter)
	markers.SortByCount(reds)
	markers.SortByCount(greens)

	a := trimage.NewAnnotator(thumb)
	for i, g := range reds {
		a.MarkPoint(g.Center, colorutil.Red, diameter, 2*i+1)
	}
	for i, g := range greens {
		a.MarkPoint(g.Center, colorutil.Green, diameter, 2*i+1)
	}
	r.step([]*image.NRGBA{a.Image()},
		"Found %d red groups & %d green groups (thicker strokes mark denser groups).", len(reds), len(greens))

	redPick, redErr := markers.Heaviest(reds, 2)
	greenPick, greenErr := markers.Heaviest(greens, 2)

	a = trimage.NewAnnotator(thumb)
	for _, g := range lastN(reds, 2) {
		a.MarkPoint(g.Center, colorutil.Red, diameter, 2)
	}
	for _, g := range lastN(greens, 2) {
		a.MarkPoint(g.Center, colorutil.Green, diameter, 2)
	}
	r.step([]*image.NRGBA{a.Image()}, "Picked the 2 heaviest red groups and the 2 heaviest green groups.")

	if err := errors.Join(redErr, greenErr); err != nil {
		return r.fail(StageMarkers, err)
	}

	b1, b2 := redPick[0].Center, redPick[1].Center
	t1, t2 := greenPick[0].Center, greenPick[1].Center
	edges := alignment.PairEdges(b1, b2, t1, t2)
	for _, e := range edges {
		if e.Length() == 0 {
			return r.fail(StagePairing, alignment.ErrDegenerateEdge)
		}
	}
	angle := alignment.RotationAngle(edges)

	a = trimage.NewAnnotator(thumb)
	a.Line(edges[0].Bottom, edges[0].Top, colorutil.Orange, 5)
	a.Line(edges[1].Bottom, edges[1].Top, colorutil.Red, 5)
	r.step([]*image.NRGBA{a.Image()},
		"Vertical edge (orange) needs %.2f degrees ccw and vertical edge (red) needs %.2f degrees ccw. "+
			"Their circular mean is %.2f degrees; rotating %.2f degrees ccw including a %.1f degree offset.",
		edges[0].CCWAngle(), edges[1].CCWAngle(), angle, angle+alignment.MagicOffset, alignment.MagicOffset)

	// Back to full resolution.
	full := make([]geometry.Point2D, 0, 4)
	for _, e := range edges {
		full = append(full, e.Bottom.Scale(ratio), e.Top.Scale(ratio))
	}
	rot, err := alignment.NewRotation(angle+alignment.MagicOffset, full)
	if err != nil {
		return r.fail(StageRectify, err)
	}
	rotated := alignment.WarpAffine(img, rot)
	moved := rot.Apply(full...)

	corners, err := alignment.LabelCorners(
		alignment.Edge{Bottom: moved[0], Top: moved[1]},
		alignment.Edge{Bottom: moved[2], Top: moved[3]},
	)
	if err != nil {
		return r.fail(StageCorners, err)
	}

	a = trimage.NewAnnotator(rotated)
	a.MarkPoint(corners.BL, colorutil.Red, 100, 5)
	a.MarkPoint(corners.BR, colorutil.Orange, 100, 5)
	a.MarkPoint(corners.TL, colorutil.Green, 100, 5)
	a.MarkPoint(corners.TR, colorutil.Blue, 100, 5)
	r.step([]*image.NRGBA{a.Image()},
		"Rotated and clipped image. Corners: bl (red), br (orange), tl (green), tr (blue).")

	if err := alignment.CheckRectangle(corners, rot.Size.X, rot.Size.Y); err != nil {
		return r.fail(StageCorners, err)
	}

	box, err := panel.FindBlackArea(rotated, corners)
	if err != nil {
		return r.fail(StageBlackArea, err)
	}
	a = trimage.NewAnnotator(rotated)
	a.HLine(box.Min.Y, colorutil.Red, 5)
	a.HLine(box.Max.Y, colorutil.Red, 5)
	a.VLine(box.Min.X, colorutil.Red, 5)
	a.VLine(box.Max.X, colorutil.Red, 5)
	r.step([]*image.NRGBA{a.Image()}, "Found black area boundaries.")

	area := trimage.Crop(rotated, box)
	r.step([]*image.NRGBA{area}, "Cropped out black area.")

	display := panel.TrimMargins(area)
	r.panel = display
	r.step([]*image.NRGBA{display}, "Cropped out excess black.")
	if err := panel.CheckAspect(display); err != nil {
		return r.fail(StageMargins, err)
	}

	slots := panel.SplitDigits(display)
	for i, s := range slots {
		if s.Bounds().Empty() {
			return r.fail(StageSegment, fmt.Errorf("%w: digit %d has no pixels", panel.ErrEmptyArea, i+1))
		}
		panel.Binarize(s)
	}
	r.step(slots, "Extracted digits.")

	reading := make(digits.Reading, len(slots))
	marked := make([]*image.NRGBA, len(slots))
	for i, s := range slots {
		d, m := digits.Identify(s)
		reading[i] = d
		marked[i] = digits.Annotate(s, m)
	}
	r.step(marked, "Parsed digits: %s.", reading)

	r.log.Debug().Str("digits", reading.String()).Msg("run complete")
	return Result{Digits: reading, Steps: r.steps, Panel: display}, nil
}

// Captions returns the caption of every step, in order.
func (res Result) Captions() []string {
	out := make([]string, len(res.Steps))
	for i, s := range res.Steps {
		out[i] = s.Caption
	}
	return out
}

// Summary is a one-line description for logs.
func (res Result) Summary() string {
	return fmt.Sprintf("%s after %d steps", res.Digits, len(res.Steps))
}

func lastN(groups []*markers.Group, n int) []*markers.Group {
	if len(groups) < n {
		return groups
	}
	return groups[len(groups)-n:]
}
