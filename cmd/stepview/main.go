// Command stepview shows the diagnostic steps of one analysis: pick a step
// on the left to see its caption and images.
package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	trimage "tornado-tracker/internal/image"
	"tornado-tracker/internal/tracker"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	windowWidth  = 1024
	windowHeight = 700
	minImageSide = 160
)

// viewStep is one manifest step with its images decoded.
type viewStep struct {
	Title  string
	Images []image.Image
}

// loadSteps reads the manifest in dir and decodes every step image. Images
// that fail to load are skipped.
func loadSteps(dir string) (*tracker.Manifest, []viewStep, error) {
	m, err := tracker.ReadManifest(dir)
	if err != nil {
		return nil, nil, err
	}
	steps := make([]viewStep, 0, len(m.Steps)+1)
	for _, s := range m.Steps {
		vs := viewStep{Title: fmt.Sprintf("%d. %s", s.Number, s.Caption)}
		for _, name := range s.Images {
			img, err := trimage.Load(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			vs.Images = append(vs.Images, img)
		}
		steps = append(steps, vs)
	}
	if m.Montage != "" {
		if img, err := trimage.Load(filepath.Join(dir, m.Montage)); err == nil {
			steps = append(steps, viewStep{Title: "Wheels: " + m.Digits, Images: []image.Image{img}})
		}
	}
	if m.Failure != "" {
		steps = append(steps, viewStep{Title: "Analysis failed: " + m.Failure})
	}
	return m, steps, nil
}

// minSize keeps small step images readable while shrinking large ones.
func minSize(img image.Image) fyne.Size {
	b := img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	if w <= 0 || h <= 0 {
		return fyne.NewSize(minImageSide, minImageSide)
	}
	scale := float32(minImageSide) / min(w, h)
	if max(w, h)*scale > 2*windowWidth/3 {
		scale = float32(2*windowWidth/3) / max(w, h)
	}
	return fyne.NewSize(w*scale, h*scale)
}

func stepContent(s viewStep) fyne.CanvasObject {
	caption := widget.NewLabel(s.Title)
	caption.Wrapping = fyne.TextWrapWord

	images := container.NewGridWrap(fyne.NewSize(minImageSide, minImageSide))
	if len(s.Images) == 1 {
		images = container.NewGridWrap(minSize(s.Images[0]))
	}
	for _, img := range s.Images {
		c := canvas.NewImageFromImage(img)
		c.FillMode = canvas.ImageFillContain
		c.ScaleMode = canvas.ImageScalePixels
		images.Add(c)
	}
	return container.NewBorder(caption, nil, nil, nil, container.NewScroll(images))
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: stepview <analysis_dir>")
		os.Exit(2)
	}
	dir := os.Args[1]
	m, steps, err := loadSteps(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load steps: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow(fmt.Sprintf("Steps of %d (%s)", m.Timestamp, m.Digits))

	detail := container.NewStack(widget.NewLabel("Select a step."))
	list := widget.NewList(
		func() int { return len(steps) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(steps[id].Title)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		detail.Objects = []fyne.CanvasObject{stepContent(steps[id])}
		detail.Refresh()
	}

	split := container.NewHSplit(list, detail)
	split.SetOffset(0.3)
	w.SetContent(split)
	w.Resize(fyne.NewSize(windowWidth, windowHeight))
	if len(steps) > 0 {
		list.Select(0)
	}
	w.ShowAndRun()
}
