package presentation

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"neuroscan-go/domain/prediction"
)

const resultPrefix = "Prediction: "

var (
	resultBackground = color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}
	resultIdleColor  = color.NRGBA{A: 0xff}
)

// ResultView shows the colored prediction text on a light gray band.
type ResultView struct {
	text       *canvas.Text
	background *canvas.Rectangle
	object     fyne.CanvasObject
	label      prediction.Label
}

// NewResultView creates a result view showing only the prefix.
func NewResultView() *ResultView {
	t := canvas.NewText(resultPrefix, resultIdleColor)
	t.TextSize = 16
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(resultBackground)

	return &ResultView{
		text:       t,
		background: bg,
		object:     container.NewStack(bg, container.NewPadded(t)),
	}
}

// Show displays label in its color.
func (r *ResultView) Show(label prediction.Label) {
	r.label = label
	r.text.Text = label.DisplayText()
	r.text.Color = label.Color().RGBA()
	r.text.Refresh()
}

// Label returns the label currently shown, empty before the first scan.
func (r *ResultView) Label() prediction.Label {
	return r.label
}

// Text returns the displayed string.
func (r *ResultView) Text() string {
	return r.text.Text
}

// Object returns the canvas object to place in a layout.
func (r *ResultView) Object() fyne.CanvasObject {
	return r.object
}
