package prediction

import (
	"image"

	"golang.org/x/image/draw"
)

// OverlayStrokeWidth is the outline thickness of the marker box in pixels.
const OverlayStrokeWidth = 5

// OverlayBox returns the marker box for an image of the given bounds.
// The box always spans 25% to 75% of width and height. Max is inclusive.
// It is decorative and does not localize anything.
func OverlayBox(bounds image.Rectangle) image.Rectangle {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	return image.Rect(
		bounds.Min.X+int(w*0.25),
		bounds.Min.Y+int(h*0.25),
		bounds.Min.X+int(w*0.75),
		bounds.Min.Y+int(h*0.75),
	)
}

// Annotate returns an RGBA copy of img with the marker box drawn when the
// label is the positive class. The source image is not modified.
func Annotate(img image.Image, label Label) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)

	if label.IsPositive() {
		drawOutline(dst, OverlayBox(b), OverlayStrokeWidth, ColorRed)
	}
	return dst
}

// drawOutline strokes box inward by width pixels. box.Max is inclusive.
func drawOutline(dst *image.RGBA, box image.Rectangle, width int, c Color) {
	src := image.NewUniform(c.RGBA())
	x0, y0, x1, y1 := box.Min.X, box.Min.Y, box.Max.X+1, box.Max.Y+1

	edges := []image.Rectangle{
		image.Rect(x0, y0, x1, y0+width),
		image.Rect(x0, y1-width, x1, y1),
		image.Rect(x0, y0, x0+width, y1),
		image.Rect(x1-width, y0, x1, y1),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}
