package presentation

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ScanCanvas is a custom widget displaying the rendered scan.
type ScanCanvas struct {
	widget.BaseWidget
	canvas  *canvas.Image
	size    fyne.Size
	imageMu sync.RWMutex
	hasScan bool
}

// NewScanCanvas creates an empty canvas of the given edge length in pixels.
func NewScanCanvas(edge int) *ScanCanvas {
	sc := &ScanCanvas{
		canvas: canvas.NewImageFromImage(placeholder(edge)),
		size:   fyne.NewSize(float32(edge), float32(edge)),
	}
	sc.ExtendBaseWidget(sc)
	sc.canvas.FillMode = canvas.ImageFillContain
	sc.canvas.ScaleMode = canvas.ImageScalePixels
	sc.canvas.SetMinSize(sc.size)
	return sc
}

func placeholder(edge int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, edge, edge))
	bg := color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	for y := 0; y < edge; y++ {
		for x := 0; x < edge; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}

// SetImage replaces the displayed image. A nil image is ignored.
func (s *ScanCanvas) SetImage(img image.Image) {
	if img == nil {
		return
	}
	s.imageMu.Lock()
	s.canvas.Image = img
	s.hasScan = true
	s.imageMu.Unlock()
	s.canvas.Refresh()
	s.Refresh()
}

// GetImage returns the current image.
func (s *ScanCanvas) GetImage() image.Image {
	s.imageMu.RLock()
	defer s.imageMu.RUnlock()
	return s.canvas.Image
}

// HasScan reports whether a scan has been displayed.
func (s *ScanCanvas) HasScan() bool {
	s.imageMu.RLock()
	defer s.imageMu.RUnlock()
	return s.hasScan
}

// CreateRenderer creates the widget renderer.
func (s *ScanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.canvas)
}

// MinSize returns the minimum size of the canvas.
func (s *ScanCanvas) MinSize() fyne.Size {
	return s.size
}
