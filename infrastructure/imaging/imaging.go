// Package imaging decodes user-selected images and turns them into model
// input tensors and display copies.
package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"neuroscan-go/domain/prediction"
	"neuroscan-go/infrastructure/logging"
)

// ErrUnsupportedFormat is returned when the file is not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Layout is the channel ordering of the model input tensor.
type Layout int

const (
	// LayoutNHWC is batch, height, width, channels.
	LayoutNHWC Layout = iota
	// LayoutNCHW is batch, channels, height, width.
	LayoutNCHW
)

func (l Layout) String() string {
	if l == LayoutNCHW {
		return "NCHW"
	}
	return "NHWC"
}

// supportedExtensions lists the file types offered by the file picker.
var supportedExtensions = []string{".jpg", ".jpeg", ".png"}

// SupportedExtensions returns the extensions offered by the file picker.
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// IsSupported reports whether path has a supported image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range supportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Config controls the loader's output sizes.
type Config struct {
	// InputSize is the square edge length fed to the model.
	InputSize int
	// DisplaySize is the square edge length of the display copy.
	DisplaySize int
	// Layout is the tensor channel ordering.
	Layout Layout
}

// DefaultConfig returns the sizes used by the bundled model.
func DefaultConfig() Config {
	return Config{
		InputSize:   128,
		DisplaySize: 300,
		Layout:      LayoutNHWC,
	}
}

// Sample is one decoded image prepared for a single inference.
type Sample struct {
	Path    string
	Format  string
	Input   *prediction.Input
	Display *image.RGBA
}

// Loader turns image files into Samples.
type Loader struct {
	cfg Config
}

// NewLoader creates a loader. Non-positive sizes fall back to defaults.
func NewLoader(cfg Config) *Loader {
	def := DefaultConfig()
	if cfg.InputSize <= 0 {
		cfg.InputSize = def.InputSize
	}
	if cfg.DisplaySize <= 0 {
		cfg.DisplaySize = def.DisplaySize
	}
	return &Loader{cfg: cfg}
}

// Config returns the loader's effective configuration.
func (l *Loader) Config() Config {
	return l.cfg
}

// Load reads and prepares the image at path.
func (l *Loader) Load(ctx context.Context, path string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return l.LoadReader(ctx, path, f)
}

// LoadReader prepares an image read from r. name is used for reporting only.
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader) (*Sample, error) {
	img, format, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(name), err)
	}

	logging.From(ctx).Debug("Image decoded",
		"path", name,
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return &Sample{
		Path:    name,
		Format:  format,
		Input:   Tensor(img, l.cfg.InputSize, l.cfg.Layout),
		Display: DisplayCopy(img, l.cfg.DisplaySize),
	}, nil
}

// Decode decodes a JPEG or PNG image.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", fmt.Errorf("failed to decode image: empty bounds %v", b)
	}
	return img, format, nil
}

// Tensor resizes img to size x size by point sampling at pixel centres and
// returns RGB values scaled to [0,1] with a leading batch dimension of 1.
// Every output value is a copy of one source pixel; nothing is blended.
func Tensor(img image.Image, size int, layout Layout) *prediction.Input {
	resized := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	plane := size * size
	data := make([]float32, plane*3)

	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := resized.NRGBAAt(x, y)
			r := float32(c.R) / 255.0
			g := float32(c.G) / 255.0
			bl := float32(c.B) / 255.0

			if layout == LayoutNCHW {
				data[i] = r
				data[plane+i] = g
				data[2*plane+i] = bl
			} else {
				data[i*3] = r
				data[i*3+1] = g
				data[i*3+2] = bl
			}
			i++
		}
	}

	s := int64(size)
	shape := []int64{1, s, s, 3}
	if layout == LayoutNCHW {
		shape = []int64{1, 3, s, s}
	}
	return &prediction.Input{Shape: shape, Data: data}
}

// DisplayCopy returns an opaque RGB copy of img scaled to size x size with
// bicubic filtering. Transparent areas become white.
func DisplayCopy(img image.Image, size int) *image.RGBA {
	resized := resize.Resize(uint(size), uint(size), img, resize.Bicubic)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), resized, resized.Bounds().Min, draw.Over)
	return dst
}

// ResolveLayout maps a configured layout name to a Layout. "auto" or an
// empty name infers it from the model input shape.
func ResolveLayout(name string, shape []int64) (Layout, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return LayoutFromShape(shape), nil
	case "nhwc":
		return LayoutNHWC, nil
	case "nchw":
		return LayoutNCHW, nil
	default:
		return LayoutNHWC, fmt.Errorf("unknown tensor layout %q", name)
	}
}

// LayoutFromShape infers the tensor layout from a model input shape.
// A 4D shape whose second dimension is 3 and whose last is not is channels-first.
func LayoutFromShape(shape []int64) Layout {
	if len(shape) == 4 && shape[1] == 3 && shape[3] != 3 {
		return LayoutNCHW
	}
	return LayoutNHWC
}

// SizeFromShape returns the square spatial size declared by a model input
// shape, or 0 when the shape is dynamic or not square.
func SizeFromShape(shape []int64) int {
	if len(shape) != 4 {
		return 0
	}
	h, w := shape[1], shape[2]
	if LayoutFromShape(shape) == LayoutNCHW {
		h, w = shape[2], shape[3]
	}
	if h <= 0 || h != w {
		return 0
	}
	return int(h)
}
