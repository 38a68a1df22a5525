// Package prediction maps raw classifier output to user-facing labels
// and keeps a history of past predictions.
package prediction

import (
	"fmt"
	"image/color"
)

// Label is the user-facing classification result.
type Label string

const (
	LabelTumor        Label = "Tumor"
	LabelNoTumor      Label = "No Tumor"
	LabelUnknownShape Label = "Unknown Output Shape"
)

// Threshold is the score above which the positive class is predicted.
const Threshold float32 = 0.5

// Color returns the display color for the label.
func (l Label) Color() Color {
	switch l {
	case LabelTumor:
		return ColorRed
	case LabelNoTumor:
		return ColorGreen
	default:
		return ColorGray
	}
}

// IsPositive reports whether the label is exactly the positive class.
func (l Label) IsPositive() bool {
	return l == LabelTumor
}

// DisplayText returns the text shown in the result area.
func (l Label) DisplayText() string {
	return fmt.Sprintf("Prediction: %s", l)
}

// Color names the color a label is rendered in.
type Color int

const (
	ColorGray Color = iota
	ColorRed
	ColorGreen
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	default:
		return "gray"
	}
}

// RGBA returns the concrete color value.
func (c Color) RGBA() color.NRGBA {
	switch c {
	case ColorRed:
		return color.NRGBA{R: 0xff, A: 0xff}
	case ColorGreen:
		return color.NRGBA{G: 0x80, A: 0xff}
	default:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
}
