// Package resources holds assets embedded into the binary.
package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icons/app_256.png
var iconData []byte

// GetAppIcon returns the application icon.
func GetAppIcon() fyne.Resource {
	return &fyne.StaticResource{
		StaticName:    "app_256.png",
		StaticContent: iconData,
	}
}

// DefaultConfig is the YAML configuration applied before any user file.
//
//go:embed config/default.yaml
var DefaultConfig []byte
