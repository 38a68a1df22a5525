// Package command defines all commands that can be sent to the application.
// Commands represent user intentions and are processed by the application layer.
package command

// Command is the base interface for all commands.
// Commands are sent from the presentation layer to the application layer.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}

// ClassifyImage runs the pipeline on the image at Path.
type ClassifyImage struct {
	Path string
}

func NewClassifyImage(path string) *ClassifyImage {
	return &ClassifyImage{Path: path}
}

func (c *ClassifyImage) CommandName() string {
	return "ClassifyImage"
}

// ClearHistory removes every recorded prediction.
type ClearHistory struct{}

func (c *ClearHistory) CommandName() string {
	return "ClearHistory"
}

// RefreshHistory asks for the most recent Limit predictions to be reloaded.
type RefreshHistory struct {
	Limit int
}

func (c *RefreshHistory) CommandName() string {
	return "RefreshHistory"
}
