package event

import "time"

// ScanStarted is published when an image has been chosen for classification.
type ScanStarted struct {
	baseScanEvent
	Path string
}

func NewScanStarted(scanID, path string) *ScanStarted {
	return &ScanStarted{
		baseScanEvent: baseScanEvent{scanID: scanID},
		Path:          path,
	}
}

func (e *ScanStarted) EventName() string {
	return "ScanStarted"
}

// ScanCompleted is published when a label has been produced for an image.
type ScanCompleted struct {
	baseScanEvent
	Path        string
	Label       string
	Scores      []float32
	OutputShape []int64
	CompletedAt time.Time
}

func NewScanCompleted(scanID, path, label string, scores []float32, outputShape []int64) *ScanCompleted {
	return &ScanCompleted{
		baseScanEvent: baseScanEvent{scanID: scanID},
		Path:          path,
		Label:         label,
		Scores:        scores,
		OutputShape:   outputShape,
		CompletedAt:   time.Now(),
	}
}

func (e *ScanCompleted) EventName() string {
	return "ScanCompleted"
}

// ScanFailed is published when any pipeline stage fails.
type ScanFailed struct {
	baseScanEvent
	Path  string
	Error error
}

func NewScanFailed(scanID, path string, err error) *ScanFailed {
	return &ScanFailed{
		baseScanEvent: baseScanEvent{scanID: scanID},
		Path:          path,
		Error:         err,
	}
}

func (e *ScanFailed) EventName() string {
	return "ScanFailed"
}
