package event

// ModelLoaded is published once the classifier model is ready.
type ModelLoaded struct {
	Path        string
	InputShape  []int64
	OutputShape []int64
}

func NewModelLoaded(path string, inputShape, outputShape []int64) *ModelLoaded {
	return &ModelLoaded{Path: path, InputShape: inputShape, OutputShape: outputShape}
}

func (e *ModelLoaded) EventName() string {
	return "ModelLoaded"
}

// HistoryChanged is published after the prediction history has been modified.
type HistoryChanged struct {
	Count int
}

func NewHistoryChanged(count int) *HistoryChanged {
	return &HistoryChanged{Count: count}
}

func (e *HistoryChanged) EventName() string {
	return "HistoryChanged"
}
