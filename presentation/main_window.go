package presentation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"neuroscan-go/application"
	"neuroscan-go/core/state"
	"neuroscan-go/domain/prediction"
	"neuroscan-go/infrastructure/imaging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// WindowTitle is the main window title.
const WindowTitle = "Brain Tumor Detection"

// MainWindow is the main application window.
type MainWindow struct {
	window fyne.Window
	bridge *UIEventBridge
	logger *slog.Logger

	// UI components - scan area
	loadBtn    *widget.Button
	scanCanvas *ScanCanvas
	result     *ResultView
	status     *widget.Label

	// UI components - history panel
	historyList  *HistoryList
	historyTitle *widget.Label
	clearBtn     *widget.Button

	// Cleanup
	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
	// DisplaySize is the edge of the image area in pixels.
	DisplaySize int
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DisplaySize <= 0 {
		cfg.DisplaySize = imaging.DefaultConfig().DisplaySize
	}

	w := &MainWindow{
		window: cfg.App.NewWindow(WindowTitle),
		bridge: cfg.Bridge,
		logger: cfg.Logger,
	}

	w.init(cfg.DisplaySize)
	w.setupEventCallbacks()
	if w.historyList != nil {
		if err := w.bridge.RefreshHistory(); err != nil {
			w.logger.Warn("Failed to refresh history", "error", err)
		}
	}

	w.window.SetOnDropped(w.handleDrop)
	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init(displaySize int) {
	w.loadBtn = widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), w.handleLoadImage)
	w.scanCanvas = NewScanCanvas(displaySize)
	w.result = NewResultView()
	w.status = widget.NewLabel(idleStatus)
	w.status.Importance = widget.LowImportance

	scanPanel := container.NewVBox(
		w.loadBtn,
		container.NewCenter(w.scanCanvas),
		w.result.Object(),
		w.status,
	)

	var content fyne.CanvasObject = container.NewCenter(scanPanel)

	if w.bridge != nil && w.bridge.HasHistory() {
		w.historyList = NewHistoryList(w.onHistorySelected)
		w.historyTitle = widget.NewLabel("History")
		w.clearBtn = widget.NewButtonWithIcon("Clear History", theme.DeleteIcon(), w.handleClearHistory)
		w.clearBtn.Disable()

		historyPanel := container.NewBorder(
			w.historyTitle,
			w.clearBtn,
			nil, nil,
			w.historyList,
		)

		split := container.NewHSplit(content, historyPanel)
		split.SetOffset(0.68)
		content = split
	}

	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(800, 600))
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	w.bridge.SetCallbacks(&UICallbacks{
		OnScanStarted: func(scanID, path string) {
			fyne.Do(func() {
				w.status.SetText(startedStatus(path))
			})
		},
		OnScanCompleted: func(scanID, path string, label prediction.Label) {
			fyne.Do(func() {
				w.status.SetText(completedStatus(path, label))
			})
		},
		OnScanFailed: func(scanID, path string, err error) {
			fyne.Do(func() {
				w.status.SetText(failedStatus(path))
			})
		},
		OnViewStateChanged: func(oldState, newState state.ViewState) {
			w.logger.Debug("View state changed", "from", oldState, "to", newState)
		},
		OnHistoryChanged: func(count int) {
			fyne.Do(func() {
				w.refreshHistory()
			})
		},
	})
}

// Image loading

func (w *MainWindow) handleLoadImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		w.classifyURI(reader.URI(), reader)
	}, w.window)
	fd.SetFilter(storage.NewExtensionFileFilter(imaging.SupportedExtensions()))
	fd.Show()
}

func (w *MainWindow) handleDrop(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	uri := uris[0]

	if uri.Scheme() == "file" {
		w.classifyPath(uri.Path())
		return
	}

	reader, err := storage.Reader(uri)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to open %s: %w", uri.Name(), err), w.window)
		return
	}
	defer reader.Close()

	w.classifyURI(uri, reader)
}

func (w *MainWindow) classifyURI(uri fyne.URI, reader fyne.URIReadCloser) {
	if uri.Scheme() == "file" {
		w.classifyPath(uri.Path())
		return
	}

	res, err := w.bridge.LoadImageReader(uri.Name(), reader)
	w.showOutcome(res, err)
}

// classifyPath runs the pipeline synchronously. Errors leave the display untouched.
func (w *MainWindow) classifyPath(path string) {
	res, err := w.bridge.LoadImage(path)
	w.showOutcome(res, err)
}

func (w *MainWindow) showOutcome(res *application.Result, err error) {
	if err != nil {
		dialog.ShowError(err, w.window)
		return
	}

	w.scanCanvas.SetImage(res.Display)
	w.result.Show(res.Label)
}

// History

func (w *MainWindow) refreshHistory() {
	if w.historyList == nil {
		return
	}

	items, err := w.bridge.History()
	if err != nil {
		w.logger.Warn("Failed to load history", "error", err)
		return
	}

	w.historyList.SetPredictions(items)
	w.historyTitle.SetText(fmt.Sprintf("History (%d)", len(items)))
	if len(items) == 0 {
		w.clearBtn.Disable()
	} else {
		w.clearBtn.Enable()
	}
}

func (w *MainWindow) handleClearHistory() {
	dialog.ShowConfirm("Clear History", "Remove all recorded predictions?", func(ok bool) {
		if !ok {
			return
		}
		if err := w.bridge.ClearHistory(); err != nil {
			dialog.ShowError(err, w.window)
		}
	}, w.window)
}

func (w *MainWindow) onHistorySelected(item *HistoryListItem) {
	if item.ImagePath == "" || !imaging.IsSupported(item.ImagePath) {
		return
	}
	w.classifyPath(item.ImagePath)
}

// Status line

const idleStatus = "Load an image to begin"

func startedStatus(path string) string {
	return fmt.Sprintf("Analyzing %s...", filepath.Base(path))
}

func completedStatus(path string, label prediction.Label) string {
	return fmt.Sprintf("%s: %s", filepath.Base(path), label)
}

func failedStatus(path string) string {
	return fmt.Sprintf("%s: could not be classified", filepath.Base(path))
}

// Accessors

// Window returns the underlying fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}

// ResultLabel returns the label currently displayed.
func (w *MainWindow) ResultLabel() prediction.Label {
	return w.result.Label()
}

// Show displays the main window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Cleanup releases resources.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Starting cleanup...")

		if w.bridge != nil {
			w.bridge.SetCallbacks(nil)
		}

		w.logger.Info("Cleanup completed")
	})
}
