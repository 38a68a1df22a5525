package presentation

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"neuroscan-go/domain/prediction"
)

// HistoryListItem represents a single row in the history list.
type HistoryListItem struct {
	ID        string
	ImagePath string
	FileName  string
	Label     prediction.Label
	Time      string
}

// HistoryList is a scrollable list of past predictions with color indicators.
type HistoryList struct {
	widget.List
	items      []*HistoryListItem
	itemsMu    sync.RWMutex
	onSelected func(item *HistoryListItem)
}

// NewHistoryList creates a new history list widget.
func NewHistoryList(onSelected func(item *HistoryListItem)) *HistoryList {
	hl := &HistoryList{
		items:      make([]*HistoryListItem, 0),
		onSelected: onSelected,
	}

	hl.List = widget.List{
		Length: func() int {
			hl.itemsMu.RLock()
			defer hl.itemsMu.RUnlock()
			return len(hl.items)
		},
		CreateItem: func() fyne.CanvasObject {
			return hl.createItem()
		},
		UpdateItem: func(id widget.ListItemID, item fyne.CanvasObject) {
			hl.updateItem(id, item)
		},
	}

	hl.List.OnSelected = func(id widget.ListItemID) {
		item := hl.ItemAt(id)
		if item != nil && hl.onSelected != nil {
			hl.onSelected(item)
		}
		hl.UnselectAll()
	}

	hl.ExtendBaseWidget(hl)
	return hl
}

func (hl *HistoryList) createItem() fyne.CanvasObject {
	indicator := canvas.NewCircle(color.RGBA{128, 128, 128, 255})
	indicator.Resize(fyne.NewSize(12, 12))

	label := widget.NewLabel("Label - file")

	row := container.NewHBox(
		container.NewCenter(container.NewGridWrap(fyne.NewSize(20, 20), indicator)),
		label,
	)

	return container.NewPadded(row)
}

func (hl *HistoryList) updateItem(id widget.ListItemID, item fyne.CanvasObject) {
	data := hl.ItemAt(id)
	if data == nil {
		return
	}

	paddedContainer := item.(*fyne.Container)
	hbox := paddedContainer.Objects[0].(*fyne.Container)

	indicatorContainer := hbox.Objects[0].(*fyne.Container)
	gridWrap := indicatorContainer.Objects[0].(*fyne.Container)
	indicator := gridWrap.Objects[0].(*canvas.Circle)
	indicator.FillColor = data.Label.Color().RGBA()
	indicator.Refresh()

	label := hbox.Objects[1].(*widget.Label)
	label.SetText(data.Text())
}

// Text returns the row caption.
func (i *HistoryListItem) Text() string {
	return fmt.Sprintf("%s  %s  %s", i.Time, i.Label, i.FileName)
}

// SetPredictions replaces the list contents.
func (hl *HistoryList) SetPredictions(predictions []*prediction.Prediction) {
	items := make([]*HistoryListItem, len(predictions))
	for i, p := range predictions {
		items[i] = &HistoryListItem{
			ID:        p.ID,
			ImagePath: p.ImagePath,
			FileName:  p.FileName(),
			Label:     p.Label,
			Time:      p.CreatedAt.Local().Format("15:04:05"),
		}
	}

	hl.itemsMu.Lock()
	hl.items = items
	hl.itemsMu.Unlock()

	hl.Refresh()
}

// Count returns the number of rows.
func (hl *HistoryList) Count() int {
	hl.itemsMu.RLock()
	defer hl.itemsMu.RUnlock()
	return len(hl.items)
}

// ItemAt returns the row at index, or nil if out of bounds.
func (hl *HistoryList) ItemAt(index int) *HistoryListItem {
	hl.itemsMu.RLock()
	defer hl.itemsMu.RUnlock()
	if index < 0 || index >= len(hl.items) {
		return nil
	}
	return hl.items[index]
}
