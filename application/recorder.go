package application

import (
	"context"
	"log/slog"
	"time"

	"neuroscan-go/core/event"
	"neuroscan-go/core/eventbus"
	"neuroscan-go/domain/prediction"
)

const recordTimeout = 5 * time.Second

// HistoryRecorder persists every completed scan. Storage errors are logged only.
type HistoryRecorder struct {
	history        *prediction.Service
	eventBus       eventbus.EventBus
	logger         *slog.Logger
	subscriptionID string
}

// NewHistoryRecorder subscribes to completed scans on bus.
func NewHistoryRecorder(history *prediction.Service, bus eventbus.EventBus, logger *slog.Logger) *HistoryRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &HistoryRecorder{history: history, eventBus: bus, logger: logger}
	r.subscriptionID = bus.SubscribeNamed(r.handleEvent, (&event.ScanCompleted{}).EventName())
	return r
}

// Close unsubscribes from the event bus.
func (r *HistoryRecorder) Close() {
	if r.subscriptionID != "" {
		r.eventBus.Unsubscribe(r.subscriptionID)
		r.subscriptionID = ""
	}
}

func (r *HistoryRecorder) handleEvent(e event.Event) {
	evt, ok := e.(*event.ScanCompleted)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	p := &prediction.Prediction{
		ID:          evt.ScanID(),
		ImagePath:   evt.Path,
		Label:       prediction.Label(evt.Label),
		Scores:      evt.Scores,
		OutputShape: evt.OutputShape,
		CreatedAt:   evt.CompletedAt,
	}
	if err := r.history.Record(ctx, p); err != nil {
		r.logger.Error("Failed to record prediction", "scan_id", evt.ScanID(), "error", err)
		return
	}

	n, err := r.history.Count(ctx)
	if err != nil {
		r.logger.Warn("Failed to count history", "error", err)
		return
	}
	r.eventBus.Publish(event.NewHistoryChanged(n))
}
