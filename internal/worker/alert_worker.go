package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"budgetu/internal/amqp"
	"budgetu/internal/store"
)

// AlertWorker records risk alerts consumed from the broker.
type AlertWorker struct {
	recorder store.AlertRecorder

	recorded atomic.Int64
	failed   atomic.Int64
}

func NewAlertWorker(recorder store.AlertRecorder) *AlertWorker {
	return &AlertWorker{recorder: recorder}
}

// HandleRiskAlert persists one alert. Returning an error requeues the
// delivery, so store failures are retried by the broker.
func (w *AlertWorker) HandleRiskAlert(ctx context.Context, msg *amqp.RiskAlertMessage) error {
	slog.InfoContext(ctx, "Processing risk alert",
		"alert_id", msg.ID,
		"user_id", msg.UserID,
		"month", msg.Month,
		"score", msg.Score)

	if err := w.recorder.RecordRiskAlert(ctx, msg.RiskAlert()); err != nil {
		w.failed.Add(1)
		return fmt.Errorf("record risk alert: %w", err)
	}
	w.recorded.Add(1)
	return nil
}

// Stats reports how many alerts were recorded and how many attempts failed.
func (w *AlertWorker) Stats() (recorded, failed int64) {
	return w.recorded.Load(), w.failed.Load()
}
