package worker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"budgetu/internal/amqp"
	"budgetu/internal/core"
	"budgetu/internal/store/memory"
)

type brokenRecorder struct{}

func (brokenRecorder) RecordRiskAlert(context.Context, core.RiskAlert) error {
	return errors.New("database is locked")
}

func TestAlertWorker_HandleRiskAlert(t *testing.T) {
	mem := memory.New()
	w := NewAlertWorker(mem)
	msg := amqp.NewRiskAlertMessage("u1", "2026-02", "High", 40, []string{"You are spending more than your income this month"})

	if err := w.HandleRiskAlert(context.Background(), msg); err != nil {
		t.Fatalf("HandleRiskAlert: %v", err)
	}

	alerts := mem.RiskAlerts()
	if len(alerts) != 1 {
		t.Fatalf("expected one recorded alert, got %d", len(alerts))
	}
	if alerts[0].ID != msg.ID || alerts[0].UserID != "u1" || alerts[0].Score != 40 || !alerts[0].RaisedAt.Equal(msg.Timestamp) {
		t.Fatalf("unexpected alert: %+v", alerts[0])
	}
	if recorded, failed := w.Stats(); recorded != 1 || failed != 0 {
		t.Fatalf("stats = %d/%d, want 1/0", recorded, failed)
	}
}

func TestAlertWorker_RecorderFailure(t *testing.T) {
	w := NewAlertWorker(brokenRecorder{})
	msg := amqp.NewRiskAlertMessage("u1", "2026-02", "High", 60, nil)

	err := w.HandleRiskAlert(context.Background(), msg)
	if err == nil || !strings.Contains(err.Error(), "record risk alert: database is locked") {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorded, failed := w.Stats(); recorded != 0 || failed != 1 {
		t.Fatalf("stats = %d/%d, want 0/1", recorded, failed)
	}
}
