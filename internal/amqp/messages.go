package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"budgetu/internal/core"
)

// RiskAlertMessage announces that a user's month scored High risk.
type RiskAlertMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Month     string    `json:"month"`
	Level     string    `json:"level"`
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRiskAlertMessage creates a message with a fresh random ID.
func NewRiskAlertMessage(userID, month, level string, score int, reasons []string) *RiskAlertMessage {
	return &RiskAlertMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Month:     month,
		Level:     level,
		Score:     score,
		Reasons:   append([]string{}, reasons...),
		Timestamp: time.Now().UTC(),
	}
}

// Validate rejects messages the worker could never record.
func (m *RiskAlertMessage) Validate() error {
	if _, err := uuid.Parse(m.ID); err != nil {
		return fmt.Errorf("invalid message id %q: %w", m.ID, err)
	}
	if m.UserID == "" {
		return errors.New("userId is required")
	}
	if _, err := core.ParseMonth(m.Month); err != nil {
		return err
	}
	return nil
}

// RiskAlert converts the message into the record kept by stores.
func (m *RiskAlertMessage) RiskAlert() core.RiskAlert {
	return core.RiskAlert{
		ID:       m.ID,
		UserID:   m.UserID,
		Month:    m.Month,
		Level:    m.Level,
		Score:    m.Score,
		Reasons:  append([]string(nil), m.Reasons...),
		RaisedAt: m.Timestamp,
	}
}

func (m *RiskAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RiskAlertMessageFromJSON decodes and validates a message body.
func RiskAlertMessageFromJSON(data []byte) (*RiskAlertMessage, error) {
	var msg RiskAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
