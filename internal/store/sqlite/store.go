// Package sqlite implements the store ports on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgetu/internal/core"
	"budgetu/internal/store"

	_ "modernc.org/sqlite"
)

// timestampLayouts covers RFC 3339 and SQLite's CURRENT_TIMESTAMP format.
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", core.DateLayout}

type Store struct {
	db *sql.DB
}

// Open creates the database directory if needed, opens the file and
// applies pending migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, userID string) (core.Profile, error) {
	var income sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT monthly_income FROM profiles WHERE id = ?`, userID).Scan(&income)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, fmt.Errorf("%w: %s", store.ErrProfileNotFound, userID)
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("Profile query failed: %w", err)
	}
	return core.NewProfile(userID, core.ParseAmount(income.String)), nil
}

func (s *Store) ListMonthExpenses(ctx context.Context, userID string, month core.Month) ([]core.Expense, error) {
	start, end := month.Range()
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, category, amount FROM expenses
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date DESC`,
		userID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("Expenses query failed: %w", err)
	}
	defer rows.Close()

	out := make([]core.Expense, 0)
	for rows.Next() {
		var (
			rawDate  string
			category string
			amount   sql.NullString
		)
		if err := rows.Scan(&rawDate, &category, &amount); err != nil {
			return nil, fmt.Errorf("Expenses query failed: %w", err)
		}
		date, err := core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("Expenses query failed: %w", err)
		}
		out = append(out, core.Expense{
			UserID:   userID,
			Date:     date,
			Category: category,
			Amount:   core.ParseAmount(amount.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Expenses query failed: %w", err)
	}
	return out, nil
}

func (s *Store) ListSavingsGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, target_amount, current_amount, created_at FROM savings_goals
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("Goals query failed: %w", err)
	}
	defer rows.Close()

	out := make([]core.SavingsGoal, 0)
	for rows.Next() {
		var (
			name            string
			target, current sql.NullString
			rawCreatedAt    string
		)
		if err := rows.Scan(&name, &target, &current, &rawCreatedAt); err != nil {
			return nil, fmt.Errorf("Goals query failed: %w", err)
		}
		out = append(out, core.SavingsGoal{
			UserID:        userID,
			Name:          name,
			TargetAmount:  core.ParseAmount(target.String),
			CurrentAmount: core.ParseAmount(current.String),
			CreatedAt:     parseTimestamp(rawCreatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Goals query failed: %w", err)
	}
	return out, nil
}

// RecordRiskAlert stores alert; a redelivered alert with a known ID is a no-op.
func (s *Store) RecordRiskAlert(ctx context.Context, alert core.RiskAlert) error {
	reasons, err := json.Marshal(alert.Reasons)
	if err != nil {
		return fmt.Errorf("encode reasons: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO risk_alerts (id, user_id, month, level, score, reasons, raised_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		alert.ID, alert.UserID, alert.Month, alert.Level, alert.Score, string(reasons),
		alert.RaisedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert risk alert: %w", err)
	}

	slog.DebugContext(ctx, "Risk alert saved to SQLite",
		"alert_id", alert.ID,
		"user_id", alert.UserID,
		"month", alert.Month)
	return nil
}

// ListRiskAlerts returns a user's alerts, most recent first.
func (s *Store) ListRiskAlerts(ctx context.Context, userID string) ([]core.RiskAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, month, level, score, reasons, raised_at FROM risk_alerts
		WHERE user_id = ?
		ORDER BY raised_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("Risk alerts query failed: %w", err)
	}
	defer rows.Close()

	out := make([]core.RiskAlert, 0)
	for rows.Next() {
		var (
			a         = core.RiskAlert{UserID: userID}
			reasons   string
			rawRaised string
		)
		if err := rows.Scan(&a.ID, &a.Month, &a.Level, &a.Score, &reasons, &rawRaised); err != nil {
			return nil, fmt.Errorf("Risk alerts query failed: %w", err)
		}
		if err := json.Unmarshal([]byte(reasons), &a.Reasons); err != nil {
			return nil, fmt.Errorf("decode reasons for alert %s: %w", a.ID, err)
		}
		a.RaisedAt = parseTimestamp(rawRaised)
		out = append(out, a)
	}
	return out, rows.Err()
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
