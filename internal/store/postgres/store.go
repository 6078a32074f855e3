// Package postgres implements the store ports on PostgreSQL, including
// hosted databases that expose the profiles, expenses and savings_goals
// tables directly.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"budgetu/internal/core"
	"budgetu/internal/store"
)

type Store struct {
	db *sql.DB
}

type Options struct {
	// Migrate applies the embedded schema on open.
	Migrate bool
	// MaxOpenConns caps the pool; zero leaves the driver default.
	MaxOpenConns int
}

func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if opts.Migrate {
		if err := RunMigrations(dsn); err != nil {
			db.Close()
			return nil, err
		}
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
		`SELECT monthly_income::text FROM profiles WHERE id = $1`, userID).Scan(&income)
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
		SELECT date::text, category, amount::text FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3
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
			category sql.NullString
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
			Category: category.String,
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
		SELECT name, target_amount::text, current_amount::text, created_at FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("Goals query failed: %w", err)
	}
	defer rows.Close()

	out := make([]core.SavingsGoal, 0)
	for rows.Next() {
		var (
			name            sql.NullString
			target, current sql.NullString
			createdAt       sql.NullTime
		)
		if err := rows.Scan(&name, &target, &current, &createdAt); err != nil {
			return nil, fmt.Errorf("Goals query failed: %w", err)
		}
		out = append(out, core.SavingsGoal{
			UserID:        userID,
			Name:          name.String,
			TargetAmount:  core.ParseAmount(target.String),
			CurrentAmount: core.ParseAmount(current.String),
			CreatedAt:     createdAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Goals query failed: %w", err)
	}
	return out, nil
}

// RecordRiskAlert stores alert; a redelivered alert with a known ID is a no-op.
func (s *Store) RecordRiskAlert(ctx context.Context, alert core.RiskAlert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO risk_alerts (id, user_id, month, level, score, reasons, raised_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		alert.ID, alert.UserID, alert.Month, alert.Level, alert.Score,
		pq.Array(alert.Reasons), alert.RaisedAt)
	if err != nil {
		return fmt.Errorf("insert risk alert: %w", err)
	}

	slog.DebugContext(ctx, "Risk alert saved to Postgres",
		"alert_id", alert.ID,
		"user_id", alert.UserID,
		"month", alert.Month)
	return nil
}

// ListRiskAlerts returns a user's alerts, most recent first.
func (s *Store) ListRiskAlerts(ctx context.Context, userID string) ([]core.RiskAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id::text, month, level, score, reasons, raised_at FROM risk_alerts
		WHERE user_id = $1
		ORDER BY raised_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("Risk alerts query failed: %w", err)
	}
	defer rows.Close()

	out := make([]core.RiskAlert, 0)
	for rows.Next() {
		a := core.RiskAlert{UserID: userID}
		if err := rows.Scan(&a.ID, &a.Month, &a.Level, &a.Score, pq.Array(&a.Reasons), &a.RaisedAt); err != nil {
			return nil, fmt.Errorf("Risk alerts query failed: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
