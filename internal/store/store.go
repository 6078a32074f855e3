// Package store defines the read ports the finance pipeline depends on.
//
// Adapters live in the memory, sqlite and postgres subpackages. Every adapter
// coerces raw amounts into decimals exactly once while scanning rows; nothing
// downstream re-parses them.
package store

import (
	"context"
	"errors"

	"budgetu/internal/core"
)

// Ports for outbound adapters.
type (
	ProfileReader interface {
		// GetProfile returns ErrProfileNotFound when the user has no profile.
		GetProfile(ctx context.Context, userID string) (core.Profile, error)
	}

	// ExpenseLister returns a user's expenses in [month-01, nextMonth-01),
	// most recent first.
	ExpenseLister interface {
		ListMonthExpenses(ctx context.Context, userID string, month core.Month) ([]core.Expense, error)
	}

	// GoalLister returns a user's savings goals, oldest first.
	GoalLister interface {
		ListSavingsGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error)
	}

	Reader interface {
		ProfileReader
		ExpenseLister
		GoalLister
	}

	// AlertRecorder persists risk alerts consumed by the worker.
	AlertRecorder interface {
		RecordRiskAlert(ctx context.Context, alert core.RiskAlert) error
	}
)

var ErrProfileNotFound = errors.New("Profile not found")
