// Package memory is an in-process store seeded from a JSON file. It backs
// local development and tests.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"budgetu/internal/core"
	"budgetu/internal/store"
)

// SeedFile is looked up inside the data directory.
const SeedFile = "seed.json"

type Store struct {
	mu       sync.Mutex
	profiles map[string]core.Profile
	expenses []core.Expense
	goals    []core.SavingsGoal
	alerts   []core.RiskAlert
}

func New() *Store {
	return &Store{profiles: map[string]core.Profile{}}
}

// Seed mirrors the relational tables: profiles, expenses, savings_goals.
type Seed struct {
	Profiles []struct {
		ID            string `json:"id"`
		MonthlyIncome amount `json:"monthly_income"`
	} `json:"profiles"`
	Expenses []struct {
		UserID   string `json:"user_id"`
		Date     string `json:"date"`
		Category string `json:"category"`
		Amount   amount `json:"amount"`
	} `json:"expenses"`
	SavingsGoals []struct {
		UserID        string    `json:"user_id"`
		Name          string    `json:"name"`
		TargetAmount  amount    `json:"target_amount"`
		CurrentAmount amount    `json:"current_amount"`
		CreatedAt     time.Time `json:"created_at"`
	} `json:"savings_goals"`
}

// amount accepts a JSON number, a numeric string, or null.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalJSON(b []byte) error {
	a.Decimal = core.ParseAmount(string(bytes.Trim(b, `"`)))
	return nil
}

// NewFromDir loads <dir>/seed.json. A missing file yields an empty store.
func NewFromDir(dir string) (*Store, error) {
	s := New()
	raw, err := os.ReadFile(filepath.Join(dir, SeedFile))
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := s.Load(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Load adds every record of seed to the store.
func (s *Store) Load(seed Seed) error {
	for _, p := range seed.Profiles {
		s.PutProfile(core.NewProfile(p.ID, p.MonthlyIncome.Decimal))
	}
	for _, e := range seed.Expenses {
		date, err := core.ParseDate(e.Date)
		if err != nil {
			return fmt.Errorf("seed expense for %s: %w", e.UserID, err)
		}
		s.AddExpense(core.Expense{UserID: e.UserID, Date: date, Category: e.Category, Amount: e.Amount.Decimal})
	}
	for _, g := range seed.SavingsGoals {
		s.AddGoal(core.SavingsGoal{
			UserID:        g.UserID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount.Decimal,
			CurrentAmount: g.CurrentAmount.Decimal,
			CreatedAt:     g.CreatedAt,
		})
	}
	return nil
}

func (s *Store) PutProfile(p core.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
}

func (s *Store) AddExpense(e core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
}

func (s *Store) AddGoal(g core.SavingsGoal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
}

func (s *Store) GetProfile(_ context.Context, userID string) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return core.Profile{}, fmt.Errorf("%w: %s", store.ErrProfileNotFound, userID)
	}
	return p, nil
}

func (s *Store) ListMonthExpenses(_ context.Context, userID string, month core.Month) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID == userID && month.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out, nil
}

func (s *Store) ListSavingsGoals(_ context.Context, userID string) ([]core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.SavingsGoal, 0)
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) RecordRiskAlert(_ context.Context, alert core.RiskAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert.Reasons = append([]string(nil), alert.Reasons...)
	s.alerts = append(s.alerts, alert)
	return nil
}

// RiskAlerts returns a snapshot of the recorded alerts.
func (s *Store) RiskAlerts() []core.RiskAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RiskAlert(nil), s.alerts...)
}
