// Package dashboard derives the monthly dashboard payload from already
// fetched records. Build is pure: the same inputs always produce the same
// payload, and nothing is cached between calls.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"budgetu/internal/core"
	"budgetu/internal/risk"
)

const (
	maxInsights = 3
	maxActions  = 2
)

var (
	tightRate     = decimal.New(2, -1)
	topShareLimit = decimal.New(25, -2)
	weeksPerMonth = decimal.NewFromInt(4)
)

// CategoryEntry is one row of the category breakdown.
type CategoryEntry struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// GoalProgress is a savings goal with its completion ratio.
type GoalProgress struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Progress      float64 `json:"progress"`
}

// Payload is the monthly financial summary returned to clients.
type Payload struct {
	Month             string          `json:"month"`
	MonthlyIncome     float64         `json:"monthlyIncome"`
	TotalSpend        float64         `json:"totalSpend"`
	Remaining         float64         `json:"remaining"`
	EstimatedSavings  float64         `json:"estimatedSavings"`
	SavingsRate       float64         `json:"savingsRate"`
	CategoryBreakdown []CategoryEntry `json:"categoryBreakdown"`
	Risk              risk.Assessment `json:"risk"`
	Insights          []string        `json:"insights"`
	SuggestedActions  []string        `json:"suggestedActions"`
	Goals             []GoalProgress  `json:"goals"`
}

// Build aggregates a month of records into a Payload.
func Build(profile core.Profile, expenses []core.Expense, goals []core.SavingsGoal, month core.Month) Payload {
	income := profile.MonthlyIncome
	totalSpend := core.TotalSpend(expenses)
	remaining := income.Sub(totalSpend)
	estimatedSavings := decimal.Max(decimal.Zero, remaining)
	savingsRate := core.Ratio(remaining, income)

	breakdown := core.SummarizeByCategory(expenses)
	for i := range breakdown {
		breakdown[i].Amount = core.Round(breakdown[i].Amount, 2)
	}

	entries := make([]CategoryEntry, len(breakdown))
	for i, c := range breakdown {
		entries[i] = CategoryEntry{Category: c.Category, Amount: core.Float(c.Amount)}
	}

	return Payload{
		Month:             month.String(),
		MonthlyIncome:     core.Float(income),
		TotalSpend:        core.Float(core.Round(totalSpend, 2)),
		Remaining:         core.Float(core.Round(remaining, 2)),
		EstimatedSavings:  core.Float(core.Round(estimatedSavings, 2)),
		SavingsRate:       core.Float(core.Round(savingsRate, 3)),
		CategoryBreakdown: entries,
		Risk:              risk.Compute(income, totalSpend, breakdown),
		Insights:          insights(savingsRate, breakdown),
		SuggestedActions:  actions(income, savingsRate, breakdown),
		Goals:             goalProgress(goals),
	}
}

func insights(savingsRate decimal.Decimal, breakdown []core.CategoryAmount) []string {
	out := make([]string, 0, maxInsights)

	if len(breakdown) > 0 {
		out = append(out, fmt.Sprintf("Your %s spending is your top category this month.",
			strings.ToLower(breakdown[0].Category)))
	}
	if len(breakdown) > 1 {
		out = append(out, fmt.Sprintf("%s is your #2 category — consider a weekly cap.", breakdown[1].Category))
	}

	switch {
	case savingsRate.IsPositive() && savingsRate.LessThan(tightRate):
		out = append(out, "You're still saving money, but it's tighter than your goal.")
	case savingsRate.GreaterThanOrEqual(tightRate):
		out = append(out, fmt.Sprintf("Great job — you're saving %d%% of your income!", core.Percent(savingsRate)))
	default:
		out = append(out, "You've spent more than your income this month. Review recent expenses for quick wins.")
	}

	// Unreachable today: the savings-rate switch above always appends.
	if len(out) == 0 {
		out = append(out, "Keep tracking your expenses to stay on top of your budget.")
	}
	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

func actions(income, savingsRate decimal.Decimal, breakdown []core.CategoryAmount) []string {
	out := make([]string, 0, maxActions)

	if len(breakdown) > 0 && income.IsPositive() {
		top := breakdown[0]
		if top.Amount.Div(income).GreaterThan(topShareLimit) {
			weeklyCap := core.Round(top.Amount.Div(weeksPerMonth), 0)
			out = append(out, fmt.Sprintf("Set a $%s/week %s cap for the next 2 weeks.",
				weeklyCap.String(), strings.ToLower(top.Category)))
		}
	}

	if !savingsRate.IsNegative() && savingsRate.LessThan(tightRate) {
		out = append(out, "Move $25/week into your savings goal — even manual transfers help build the habit.")
	}

	if len(out) == 0 {
		out = append(out, "Keep up the good work! Review your goals to stay motivated.")
	}
	if len(out) > maxActions {
		out = out[:maxActions]
	}
	return out
}

func goalProgress(goals []core.SavingsGoal) []GoalProgress {
	out := make([]GoalProgress, len(goals))
	for i, g := range goals {
		progress := decimal.Zero
		if g.TargetAmount.IsPositive() {
			progress = core.Round(g.CurrentAmount.Div(g.TargetAmount), 2)
		}
		out[i] = GoalProgress{
			Name:          g.Name,
			TargetAmount:  core.Float(g.TargetAmount),
			CurrentAmount: core.Float(g.CurrentAmount),
			Progress:      core.Float(progress),
		}
	}
	return out
}
