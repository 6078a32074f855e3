// Package risk scores a month of spending against income.
//
// The score is rules-based and deterministic: the savings rate sets the level
// and the base penalty, and each category that is large relative to income
// costs a further ten points.
package risk

import (
	"github.com/shopspring/decimal"

	"budgetu/internal/core"
)

type Level string

const (
	Low    Level = "Low"
	Medium Level = "Medium"
	High   Level = "High"
)

const (
	ReasonOverIncome = "You are spending more than your income this month"
	ReasonUnder10    = "Savings rate is under 10%"
	ReasonUnder20    = "Savings rate is under 20%"
)

// Assessment is recomputed on every request and never stored.
type Assessment struct {
	Level   Level    `json:"level"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

type overspendRule struct {
	category string
	limit    decimal.Decimal
	reason   string
}

var (
	rateHigh   = decimal.New(10, -2)
	rateMedium = decimal.New(20, -2)

	overspendRules = []overspendRule{
		{"Food", decimal.New(25, -2), "Food spending is high relative to income"},
		{"Shopping", decimal.New(15, -2), "Shopping spending is high relative to income"},
		{"Subscriptions", decimal.New(10, -2), "Subscription spending is high relative to income"},
		{"Entertainment", decimal.New(15, -2), "Entertainment spending is high relative to income"},
	}
)

// Compute scores a month. It never fails: an income of zero simply means
// every ratio is zero and no category can be flagged.
func Compute(income, totalSpend decimal.Decimal, breakdown []core.CategoryAmount) Assessment {
	savings := income.Sub(totalSpend)
	rate := core.Ratio(savings, income)

	reasons := make([]string, 0, 1+len(breakdown))
	var level Level
	switch {
	case savings.IsNegative():
		level = High
		reasons = append(reasons, ReasonOverIncome)
	case rate.LessThan(rateHigh):
		level = High
		reasons = append(reasons, ReasonUnder10)
	case rate.LessThan(rateMedium):
		level = Medium
		reasons = append(reasons, ReasonUnder20)
	default:
		level = Low
	}

	for _, entry := range breakdown {
		ratio := core.Ratio(entry.Amount, income)
		for _, rule := range overspendRules {
			if entry.Category == rule.category && ratio.GreaterThan(rule.limit) {
				reasons = append(reasons, rule.reason)
			}
		}
	}

	score := 100
	switch {
	case rate.LessThan(rateHigh):
		score -= 40
	case rate.LessThan(rateMedium):
		score -= 20
	}

	// When the level is not Low, the first reason belongs to the savings rate.
	flags := len(reasons)
	if level != Low {
		flags--
	}
	score -= flags * 10

	return Assessment{Level: level, Score: clamp(score, 0, 100), Reasons: reasons}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
