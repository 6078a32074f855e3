// Package narrative produces the canned insight and chat text.
//
// Nothing here calls a language model; every string is chosen by fixed rules
// over the month's aggregates or, for chat, over keywords in the message.
package narrative

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"budgetu/internal/core"
	"budgetu/internal/risk"
)

const trackEveryExpense = "Track every expense — awareness is the first step to better budgeting."

var (
	targetRate    = decimal.New(2, -1)
	topShareLimit = decimal.New(25, -2)
)

// InsightsReport is the response of the insights endpoint.
type InsightsReport struct {
	Insights         []string `json:"insights"`
	SuggestedActions []string `json:"suggestedActions"`
	RiskNarrative    string   `json:"riskNarrative"`
}

// BuildInsights recomputes the month's aggregates and phrases them as
// insights, suggestions and a risk narrative. Goals are accepted for parity
// with the dashboard inputs but do not influence the text.
func BuildInsights(profile core.Profile, expenses []core.Expense, _ []core.SavingsGoal) InsightsReport {
	income := profile.MonthlyIncome
	totalSpend := core.TotalSpend(expenses)
	savingsRate := core.Ratio(income.Sub(totalSpend), income)
	categories := core.SummarizeByCategory(expenses)
	assessment := risk.Compute(income, totalSpend, categories)

	insights := make([]string, 0, 3)
	if len(categories) > 0 {
		insights = append(insights, fmt.Sprintf("Your top spending category is %s at %s.",
			categories[0].Category, core.Dollars(categories[0].Amount)))
	}
	if !savingsRate.IsNegative() && savingsRate.LessThan(targetRate) {
		insights = append(insights, fmt.Sprintf("Your savings rate is %d%% — aim for at least 20%%.",
			core.Percent(savingsRate)))
	}
	if totalSpend.GreaterThan(income) {
		insights = append(insights, "You've exceeded your monthly income. Review expenses for areas to cut.")
	}

	actions := make([]string, 0, 2)
	if len(categories) > 0 && exceedsShare(categories[0].Amount, income) {
		actions = append(actions, fmt.Sprintf("Try reducing %s spending by 10%% next month.",
			strings.ToLower(categories[0].Category)))
	}
	actions = append(actions, trackEveryExpense)

	return InsightsReport{
		Insights:         insights,
		SuggestedActions: actions,
		RiskNarrative:    riskNarrative(assessment),
	}
}

// exceedsShare reports whether amount is more than a quarter of income. With
// no income, any positive amount counts as exceeding it.
func exceedsShare(amount, income decimal.Decimal) bool {
	if !income.IsPositive() {
		return amount.IsPositive()
	}
	return amount.Div(income).GreaterThan(topShareLimit)
}

func riskNarrative(a risk.Assessment) string {
	text := fmt.Sprintf("Your financial risk level is %s (score: %d/100).", a.Level, a.Score)
	if len(a.Reasons) == 0 {
		return text
	}
	return text + " " + strings.Join(a.Reasons, ". ") + "."
}
