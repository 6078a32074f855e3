package dashboard

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"budgetu/internal/core"
	"budgetu/internal/risk"
)

var feb = core.Month{Year: 2026, Month: time.February}

func profile(income string) core.Profile {
	return core.NewProfile("u1", decimal.RequireFromString(income))
}

func expense(day int, category, amount string) core.Expense {
	return core.Expense{
		UserID:   "u1",
		Date:     core.NewDate(2026, 2, day),
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func goal(name, target, current string) core.SavingsGoal {
	return core.SavingsGoal{
		UserID:        "u1",
		Name:          name,
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: decimal.RequireFromString(current),
	}
}

func TestBuildHealthyMonth(t *testing.T) {
	got := Build(profile("2000"), []core.Expense{
		expense(3, "Food", "600"),
		expense(2, "Shopping", "400"),
	}, nil, feb)

	if got.Month != "2026-02" || got.MonthlyIncome != 2000 {
		t.Fatalf("unexpected header fields: %+v", got)
	}
	if got.TotalSpend != 1000 || got.Remaining != 1000 || got.EstimatedSavings != 1000 || got.SavingsRate != 0.5 {
		t.Fatalf("unexpected totals: spend=%v remaining=%v savings=%v rate=%v",
			got.TotalSpend, got.Remaining, got.EstimatedSavings, got.SavingsRate)
	}
	wantRisk := risk.Assessment{Level: risk.Low, Score: 90, Reasons: []string{"Food spending is high relative to income"}}
	if !reflect.DeepEqual(got.Risk, wantRisk) {
		t.Fatalf("risk = %+v, want %+v", got.Risk, wantRisk)
	}
	wantInsights := []string{
		"Your food spending is your top category this month.",
		"Shopping is your #2 category — consider a weekly cap.",
		"Great job — you're saving 50% of your income!",
	}
	if !reflect.DeepEqual(got.Insights, wantInsights) {
		t.Fatalf("insights = %q", got.Insights)
	}
	wantActions := []string{"Set a $150/week food cap for the next 2 weeks."}
	if !reflect.DeepEqual(got.SuggestedActions, wantActions) {
		t.Fatalf("actions = %q", got.SuggestedActions)
	}
}

func TestBuildEmptyMonthWithoutIncome(t *testing.T) {
	got := Build(profile("0"), nil, nil, feb)

	if got.SavingsRate != 0 || got.TotalSpend != 0 || got.Remaining != 0 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.Risk.Level != risk.High || got.Risk.Score != 60 ||
		!reflect.DeepEqual(got.Risk.Reasons, []string{"Savings rate is under 10%"}) {
		t.Fatalf("risk = %+v", got.Risk)
	}
	if !reflect.DeepEqual(got.Insights, []string{
		"You've spent more than your income this month. Review recent expenses for quick wins.",
	}) {
		t.Fatalf("insights = %q", got.Insights)
	}
	if !reflect.DeepEqual(got.SuggestedActions, []string{
		"Move $25/week into your savings goal — even manual transfers help build the habit.",
	}) {
		t.Fatalf("actions = %q", got.SuggestedActions)
	}

	body, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"categoryBreakdown":[]`, `"goals":[]`, `"reasons":["Savings rate is under 10%"]`} {
		if !bytes.Contains(body, []byte(field)) {
			t.Errorf("payload missing %s: %s", field, body)
		}
	}
}

func TestBuildOverspentMonth(t *testing.T) {
	got := Build(profile("1000"), []core.Expense{
		expense(1, "Rent", "900"),
		expense(2, "Food", "250.555"),
	}, nil, feb)

	if got.Remaining != -150.55 {
		t.Fatalf("remaining = %v, want -150.55", got.Remaining)
	}
	if got.EstimatedSavings != 0 {
		t.Fatalf("estimatedSavings = %v, want 0", got.EstimatedSavings)
	}
	if got.SavingsRate != -0.151 {
		t.Fatalf("savingsRate = %v, want -0.151", got.SavingsRate)
	}
	if got.Risk.Level != risk.High {
		t.Fatalf("risk level = %s", got.Risk.Level)
	}
	// Negative rate: no savings transfer suggestion, only the cap.
	if !reflect.DeepEqual(got.SuggestedActions, []string{"Set a $225/week rent cap for the next 2 weeks."}) {
		t.Fatalf("actions = %q", got.SuggestedActions)
	}
	if got.Insights[2] != "You've spent more than your income this month. Review recent expenses for quick wins." {
		t.Fatalf("insights = %q", got.Insights)
	}
}

func TestBuildTightMonthCapsActions(t *testing.T) {
	got := Build(profile("1000"), []core.Expense{
		expense(1, "Food", "500"),
		expense(2, "Transport", "350"),
	}, nil, feb)

	wantActions := []string{
		"Set a $125/week food cap for the next 2 weeks.",
		"Move $25/week into your savings goal — even manual transfers help build the habit.",
	}
	if !reflect.DeepEqual(got.SuggestedActions, wantActions) {
		t.Fatalf("actions = %q", got.SuggestedActions)
	}
	if got.Insights[2] != "You're still saving money, but it's tighter than your goal." {
		t.Fatalf("insights = %q", got.Insights)
	}
	if got.Risk.Level != risk.Medium {
		t.Fatalf("risk level = %s", got.Risk.Level)
	}
}

func TestBuildFallbackAction(t *testing.T) {
	got := Build(profile("4000"), []core.Expense{expense(1, "Books", "100")}, nil, feb)
	if !reflect.DeepEqual(got.SuggestedActions, []string{"Keep up the good work! Review your goals to stay motivated."}) {
		t.Fatalf("actions = %q", got.SuggestedActions)
	}
	if len(got.Insights) != 2 {
		t.Fatalf("insights = %q", got.Insights)
	}
}

func TestBuildBreakdownSortedAndSumsToTotal(t *testing.T) {
	expenses := []core.Expense{
		expense(1, "Food", "10.333"),
		expense(2, "Transport", "45.10"),
		expense(3, "Food", "12.101"),
		expense(4, "Books", "7.777"),
		expense(5, "Transport", "0.005"),
		expense(6, "Gifts", "33.3333"),
	}
	got := Build(profile("3000"), expenses, nil, feb)

	sum := 0.0
	for i, c := range got.CategoryBreakdown {
		sum += c.Amount
		if i > 0 && got.CategoryBreakdown[i-1].Amount < c.Amount {
			t.Fatalf("breakdown not sorted: %+v", got.CategoryBreakdown)
		}
	}
	if math.Abs(sum-got.TotalSpend) > 0.01+1e-9 {
		t.Fatalf("breakdown sum %v differs from total %v", sum, got.TotalSpend)
	}
	if got.CategoryBreakdown[0].Category != "Transport" || got.CategoryBreakdown[0].Amount != 45.11 {
		t.Fatalf("top entry = %+v", got.CategoryBreakdown[0])
	}
}

func TestBuildGoalProgress(t *testing.T) {
	got := Build(profile("1000"), nil, []core.SavingsGoal{
		goal("Emergency fund", "1000", "250"),
		goal("Laptop", "0", "50"),
		goal("Trip", "300", "100"),
		goal("Overfunded", "100", "150"),
	}, feb)

	want := []GoalProgress{
		{Name: "Emergency fund", TargetAmount: 1000, CurrentAmount: 250, Progress: 0.25},
		{Name: "Laptop", TargetAmount: 0, CurrentAmount: 50, Progress: 0},
		{Name: "Trip", TargetAmount: 300, CurrentAmount: 100, Progress: 0.33},
		{Name: "Overfunded", TargetAmount: 100, CurrentAmount: 150, Progress: 1.5},
	}
	if !reflect.DeepEqual(got.Goals, want) {
		t.Fatalf("goals = %+v", got.Goals)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	expenses := []core.Expense{
		expense(1, "Food", "120.40"),
		expense(2, "Entertainment", "80"),
		expense(3, "Food", "33.10"),
	}
	goals := []core.SavingsGoal{goal("Trip", "900", "300")}

	first, err := json.Marshal(Build(profile("1500"), expenses, goals, feb))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Build(profile("1500"), expenses, goals, feb))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("payloads differ:\n%s\n%s", first, second)
	}
}
