package risk

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"budgetu/internal/core"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entry(category, amount string) core.CategoryAmount {
	return core.CategoryAmount{Category: category, Amount: d(amount)}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		income    string
		spend     string
		breakdown []core.CategoryAmount
		want      Assessment
	}{
		{
			name:      "low risk with food flag",
			income:    "2000",
			spend:     "1000",
			breakdown: []core.CategoryAmount{entry("Food", "600"), entry("Shopping", "400")},
			want:      Assessment{Level: Low, Score: 90, Reasons: []string{"Food spending is high relative to income"}},
		},
		{
			name:      "no income no spending",
			income:    "0",
			spend:     "0",
			breakdown: nil,
			want:      Assessment{Level: High, Score: 60, Reasons: []string{ReasonUnder10}},
		},
		{
			name:      "spending more than income",
			income:    "1000",
			spend:     "1200",
			breakdown: []core.CategoryAmount{entry("Rent", "1200")},
			want:      Assessment{Level: High, Score: 60, Reasons: []string{ReasonOverIncome}},
		},
		{
			name:      "medium with subscription flag",
			income:    "1000",
			spend:     "850",
			breakdown: []core.CategoryAmount{entry("Rent", "700"), entry("Subscriptions", "150")},
			want: Assessment{Level: Medium, Score: 70, Reasons: []string{
				ReasonUnder20,
				"Subscription spending is high relative to income",
			}},
		},
		{
			name:      "low with two flags in breakdown order",
			income:    "1000",
			spend:     "500",
			breakdown: []core.CategoryAmount{entry("Food", "300"), entry("Entertainment", "200")},
			want: Assessment{Level: Low, Score: 80, Reasons: []string{
				"Food spending is high relative to income",
				"Entertainment spending is high relative to income",
			}},
		},
		{
			name:   "every flag on top of overspending",
			income: "1000",
			spend:  "1500",
			breakdown: []core.CategoryAmount{
				entry("Food", "500"), entry("Shopping", "400"),
				entry("Entertainment", "300"), entry("Subscriptions", "300"),
			},
			want: Assessment{Level: High, Score: 20, Reasons: []string{
				ReasonOverIncome,
				"Food spending is high relative to income",
				"Shopping spending is high relative to income",
				"Entertainment spending is high relative to income",
				"Subscription spending is high relative to income",
			}},
		},
		{
			name:      "exactly twenty percent is low",
			income:    "1000",
			spend:     "800",
			breakdown: []core.CategoryAmount{entry("Rent", "800")},
			want:      Assessment{Level: Low, Score: 100, Reasons: []string{}},
		},
		{
			name:      "threshold is strict",
			income:    "1000",
			spend:     "250",
			breakdown: []core.CategoryAmount{entry("Food", "250")},
			want:      Assessment{Level: Low, Score: 100, Reasons: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(d(tt.income), d(tt.spend), tt.breakdown)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeZeroIncomeNeverFlagsCategories(t *testing.T) {
	breakdown := []core.CategoryAmount{
		entry("Food", "900"), entry("Shopping", "800"),
		entry("Subscriptions", "700"), entry("Entertainment", "600"),
	}
	got := Compute(decimal.Zero, d("3000"), breakdown)
	if got.Level != High {
		t.Fatalf("level = %s, want High", got.Level)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != ReasonOverIncome {
		t.Fatalf("reasons = %v, want only the over-income reason", got.Reasons)
	}
	if got.Score != 60 {
		t.Fatalf("score = %d, want 60", got.Score)
	}
}

func TestComputeScoreBoundsAndOverIncome(t *testing.T) {
	categories := []string{"Food", "Shopping", "Subscriptions", "Entertainment", "Other"}
	for income := int64(0); income <= 3000; income += 250 {
		for spend := int64(0); spend <= 4000; spend += 250 {
			var breakdown []core.CategoryAmount
			remaining := spend
			for _, c := range categories {
				part := remaining / 2
				if c == "Other" {
					part = remaining
				}
				breakdown = append(breakdown, core.CategoryAmount{Category: c, Amount: decimal.NewFromInt(part)})
				remaining -= part
			}
			got := Compute(decimal.NewFromInt(income), decimal.NewFromInt(spend), breakdown)
			if got.Score < 0 || got.Score > 100 {
				t.Fatalf("income=%d spend=%d score %d out of range", income, spend, got.Score)
			}
			if spend > income {
				if got.Level != High || !strings.Contains(got.Reasons[0], "more than your income") {
					t.Fatalf("income=%d spend=%d got %+v", income, spend, got)
				}
			}
		}
	}
}
